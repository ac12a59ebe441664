package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
)

var today = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func emp(nome, depto, nasc, contr string, sexo employeeDomain.Sexo, ativo bool) employeeDomain.Employee {
	return employeeDomain.Employee{
		ID: nome, Nome: nome, Departamento: depto, DataNascimento: nasc,
		DataContratacao: contr, Sexo: sexo, Ativo: ativo,
	}
}

func fixture() []employeeDomain.Employee {
	return []employeeDomain.Employee{
		emp("Ana", "RH", "1990-03-15", "2024-01-20", employeeDomain.SexoFeminino, true),
		emp("Bia", "RH", "2001-07-02", "2023-10-05", employeeDomain.SexoFeminino, false),
		emp("Caio", "Engenharia", "1965-03-01", "2015-06-01", employeeDomain.SexoMasculino, true),
		emp("Duda", "", "1980-12-31", "2021-03-10", employeeDomain.SexoOutro, true),
		emp("Édi", "Produto", "data-ruim", "também-ruim", employeeDomain.SexoMasculino, true),
	}
}

func sum(b []Bucket) int {
	n := 0
	for _, x := range b {
		n += x.Count
	}
	return n
}

func TestTotalsMatchRecordCount(t *testing.T) {
	records := fixture()

	assert.Equal(t, len(records), sum(AgeBuckets(records, today)))
	assert.Equal(t, len(records), sum(TenureBuckets(records, today)))
	assert.Equal(t, len(records), sum(GenderSplit(records)))
	assert.Equal(t, len(records), sum(CountByDepartment(records, NotAvailable)))

	total := 0
	for _, g := range GroupByDepartment(records) {
		total += len(g.Employees)
	}
	assert.Equal(t, len(records), total)
}

func TestGroupByDepartment_ScenarioAndOrder(t *testing.T) {
	records := []employeeDomain.Employee{
		emp("Ana", "RH", "", "", "", true),
		emp("Bia", "RH", "", "", "", false),
	}
	groups := GroupByDepartment(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "RH", groups[0].Name)
	assert.Equal(t, []string{"Ana", "Bia"}, []string{groups[0].Employees[0].Nome, groups[0].Employees[1].Nome})

	names := []string{}
	for _, g := range GroupByDepartment(fixture()) {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Engenharia", "Produto", "RH", SemDepartamento}, names)
}

func TestGroupByDepartment_AccentsCollateNaturally(t *testing.T) {
	records := []employeeDomain.Employee{
		emp("a", "Operações", "", "", "", true),
		emp("b", "Óptica", "", "", "", true),
		emp("c", "Pesquisa", "", "", "", true),
	}
	names := []string{}
	for _, g := range GroupByDepartment(records) {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Operações", "Óptica", "Pesquisa"}, names)
}

func TestCountByDepartment_Fallbacks(t *testing.T) {
	reports := CountByDepartment(fixture(), NotAvailable)
	assert.Contains(t, reports, Bucket{Name: NotAvailable, Count: 1})
	assert.Equal(t, Bucket{Name: "RH", Count: 2}, reports[0])

	home := CountByDepartment(fixture(), "")
	assert.Contains(t, home, Bucket{Name: "", Count: 1})
}

func TestDepartmentOptions(t *testing.T) {
	assert.Equal(t, []string{"", "Engenharia", "Produto", "RH"}, DepartmentOptions(fixture()))
	assert.Empty(t, DepartmentOptions(nil))
}

func TestAgeBuckets(t *testing.T) {
	buckets := AgeBuckets(fixture(), today)
	assert.Equal(t, []Bucket{
		{Name: "18-25", Count: 1}, // Bia, 22
		{Name: "26-35", Count: 1}, // Ana, 33 (cumple el 15)
		{Name: "36-45", Count: 1}, // Duda, 43
		{Name: "46-55", Count: 0},
		{Name: "56+", Count: 2}, // Caio, 59; Édi sin fecha
	}, buckets)
}

func TestAgeBoundary(t *testing.T) {
	e := emp("Ana", "RH", "1990-03-15", "", "", true)
	assert.Equal(t, 33, e.AgeAt(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, e.AgeAt(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)))
}

func TestTenureBuckets(t *testing.T) {
	buckets := TenureBuckets(fixture(), today)
	assert.Equal(t, []Bucket{
		{Name: "< 1 ano", Count: 2},  // Ana, Bia
		{Name: "1-3 anos", Count: 0},
		{Name: "3-5 anos", Count: 1}, // Duda, 1096.5 días: un poco más de 3 años
		{Name: "5+ anos", Count: 2}, // Caio; Édi sin fecha
	}, buckets)
}

func TestGenderSplit_CollapsesOutro(t *testing.T) {
	assert.Equal(t, []Bucket{
		{Name: GeneroFeminino, Count: 2},
		{Name: GeneroMasculino, Count: 3},
	}, GenderSplit(fixture()))
	assert.Empty(t, GenderSplit(nil))
}

func TestHiresLastSixMonths(t *testing.T) {
	buckets := HiresLastSixMonths(fixture(), today)
	require.Len(t, buckets, 6)

	labels := []string{}
	for _, b := range buckets {
		labels = append(labels, b.Name)
	}
	assert.Equal(t, []string{"Out", "Nov", "Dez", "Jan", "Fev", "Mar"}, labels)
	assert.Equal(t, 2023, buckets[0].Year)
	assert.Equal(t, 1, buckets[0].Count) // Bia
	assert.Equal(t, 1, buckets[3].Count) // Ana
	assert.Equal(t, 0, buckets[5].Count)
}

func TestHiresLastSixMonths_YearBoundary(t *testing.T) {
	buckets := HiresLastSixMonths(nil, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.August, buckets[0].Month)
	assert.Equal(t, 2023, buckets[0].Year)
	assert.Equal(t, time.January, buckets[5].Month)
	assert.Equal(t, 2024, buckets[5].Year)
}

func TestAggregationsReadNowInUTC(t *testing.T) {
	// 22:00 del 31 de marzo en BRT ya es 1 de abril en UTC
	local := time.Date(2024, 3, 31, 22, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	records := []employeeDomain.Employee{
		emp("Gabi", "RH", "1990-04-20", "2024-04-01", employeeDomain.SexoFeminino, true),
		emp("Hugo", "RH", "1992-03-05", "2024-03-15", employeeDomain.SexoMasculino, true),
	}

	birthdays := BirthdaysThisMonth(records, local)
	require.Len(t, birthdays, 1)
	assert.Equal(t, "Gabi", birthdays[0].Nome)

	hires := HiresLastSixMonths(records, local)
	assert.Equal(t, time.April, hires[5].Month)
	assert.Equal(t, 1, hires[5].Count)
	assert.Equal(t, 1, hires[4].Count)

	snap := BuildSnapshot(records, local)
	assert.Equal(t, time.UTC, snap.GeneratedAt.Location())
	assert.Equal(t, 1, snap.KPIs.AniversariosMes)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan", MonthLabel(time.January))
	assert.Equal(t, "Mai", MonthLabel(time.May))
	assert.Equal(t, "Set", MonthLabel(time.September))
	assert.Equal(t, "Dez", MonthLabel(time.December))
}

func TestRecentHires(t *testing.T) {
	recent := RecentHires(fixture(), RecentHiresLimit)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"Ana", "Bia", "Duda"}, []string{recent[0].Nome, recent[1].Nome, recent[2].Nome})

	assert.Len(t, RecentHires(fixture()[:1], RecentHiresLimit), 1)
}

func TestBirthdaysAndKPIs(t *testing.T) {
	records := fixture()

	birthdays := BirthdaysThisMonth(records, today)
	require.Len(t, birthdays, 2)
	assert.Equal(t, "Ana", birthdays[0].Nome)
	assert.Equal(t, "Caio", birthdays[1].Nome)

	assert.Equal(t, KPIs{
		TotalFuncionarios:  5,
		FuncionariosAtivos: 4,
		TotalDepartamentos: 4,
		AniversariosMes:    2,
	}, ComputeKPIs(records, today))

	assert.Equal(t, KPIs{}, ComputeKPIs(nil, today))
}

func TestFilterReport(t *testing.T) {
	records := fixture()

	assert.Len(t, FilterReport(records, StatusTodos, TodosDepartamentos), 5)

	inativos := FilterReport(records, StatusInativos, TodosDepartamentos)
	require.Len(t, inativos, 1)
	assert.Equal(t, "Bia", inativos[0].Nome)

	rhAtivos := FilterReport(records, StatusAtivos, "RH")
	require.Len(t, rhAtivos, 1)
	assert.Equal(t, "Ana", rhAtivos[0].Nome)
}
