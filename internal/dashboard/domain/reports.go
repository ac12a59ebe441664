// Package domain contiene las agregaciones del dashboard. Todas son funciones puras
// sobre la lista ya cargada y reciben la fecha actual como parámetro.
package domain

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
)

const (
	SemDepartamento = "Sem Departamento"
	NotAvailable    = "N/A"

	GeneroFeminino  = "Feminino"
	GeneroMasculino = "Masculino"

	StatusTodos        = "todos"
	StatusAtivos       = "ativos"
	StatusInativos     = "inativos"
	TodosDepartamentos = "todos"

	RecentHiresLimit = 3
	hireMonths       = 6
)

type DepartmentGroup struct {
	Name      string                    `json:"departmentName"`
	Employees []employeeDomain.Employee `json:"employees"`
}

// Bucket es un par etiqueta/contador, en el orden en que se muestra.
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"value"`
}

type MonthBucket struct {
	Name  string     `json:"name"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"contratados"`
}

type KPIs struct {
	TotalFuncionarios  int `json:"totalFuncionarios"`
	FuncionariosAtivos int `json:"funcionariosAtivos"`
	TotalDepartamentos int `json:"totalDepartamentos"`
	AniversariosMes    int `json:"aniversariosMes"`
}

// ---- Departamentos ----

// GroupByDepartment agrupa por departamento (vacío → "Sem Departamento"), ordenado con collation pt-BR.
func GroupByDepartment(records []employeeDomain.Employee) []DepartmentGroup {
	index := map[string]int{}
	groups := make([]DepartmentGroup, 0)
	for _, e := range records {
		name := e.Departamento
		if name == "" {
			name = SemDepartamento
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, DepartmentGroup{Name: name})
		}
		groups[i].Employees = append(groups[i].Employees, e)
	}

	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(groups, func(i, j int) bool {
		return col.CompareString(groups[i].Name, groups[j].Name) < 0
	})
	return groups
}

// CountByDepartment cuenta por departamento en orden de primera aparición.
// fallback sustituye al departamento vacío; con "" se usa la clave tal cual.
func CountByDepartment(records []employeeDomain.Employee, fallback string) []Bucket {
	return countBy(records, func(e employeeDomain.Employee) string {
		if e.Departamento == "" && fallback != "" {
			return fallback
		}
		return e.Departamento
	})
}

// DepartmentOptions devuelve los departamentos distintos, ordenados por código.
func DepartmentOptions(records []employeeDomain.Employee) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, e := range records {
		if !seen[e.Departamento] {
			seen[e.Departamento] = true
			out = append(out, e.Departamento)
		}
	}
	sort.Strings(out)
	return out
}

// ---- Contrataciones ----

// HiresLastSixMonths crea seis cubos mensuales que terminan en el mes de now, leído en UTC
// (el más antiguo primero), y cuenta las contrataciones de cada uno.
func HiresLastSixMonths(records []employeeDomain.Employee, now time.Time) []MonthBucket {
	now = now.UTC()
	buckets := make([]MonthBucket, hireMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < hireMonths; i++ {
		d := first.AddDate(0, i-(hireMonths-1), 0)
		buckets[i] = MonthBucket{Name: MonthLabel(d.Month()), Year: d.Year(), Month: d.Month()}
	}

	for _, e := range records {
		hire, err := employeeDomain.ParseDate(e.DataContratacao)
		if err != nil {
			continue
		}
		for i := range buckets {
			if buckets[i].Year == hire.Year() && buckets[i].Month == hire.Month() {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// RecentHires devuelve las n contrataciones más recientes. Las fechas ilegibles van al final.
func RecentHires(records []employeeDomain.Employee, n int) []employeeDomain.Employee {
	sorted := append([]employeeDomain.Employee(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HireDate().After(sorted[j].HireDate())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ---- Edad y antigüedad ----

// AgeBuckets reparte por edad con límites superiores inclusivos; lo que no entra (o no se puede leer) va a 56+.
func AgeBuckets(records []employeeDomain.Employee, now time.Time) []Bucket {
	buckets := []Bucket{{Name: "18-25"}, {Name: "26-35"}, {Name: "36-45"}, {Name: "46-55"}, {Name: "56+"}}
	for _, e := range records {
		age := e.AgeAt(now)
		switch {
		case age <= 25:
			buckets[0].Count++
		case age <= 35:
			buckets[1].Count++
		case age <= 45:
			buckets[2].Count++
		case age <= 55:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets
}

// TenureBuckets reparte por antigüedad en años (|now - contratación| / 365.25).
func TenureBuckets(records []employeeDomain.Employee, now time.Time) []Bucket {
	buckets := []Bucket{{Name: "< 1 ano"}, {Name: "1-3 anos"}, {Name: "3-5 anos"}, {Name: "5+ anos"}}
	for _, e := range records {
		tenure := e.TenureYearsAt(now)
		switch {
		case tenure < 1:
			buckets[0].Count++
		case tenure <= 3:
			buckets[1].Count++
		case tenure <= 5:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
	}
	return buckets
}

// ---- Género ----

// GenderSplit cuenta feminino como "Feminino" y cualquier otro valor como "Masculino".
func GenderSplit(records []employeeDomain.Employee) []Bucket {
	return countBy(records, func(e employeeDomain.Employee) string {
		if e.Sexo == employeeDomain.SexoFeminino {
			return GeneroFeminino
		}
		return GeneroMasculino
	})
}

// ---- Home ----

// BirthdaysThisMonth devuelve quien cumple años en el mes de now, leído en UTC.
func BirthdaysThisMonth(records []employeeDomain.Employee, now time.Time) []employeeDomain.Employee {
	now = now.UTC()
	out := make([]employeeDomain.Employee, 0)
	for _, e := range records {
		birth, err := employeeDomain.ParseDate(e.DataNascimento)
		if err == nil && birth.Month() == now.Month() {
			out = append(out, e)
		}
	}
	return out
}

func ComputeKPIs(records []employeeDomain.Employee, now time.Time) KPIs {
	k := KPIs{TotalFuncionarios: len(records)}
	depts := map[string]bool{}
	for _, e := range records {
		if e.Ativo {
			k.FuncionariosAtivos++
		}
		depts[e.Departamento] = true
	}
	k.TotalDepartamentos = len(depts)
	k.AniversariosMes = len(BirthdaysThisMonth(records, now))
	return k
}

// ---- Filtro de relatórios ----

// FilterReport aplica el filtro de estado (todos|ativos|inativos) y de departamento ("todos" = sin filtro).
func FilterReport(records []employeeDomain.Employee, status, department string) []employeeDomain.Employee {
	out := make([]employeeDomain.Employee, 0, len(records))
	for _, e := range records {
		if status != "" && status != StatusTodos && e.Ativo != (status == StatusAtivos) {
			continue
		}
		if department != "" && department != TodosDepartamentos && e.Departamento != department {
			continue
		}
		out = append(out, e)
	}
	return out
}

func countBy(records []employeeDomain.Employee, key func(employeeDomain.Employee) string) []Bucket {
	index := map[string]int{}
	out := make([]Bucket, 0)
	for _, e := range records {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Bucket{Name: k})
		}
		out[i].Count++
	}
	return out
}
