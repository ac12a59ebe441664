package domain

import (
	"time"

	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
)

// ReportSnapshot congela las vistas del dashboard calculadas en GeneratedAt.
type ReportSnapshot struct {
	GeneratedAt   time.Time                 `json:"generatedAt"`
	KPIs          KPIs                      `json:"kpis"`
	Departamentos []Bucket                  `json:"departamentos"`
	Generos       []Bucket                  `json:"generos"`
	Idades        []Bucket                  `json:"idades"`
	TempoDeCasa   []Bucket                  `json:"tempoDeCasa"`
	Contratacoes  []MonthBucket             `json:"contratacoes"`
	Recentes      []employeeDomain.Employee `json:"recentes"`
	Aniversarios  []employeeDomain.Employee `json:"aniversarios"`
}

func BuildSnapshot(records []employeeDomain.Employee, now time.Time) ReportSnapshot {
	now = now.UTC()
	return ReportSnapshot{
		GeneratedAt:   now,
		KPIs:          ComputeKPIs(records, now),
		Departamentos: CountByDepartment(records, NotAvailable),
		Generos:       GenderSplit(records),
		Idades:        AgeBuckets(records, now),
		TempoDeCasa:   TenureBuckets(records, now),
		Contratacoes:  HiresLastSixMonths(records, now),
		Recentes:      RecentHires(records, RecentHiresLimit),
		Aniversarios:  BirthdaysThisMonth(records, now),
	}
}
