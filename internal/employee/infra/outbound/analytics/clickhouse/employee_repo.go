package clickhouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

// EmployeeAnalyticsRepo guarda el histórico de cambios de funcionarios en ClickHouse.
type EmployeeAnalyticsRepo struct {
	db *sql.DB
}

var _ domain.EmployeeAnalytics = (*EmployeeAnalyticsRepo)(nil)

// Open conecta y hace ping.
func Open(addr, dbName string) (*sql.DB, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}
	return conn, nil
}

func NewEmployeeAnalyticsRepo(db *sql.DB) *EmployeeAnalyticsRepo {
	return &EmployeeAnalyticsRepo{db: db}
}

// LogBatch inserta el lote en una sola transacción; si una fila falla no se guarda ninguna.
func (r *EmployeeAnalyticsRepo) LogBatch(ctx context.Context, changes []domain.EmployeeChange) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO employees_log
		(event_type, employee_id, nome, departamento, cargo, sexo, ativo, data_contratacao, event_time)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, c := range changes {
		e := c.Employee
		if _, err := stmt.ExecContext(ctx,
			c.EventType,
			c.EmployeeID,
			e.Nome,
			e.Departamento,
			e.Cargo,
			string(e.Sexo),
			e.Ativo,
			e.DataContratacao,
			c.EventTime,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for employee %s: %w", c.EmployeeID, err)
		}
	}

	return tx.Commit()
}

// InitSchema crea la tabla en ClickHouse si no existe.
func (r *EmployeeAnalyticsRepo) InitSchema(ctx context.Context) error {
	// particionada por mes; el orden favorece las consultas por departamento
	query := `
		CREATE TABLE IF NOT EXISTS employees_log (
			event_type       LowCardinality(String),
			employee_id      String,
			nome             String,
			departamento     LowCardinality(String),
			cargo            String,
			sexo             LowCardinality(String),
			ativo            Bool,
			data_contratacao String,
			event_time       DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (departamento, event_type, event_time);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *EmployeeAnalyticsRepo) Close() error {
	return r.db.Close()
}
