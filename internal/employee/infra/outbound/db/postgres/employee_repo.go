package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

type EmployeeRepoPostgres struct {
	conn PgxIface
}

var _ domain.EmployeeRepository = (*EmployeeRepoPostgres)(nil)

func NewEmployeeRepoPostgres(conn PgxIface) *EmployeeRepoPostgres {
	return &EmployeeRepoPostgres{conn: conn}
}

var columns = map[string]string{
	"nome":            "nome",
	"dataNascimento":  "data_nascimento",
	"cpf":             "cpf",
	"rg":              "rg",
	"email":           "email",
	"dataContratacao": "data_contratacao",
	"sexo":            "sexo",
	"cargo":           "cargo",
	"departamento":    "departamento",
	"ativo":           "ativo",
}

const selectColumns = `id::text, nome, data_nascimento, cpf, rg, email, data_contratacao, sexo, cargo, departamento, ativo`

// ------------------ CRUD ------------------

func (r *EmployeeRepoPostgres) ListAll(ctx context.Context) ([]*domain.Employee, error) {
	if r.conn == nil {
		return nil, domain.ErrNotConnected
	}

	rows, err := r.conn.Query(ctx, `SELECT `+selectColumns+` FROM employees`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepoPostgres) Insert(ctx context.Context, e domain.NewEmployee) (domain.InsertResult, error) {
	if r.conn == nil {
		return domain.InsertResult{}, domain.ErrNotConnected
	}

	id := uuid.New()
	_, err := r.conn.Exec(ctx,
		`INSERT INTO employees (id, nome, data_nascimento, cpf, rg, email, data_contratacao, sexo, cargo, departamento, ativo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, e.Nome, e.DataNascimento, e.CPF, e.RG, e.Email, e.DataContratacao,
		string(e.Sexo), e.Cargo, e.Departamento, e.Ativo,
	)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("db error: %w", err)
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id.String()}, nil
}

func (r *EmployeeRepoPostgres) DeleteByID(ctx context.Context, id string) (*domain.Employee, error) {
	if r.conn == nil {
		return nil, domain.ErrNotConnected
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	row := r.conn.QueryRow(ctx, `DELETE FROM employees WHERE id = $1 RETURNING `+selectColumns, uid)
	return mapNotFound(scanEmployee(row))
}

func (r *EmployeeRepoPostgres) UpdateByID(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	if r.conn == nil {
		return nil, domain.ErrNotConnected
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		row := r.conn.QueryRow(ctx, `SELECT `+selectColumns+` FROM employees WHERE id = $1`, uid)
		return mapNotFound(scanEmployee(row))
	}

	sets := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+1)
	for i, f := range fields {
		sets = append(sets, fmt.Sprintf("%s = $%d", columns[f.Field], i+1))
		args = append(args, f.Value)
	}
	args = append(args, uid)

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), selectColumns)
	return mapNotFound(scanEmployee(r.conn.QueryRow(ctx, query, args...)))
}

// ------------------ Helpers ------------------

func mapNotFound(e *domain.Employee, err error) (*domain.Employee, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		e    domain.Employee
		sexo string
	)
	if err := row.Scan(&e.ID, &e.Nome, &e.DataNascimento, &e.CPF, &e.RG, &e.Email,
		&e.DataContratacao, &sexo, &e.Cargo, &e.Departamento, &e.Ativo); err != nil {
		return nil, err
	}
	e.Sexo = domain.Sexo(sexo)
	return &e, nil
}
