package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // driver puro Go, sin cgo

	"github.com/davicafu/teamhub/internal/employee/domain"
)

type EmployeeRepoSQLite struct {
	db *sql.DB
}

var _ domain.EmployeeRepository = (*EmployeeRepoSQLite)(nil)

func NewEmployeeRepoSQLite(db *sql.DB) *EmployeeRepoSQLite {
	return &EmployeeRepoSQLite{db: db}
}

// columns traduce el nombre JSON del campo a su columna.
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

const selectColumns = `id, nome, data_nascimento, cpf, rg, email, data_contratacao, sexo, cargo, departamento, ativo`

// ------------------ Métodos ------------------

func (r *EmployeeRepoSQLite) ListAll(ctx context.Context) ([]*domain.Employee, error) {
	if r.db == nil {
		return nil, domain.ErrNotConnected
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM employees ORDER BY rowid`)
	if err != nil {
		return nil, err
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

func (r *EmployeeRepoSQLite) Insert(ctx context.Context, e domain.NewEmployee) (domain.InsertResult, error) {
	if r.db == nil {
		return domain.InsertResult{}, domain.ErrNotConnected
	}

	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (`+selectColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		id, e.Nome, e.DataNascimento, e.CPF, e.RG, e.Email, e.DataContratacao,
		string(e.Sexo), e.Cargo, e.Departamento, e.Ativo,
	)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("insert employee: %w", err)
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// DeleteByID borra y devuelve la fila previa en una sola sentencia.
func (r *EmployeeRepoSQLite) DeleteByID(ctx context.Context, id string) (*domain.Employee, error) {
	if r.db == nil {
		return nil, domain.ErrNotConnected
	}

	row := r.db.QueryRowContext(ctx, `DELETE FROM employees WHERE id = ? RETURNING `+selectColumns, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	return e, err
}

func (r *EmployeeRepoSQLite) UpdateByID(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	if r.db == nil {
		return nil, domain.ErrNotConnected
	}

	var row *sql.Row
	fields := patch.Fields()
	if len(fields) == 0 {
		row = r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM employees WHERE id = ?`, id)
	} else {
		sets := make([]string, 0, len(fields))
		args := make([]interface{}, 0, len(fields)+1)
		for _, f := range fields {
			sets = append(sets, columns[f.Field]+" = ?")
			args = append(args, f.Value)
		}
		args = append(args, id)

		query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = ? RETURNING %s`, strings.Join(sets, ", "), selectColumns)
		row = r.db.QueryRowContext(ctx, query, args...)
	}

	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	return e, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(s scanner) (*domain.Employee, error) {
	var (
		e    domain.Employee
		sexo string
	)
	if err := s.Scan(&e.ID, &e.Nome, &e.DataNascimento, &e.CPF, &e.RG, &e.Email,
		&e.DataContratacao, &sexo, &e.Cargo, &e.Departamento, &e.Ativo); err != nil {
		return nil, err
	}
	e.Sexo = domain.Sexo(sexo)
	return &e, nil
}

// ------------------ Inicialización de DB ------------------

// InitSQLite crea la tabla employees si no existe
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS employees (
            id TEXT PRIMARY KEY,
            nome TEXT NOT NULL,
            data_nascimento TEXT NOT NULL,
            cpf TEXT NOT NULL DEFAULT '',
            rg TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            data_contratacao TEXT NOT NULL DEFAULT '',
            sexo TEXT NOT NULL DEFAULT '',
            cargo TEXT NOT NULL DEFAULT '',
            departamento TEXT NOT NULL DEFAULT '',
            ativo BOOLEAN NOT NULL DEFAULT 1
        )
    `)
	return err
}

// Open abre el fichero y crea el esquema. SQLite sólo admite un escritor a la vez.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := InitSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return db, nil
}
