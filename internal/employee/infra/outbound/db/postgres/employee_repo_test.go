package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

var rowColumns = []string{"id", "nome", "data_nascimento", "cpf", "rg", "email", "data_contratacao", "sexo", "cargo", "departamento", "ativo"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func employeeRow(mock pgxmock.PgxPoolIface, id uuid.UUID, nome string, ativo bool) *pgxmock.Rows {
	return mock.NewRows(rowColumns).AddRow(
		id.String(), nome, "1985-07-20", "111.222.333-44", "1.234.567", "bruno@teamhub.com",
		"2019-02-11", "masculino", "Gerente de Projetos", domain.DepartamentoRH, ativo,
	)
}

func TestEmployeeRepoPostgres_ListAll(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepoPostgres(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + selectColumns + ` FROM employees`)).
		WillReturnRows(employeeRow(mock, id, "Bruno", true))

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id.String(), list[0].ID)
	assert.Equal(t, domain.SexoMasculino, list[0].Sexo)
	assert.True(t, list[0].Ativo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepoPostgres_Insert(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepoPostgres(mock)

	mock.ExpectExec("^INSERT INTO employees").
		WithArgs(pgxmock.AnyArg(), "Ana", "1990-03-15", "", "", "", "2020-01-01", "feminino", "", domain.DepartamentoMarketing, true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	res, err := repo.Insert(context.Background(), domain.NewEmployee{
		Nome: "Ana", DataNascimento: "1990-03-15", DataContratacao: "2020-01-01",
		Sexo: domain.SexoFeminino, Departamento: domain.DepartamentoMarketing, Ativo: true,
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	_, err = uuid.Parse(res.InsertedID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepoPostgres_InsertError(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepoPostgres(mock)

	mock.ExpectExec("^INSERT INTO employees").WillReturnError(errors.New("connection reset"))

	_, err := repo.Insert(context.Background(), domain.NewEmployee{Nome: "Ana"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestEmployeeRepoPostgres_DeleteByID(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepoPostgres(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM employees WHERE id = $1 RETURNING`)).
		WithArgs(id).
		WillReturnRows(employeeRow(mock, id, "Bruno", true))

	e, err := repo.DeleteByID(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "Bruno", e.Nome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepoPostgres_DeleteNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepoPostgres(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM employees WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.DeleteByID(context.Background(), id.String())
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	// un id que no es UUID no llega a la base
	_, err = repo.DeleteByID(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepoPostgres_UpdateOnlySuppliedColumns(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepoPostgres(mock)
	id := uuid.New()

	ativo := false
	depto := domain.DepartamentoEngenharia
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE employees SET departamento = $1, ativo = $2 WHERE id = $3 RETURNING`)).
		WithArgs(depto, false, id).
		WillReturnRows(employeeRow(mock, id, "Bruno", false))

	e, err := repo.UpdateByID(context.Background(), id.String(), domain.EmployeePatch{Ativo: &ativo, Departamento: &depto})
	require.NoError(t, err)
	assert.False(t, e.Ativo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepoPostgres_EmptyPatchSelectsCurrent(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepoPostgres(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + selectColumns + ` FROM employees WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(employeeRow(mock, id, "Bruno", true))

	e, err := repo.UpdateByID(context.Background(), id.String(), domain.EmployeePatch{})
	require.NoError(t, err)
	assert.Equal(t, id.String(), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepoPostgres_UpdateNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepoPostgres(mock)
	id := uuid.New()

	nome := "X"
	mock.ExpectQuery("^UPDATE employees SET nome").
		WithArgs("X", id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateByID(context.Background(), id.String(), domain.EmployeePatch{Nome: &nome})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestInitSchema(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS employees").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, InitSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepoPostgres_NotConnected(t *testing.T) {
	_, err := NewEmployeeRepoPostgres(nil).ListAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}
