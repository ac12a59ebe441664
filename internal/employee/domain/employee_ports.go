package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ---------- Errores de dominio ----------
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrNotConnected se devuelve cuando se usa el repositorio antes de establecer la conexión.
	ErrNotConnected = errors.New("database not connected: call Connect before using the repository")
)

// NotFoundMessage es el texto que recibe el cliente cuando el ID no existe.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("Funcionário com ID '%s' não encontrado.", id)
}

// ---------- Interfaces (Ports) ----------

// EmployeeRepository define el acceso a la colección de funcionarios.
// Todas las operaciones deben devolver ErrNotConnected si no hay conexión.
type EmployeeRepository interface {
	// ListAll devuelve todos los registros, sin paginación ni orden garantizado.
	ListAll(ctx context.Context) ([]*Employee, error)

	// Insert asigna un ID nuevo y guarda el registro.
	Insert(ctx context.Context, e NewEmployee) (InsertResult, error)

	// DeleteByID elimina y devuelve el registro previo.
	// Debe devolver ErrEmployeeNotFound si no existe.
	DeleteByID(ctx context.Context, id string) (*Employee, error)

	// UpdateByID aplica el patch y devuelve el registro ya actualizado.
	// Debe devolver ErrEmployeeNotFound si no existe.
	UpdateByID(ctx context.Context, id string, patch EmployeePatch) (*Employee, error)
}

// EmployeeChange es una fila del registro analítico de cambios.
type EmployeeChange struct {
	EventType  string
	EmployeeID string
	Employee   Employee
	EventTime  time.Time
}

// EmployeeAnalytics recibe los cambios para análisis histórico (headcount, contrataciones).
type EmployeeAnalytics interface {
	LogBatch(ctx context.Context, changes []EmployeeChange) error
}

// ---------- Helpers comunes ----------

// CacheKeyAll es la key del listado completo en cache.
const CacheKeyAll = "employees:all"
