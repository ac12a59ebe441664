package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

// EmployeeRepoMemory guarda los registros en memoria, en orden de inserción.
type EmployeeRepoMemory struct {
	mu    sync.RWMutex
	byID  map[string]domain.Employee
	order []string
}

var _ domain.EmployeeRepository = (*EmployeeRepoMemory)(nil)

func NewEmployeeRepoMemory() *EmployeeRepoMemory {
	return &EmployeeRepoMemory{byID: make(map[string]domain.Employee)}
}

func (r *EmployeeRepoMemory) ListAll(ctx context.Context) ([]*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Employee, 0, len(r.order))
	for _, id := range r.order {
		e := r.byID[id]
		out = append(out, &e)
	}
	return out, nil
}

func (r *EmployeeRepoMemory) Insert(ctx context.Context, e domain.NewEmployee) (domain.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.InsertResult{}, err
	}

	id := uuid.New().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = e.WithID(id)
	r.order = append(r.order, id)
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *EmployeeRepoMemory) DeleteByID(ctx context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &e, nil
}

func (r *EmployeeRepoMemory) UpdateByID(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	patch.Apply(&e)
	r.byID[id] = e
	return &e, nil
}
