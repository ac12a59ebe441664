package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

// MockEmployeeRepository es un mock de domain.EmployeeRepository con testify.
type MockEmployeeRepository struct {
	mock.Mock
}

var _ domain.EmployeeRepository = (*MockEmployeeRepository)(nil)

func (m *MockEmployeeRepository) ListAll(ctx context.Context) ([]*domain.Employee, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.Employee)
	return list, args.Error(1)
}

func (m *MockEmployeeRepository) Insert(ctx context.Context, e domain.NewEmployee) (domain.InsertResult, error) {
	args := m.Called(ctx, e)
	res, _ := args.Get(0).(domain.InsertResult)
	return res, args.Error(1)
}

func (m *MockEmployeeRepository) DeleteByID(ctx context.Context, id string) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Employee)
	return e, args.Error(1)
}

func (m *MockEmployeeRepository) UpdateByID(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	args := m.Called(ctx, id, patch)
	e, _ := args.Get(0).(*domain.Employee)
	return e, args.Error(1)
}
