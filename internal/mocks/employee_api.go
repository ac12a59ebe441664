package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

// MockEmployeeAPI imita el cliente HTTP que usa el store del dashboard.
type MockEmployeeAPI struct {
	mock.Mock
}

func (m *MockEmployeeAPI) GetEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Employee)
	return list, args.Error(1)
}

func (m *MockEmployeeAPI) AddEmployee(ctx context.Context, e domain.NewEmployee) (domain.InsertResult, error) {
	args := m.Called(ctx, e)
	res, _ := args.Get(0).(domain.InsertResult)
	return res, args.Error(1)
}

func (m *MockEmployeeAPI) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) (domain.Employee, error) {
	args := m.Called(ctx, id, patch)
	e, _ := args.Get(0).(domain.Employee)
	return e, args.Error(1)
}

func (m *MockEmployeeAPI) DeleteEmployee(ctx context.Context, id string) (domain.Employee, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(domain.Employee)
	return e, args.Error(1)
}
