package application

import (
	"context"
	"sync"

	"go.uber.org/zap"

	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
)

// fetchFailedMessage se usa si el error del fetch no trae texto.
const fetchFailedMessage = "Falha ao buscar funcionários."

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State es la vista del dashboard sobre los funcionários cargados.
// FilteredRecords es siempre Records filtrado por ActiveFilter (nil = todos).
type State struct {
	Records         []employeeDomain.Employee
	FilteredRecords []employeeDomain.Employee
	ActiveFilter    *bool
	Status          Status
	Error           string
}

func InitialState() State {
	return State{
		Records:         []employeeDomain.Employee{},
		FilteredRecords: []employeeDomain.Employee{},
		Status:          StatusIdle,
	}
}

// ---- Acciones ----

type ActionType string

const (
	FetchPending    ActionType = "employees/fetch/pending"
	FetchFulfilled  ActionType = "employees/fetch/fulfilled"
	FetchRejected   ActionType = "employees/fetch/rejected"
	AddFulfilled    ActionType = "employees/add/fulfilled"
	UpdateFulfilled ActionType = "employees/update/fulfilled"
	DeleteFulfilled ActionType = "employees/delete/fulfilled"
	SetActiveFilter ActionType = "employees/setActiveFilter"
)

// Action lleva sólo los campos que su Type necesita.
type Action struct {
	Type    ActionType
	Records []employeeDomain.Employee
	Record  employeeDomain.Employee
	ID      string
	Filter  *bool
	Error   string
}

// Reduce es pura: no modifica state y devuelve slices nuevos.
func Reduce(state State, a Action) State {
	next := state
	switch a.Type {
	case FetchPending:
		next.Status = StatusLoading
		next.Error = ""

	case FetchFulfilled:
		next.Status = StatusSucceeded
		next.Records = clone(a.Records)
		next.FilteredRecords = clone(a.Records)
		next.ActiveFilter = nil

	case FetchRejected:
		next.Status = StatusFailed
		next.Error = a.Error
		if next.Error == "" {
			next.Error = fetchFailedMessage
		}

	case AddFulfilled:
		// se añade a ambas listas sin mirar el filtro activo
		next.Records = append(clone(state.Records), a.Record)
		next.FilteredRecords = append(clone(state.FilteredRecords), a.Record)

	case UpdateFulfilled:
		next.Records = replaceByID(state.Records, a.Record)
		next.FilteredRecords = replaceByID(state.FilteredRecords, a.Record)

	case DeleteFulfilled:
		next.Records = removeByID(state.Records, a.ID)
		next.FilteredRecords = removeByID(state.FilteredRecords, a.ID)

	case SetActiveFilter:
		next.ActiveFilter = copyBool(a.Filter)
		next.FilteredRecords = filterByActive(state.Records, a.Filter)
	}
	return next
}

func clone(list []employeeDomain.Employee) []employeeDomain.Employee {
	out := make([]employeeDomain.Employee, len(list))
	copy(out, list)
	return out
}

func replaceByID(list []employeeDomain.Employee, e employeeDomain.Employee) []employeeDomain.Employee {
	out := clone(list)
	for i := range out {
		if out[i].ID == e.ID {
			out[i] = e
			break
		}
	}
	return out
}

func removeByID(list []employeeDomain.Employee, id string) []employeeDomain.Employee {
	out := make([]employeeDomain.Employee, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func filterByActive(list []employeeDomain.Employee, active *bool) []employeeDomain.Employee {
	if active == nil {
		return clone(list)
	}
	out := make([]employeeDomain.Employee, 0, len(list))
	for _, e := range list {
		if e.Ativo == *active {
			out = append(out, e)
		}
	}
	return out
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// ---- Store ----

// Dispatcher aplica acciones y expone el estado resultante.
type Dispatcher interface {
	Dispatch(a Action)
	State() State
}

// Store guarda el State detrás de un mutex. Cada Dispatch pasa por Reduce.
type Store struct {
	mu    sync.RWMutex
	state State
}

var _ Dispatcher = (*Store)(nil)

func NewStore() *Store {
	return &Store{state: InitialState()}
}

func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
}

// State devuelve una copia; modificarla no afecta al Store.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Records = clone(st.Records)
	st.FilteredRecords = clone(st.FilteredRecords)
	st.ActiveFilter = copyBool(st.ActiveFilter)
	return st
}

// ---- Operaciones asíncronas ----

// EmployeeAPI es lo que el store necesita del backend.
type EmployeeAPI interface {
	GetEmployees(ctx context.Context) ([]employeeDomain.Employee, error)
	AddEmployee(ctx context.Context, e employeeDomain.NewEmployee) (employeeDomain.InsertResult, error)
	UpdateEmployee(ctx context.Context, id string, patch employeeDomain.EmployeePatch) (employeeDomain.Employee, error)
	DeleteEmployee(ctx context.Context, id string) (employeeDomain.Employee, error)
}

// EmployeeActions llama a la API y despacha el resultado. Los fallos de
// add/update/delete no cambian el estado y se devuelven al llamador.
type EmployeeActions struct {
	api   EmployeeAPI
	store Dispatcher
	log   *zap.Logger
}

func NewEmployeeActions(api EmployeeAPI, store Dispatcher, log *zap.Logger) *EmployeeActions {
	return &EmployeeActions{api: api, store: store, log: log}
}

func (a *EmployeeActions) Fetch(ctx context.Context) error {
	a.store.Dispatch(Action{Type: FetchPending})

	records, err := a.api.GetEmployees(ctx)
	if err != nil {
		a.log.Warn("⚠️ No se pudo cargar la lista", zap.Error(err))
		a.store.Dispatch(Action{Type: FetchRejected, Error: err.Error()})
		return err
	}

	a.store.Dispatch(Action{Type: FetchFulfilled, Records: records})
	a.log.Debug("Lista cargada", zap.Int("count", len(records)))
	return nil
}

// EnsureLoaded sólo hace fetch si todavía no se intentó.
func (a *EmployeeActions) EnsureLoaded(ctx context.Context) error {
	if a.store.State().Status != StatusIdle {
		return nil
	}
	return a.Fetch(ctx)
}

func (a *EmployeeActions) Add(ctx context.Context, e employeeDomain.NewEmployee) (employeeDomain.Employee, error) {
	res, err := a.api.AddEmployee(ctx, e)
	if err != nil {
		return employeeDomain.Employee{}, err
	}
	created := e.WithID(res.InsertedID)
	a.store.Dispatch(Action{Type: AddFulfilled, Record: created})
	return created, nil
}

func (a *EmployeeActions) Update(ctx context.Context, id string, patch employeeDomain.EmployeePatch) (employeeDomain.Employee, error) {
	updated, err := a.api.UpdateEmployee(ctx, id, patch)
	if err != nil {
		return employeeDomain.Employee{}, err
	}
	a.store.Dispatch(Action{Type: UpdateFulfilled, Record: updated})
	return updated, nil
}

func (a *EmployeeActions) Delete(ctx context.Context, id string) error {
	if _, err := a.api.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	a.store.Dispatch(Action{Type: DeleteFulfilled, ID: id})
	return nil
}

func (a *EmployeeActions) SetFilter(active *bool) {
	a.store.Dispatch(Action{Type: SetActiveFilter, Filter: active})
}
