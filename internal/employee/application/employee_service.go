package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/teamhub/internal/employee/domain"
	sharedEvents "github.com/davicafu/teamhub/internal/shared/events"
	sharedBus "github.com/davicafu/teamhub/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/teamhub/internal/shared/infra/platform/cache"
	"github.com/davicafu/teamhub/pkg/envelope"
)

const (
	defaultCacheTTL = 5 * time.Minute
	// publishTimeout acota lo que un broker caído retrasa la respuesta de una escritura.
	publishTimeout = 500 * time.Millisecond
)

// EmployeeService traduce los resultados del repositorio al envelope de la API.
// Ningún método devuelve error ni deja escapar un panic: todo acaba en un envelope.
type EmployeeService struct {
	repo     domain.EmployeeRepository
	cache    sharedCache.Cache
	events   sharedBus.EventPublisher
	log      *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time

	// cacheGen se incrementa en cada escritura; un listado leído antes no se guarda.
	cacheMu  sync.Mutex
	cacheGen uint64
}

type Option func(*EmployeeService)

// WithCacheTTL cambia la vida del listado en cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *EmployeeService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithClock fija el reloj usado para el timestamp de los eventos.
func WithClock(now func() time.Time) Option {
	return func(s *EmployeeService) { s.now = now }
}

// NewEmployeeService acepta cache y events nil: en ese caso se omiten.
func NewEmployeeService(repo domain.EmployeeRepository, cache sharedCache.Cache, events sharedBus.EventPublisher, log *zap.Logger, opts ...Option) *EmployeeService {
	s := &EmployeeService{
		repo:     repo,
		cache:    cache,
		events:   events,
		log:      log,
		cacheTTL: defaultCacheTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---- Casos de uso ----

func (s *EmployeeService) GetEmployees(ctx context.Context) (resp envelope.Response[[]*domain.Employee]) {
	defer recoverTo(s.log, &resp)

	if s.cache != nil {
		var cached []*domain.Employee
		ok, err := s.cache.Get(ctx, domain.CacheKeyAll, &cached)
		if err != nil {
			s.log.Warn("⚠️ Lectura de caché fallida", zap.String("key", domain.CacheKeyAll), zap.Error(err))
		}
		if ok {
			return envelope.OK(cached)
		}
	}

	gen := s.generation()
	employees, err := s.repo.ListAll(ctx)
	if err != nil {
		return failure[[]*domain.Employee](s.log, "", err)
	}
	if employees == nil {
		employees = []*domain.Employee{}
	}

	s.storeList(ctx, gen, employees)
	return envelope.OK(employees)
}

func (s *EmployeeService) AddEmployee(ctx context.Context, e domain.NewEmployee) (resp envelope.Response[domain.InsertResult]) {
	defer recoverTo(s.log, &resp)

	res, err := s.repo.Insert(ctx, e)
	if err != nil {
		return failure[domain.InsertResult](s.log, "", err)
	}

	s.afterWrite(ctx, domain.EmployeeCreated, e.WithID(res.InsertedID))
	return envelope.OK(res)
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) (resp envelope.Response[*domain.Employee]) {
	defer recoverTo(s.log, &resp)

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return failure[*domain.Employee](s.log, id, err)
	}

	s.afterWrite(ctx, domain.EmployeeDeleted, *deleted)
	return envelope.OK(deleted)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) (resp envelope.Response[*domain.Employee]) {
	defer recoverTo(s.log, &resp)

	updated, err := s.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		return failure[*domain.Employee](s.log, id, err)
	}

	if !patch.IsEmpty() {
		s.afterWrite(ctx, domain.EmployeeUpdated, *updated)
	}
	return envelope.OK(updated)
}

// ---- Helpers ----

func (s *EmployeeService) generation() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.cacheGen
}

// storeList guarda el listado sólo si ninguna escritura terminó desde que se leyó gen.
func (s *EmployeeService) storeList(ctx context.Context, gen uint64, employees []*domain.Employee) {
	if s.cache == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if gen != s.cacheGen {
		s.log.Debug("🔁 Listado obsoleto, no se cachea", zap.Uint64("gen", gen), zap.Uint64("current", s.cacheGen))
		return
	}
	sharedCache.SetQuietly(ctx, s.cache, domain.CacheKeyAll, employees, s.cacheTTL, s.log)
}

func (s *EmployeeService) invalidateList(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cacheGen++
	sharedCache.DeleteQuietly(ctx, s.cache, domain.CacheKeyAll, s.log)
}

// afterWrite invalida el listado y publica el evento. Los fallos sólo se registran.
func (s *EmployeeService) afterWrite(ctx context.Context, eventType string, e domain.Employee) {
	s.invalidateList(ctx)

	if s.events == nil {
		return
	}
	evt, err := sharedEvents.NewIntegrationEvent(eventType, e.ID, eventPayload(eventType, toSnapshot(e)), s.now())
	if err != nil {
		s.log.Warn("⚠️ No se pudo construir el evento", zap.String("type", eventType), zap.Error(err))
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(pubCtx, evt); err != nil {
		s.log.Warn("⚠️ Publicación de evento fallida",
			zap.String("type", eventType),
			zap.String("employee_id", e.ID),
			zap.Error(err))
		return
	}
	s.log.Debug("📤 Evento publicado", zap.String("type", eventType), zap.String("employee_id", e.ID))
}

// eventPayload envuelve el snapshot en el contrato de cada tipo de evento.
func eventPayload(eventType string, snap sharedEvents.EmployeeSnapshot) interface{} {
	switch eventType {
	case domain.EmployeeCreated:
		return sharedEvents.EmployeeCreated{EmployeeSnapshot: snap}
	case domain.EmployeeUpdated:
		return sharedEvents.EmployeeUpdated{EmployeeSnapshot: snap}
	case domain.EmployeeDeleted:
		return sharedEvents.EmployeeDeleted{EmployeeSnapshot: snap}
	}
	return snap
}

func toSnapshot(e domain.Employee) sharedEvents.EmployeeSnapshot {
	return sharedEvents.EmployeeSnapshot{
		ID:              e.ID,
		Nome:            e.Nome,
		DataNascimento:  e.DataNascimento,
		Email:           e.Email,
		DataContratacao: e.DataContratacao,
		Sexo:            string(e.Sexo),
		Cargo:           e.Cargo,
		Departamento:    e.Departamento,
		Ativo:           e.Ativo,
	}
}

func failure[T any](log *zap.Logger, id string, err error) envelope.Response[T] {
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return envelope.NotFound[T](domain.NotFoundMessage(id))
	}
	return envelope.ServerError[T](log, err)
}

// recoverTo convierte un panic en un 500. Debe usarse con defer.
func recoverTo[T any](log *zap.Logger, resp *envelope.Response[T]) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		*resp = envelope.ServerError[T](log, err)
	}
}
