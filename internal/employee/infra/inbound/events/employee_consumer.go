package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
	sharedEvents "github.com/davicafu/teamhub/internal/shared/events"
	sharedUtils "github.com/davicafu/teamhub/internal/shared/infra/utils"
)

const (
	logTimeout    = 500 * time.Millisecond
	logAttempts   = 3
	logRetryDelay = 50 * time.Millisecond
)

// EmployeeConsumer lleva los eventos de funcionarios al registro analítico.
type EmployeeConsumer struct {
	analytics employeeDomain.EmployeeAnalytics
	log       *zap.Logger
}

func NewEmployeeConsumer(analytics employeeDomain.EmployeeAnalytics, logger *zap.Logger) *EmployeeConsumer {
	return &EmployeeConsumer{
		analytics: analytics,
		log:       logger,
	}
}

func (c *EmployeeConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case employeeDomain.EmployeeCreated, employeeDomain.EmployeeUpdated, employeeDomain.EmployeeDeleted:
		sharedUtils.UnmarshalAndHandle[sharedEvents.EmployeeSnapshot](c.log, base.Type, base.Data, func(evt sharedEvents.EmployeeSnapshot) {
			c.record(ctx, base, evt)
		})
	default:
		c.log.Warn("Unknown event type", zap.String("type", base.Type), zap.String("key", key))
	}
}

func (c *EmployeeConsumer) record(ctx context.Context, base sharedEvents.IntegrationEvent, evt sharedEvents.EmployeeSnapshot) {
	if c.analytics == nil {
		c.log.Debug("📊 Evento recibido (analítica desactivada)", zap.String("type", base.Type), zap.String("employee_id", evt.ID))
		return
	}

	change := employeeDomain.EmployeeChange{
		EventType:  base.Type,
		EmployeeID: evt.ID,
		Employee:   fromSnapshot(evt),
		EventTime:  base.Timestamp,
	}
	err := sharedUtils.Retry(ctx, logAttempts, logRetryDelay, func(ctx context.Context) error {
		ctxLog, cancel := context.WithTimeout(ctx, logTimeout)
		defer cancel()
		return c.analytics.LogBatch(ctxLog, []employeeDomain.EmployeeChange{change})
	})
	if err != nil {
		c.log.Warn("Failed to log employee event",
			zap.String("employee_id", evt.ID),
			zap.String("type", base.Type),
			zap.Error(err),
		)
		return
	}
	c.log.Info("📊 Cambio registrado en analítica",
		zap.String("employee_id", evt.ID),
		zap.String("type", base.Type),
	)
}

func fromSnapshot(s sharedEvents.EmployeeSnapshot) employeeDomain.Employee {
	return employeeDomain.Employee{
		ID:              s.ID,
		Nome:            s.Nome,
		DataNascimento:  s.DataNascimento,
		Email:           s.Email,
		DataContratacao: s.DataContratacao,
		Sexo:            employeeDomain.Sexo(s.Sexo),
		Cargo:           s.Cargo,
		Departamento:    s.Departamento,
		Ativo:           s.Ativo,
	}
}

// BackgroundConsumerChan consume el bus en memoria hasta que ctx se cancela.
// El canal devuelto se cierra cuando la goroutine termina.
func BackgroundConsumerChan(ctx context.Context, ch <-chan interface{}, consumer *EmployeeConsumer) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				consumer.log.Info("EmployeeConsumer stopped")
				return
			case msg := <-ch:
				if payload, ok := msg.([]byte); ok {
					consumer.HandleMessage(ctx, "", payload)
				}
			}
		}
	}()
	return done
}
