package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	sharedEvents "github.com/davicafu/teamhub/internal/shared/events"
	sharedBus "github.com/davicafu/teamhub/internal/shared/infra/platform/bus"
)

// MockPublisher guarda los eventos publicados para inspeccionarlos.
type MockPublisher struct {
	Published []sharedEvents.IntegrationEvent
	Err       error
	// Deadlines guarda, por llamada, cuánto tiempo le quedaba al contexto (0 si no tenía deadline).
	Deadlines []time.Duration
	mu        sync.Mutex
}

var _ sharedBus.EventPublisher = (*MockPublisher)(nil)

func (p *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var left time.Duration
	if d, ok := ctx.Deadline(); ok {
		left = time.Until(d)
	}
	p.Deadlines = append(p.Deadlines, left)
	if p.Err != nil {
		return p.Err
	}

	// se pasa por JSON, igual que harían Kafka o el bus en memoria
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	var evt sharedEvents.IntegrationEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return err
	}
	p.Published = append(p.Published, evt)
	return nil
}

// Types devuelve los tipos publicados, en orden.
func (p *MockPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.Published))
	for _, e := range p.Published {
		out = append(out, e.Type)
	}
	return out
}
