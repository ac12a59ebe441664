package events

import (
	"encoding/json"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type        string          `json:"type"`
	Timestamp   time.Time       `json:"timestamp"`
	AggregateID string          `json:"aggregateId"`
	Data        json.RawMessage `json:"data"` // contenido específico del evento
}

// PartitionKey hace que todos los eventos de un mismo registro caigan en la misma partición.
func (e IntegrationEvent) PartitionKey() string {
	return e.AggregateID
}

// NewIntegrationEvent serializa data y construye el evento.
func NewIntegrationEvent(eventType, aggregateID string, data interface{}, now time.Time) (IntegrationEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{
		Type:        eventType,
		Timestamp:   now.UTC(),
		AggregateID: aggregateID,
		Data:        raw,
	}, nil
}
