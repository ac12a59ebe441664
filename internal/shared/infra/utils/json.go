package utils

import (
	"encoding/json"

	"go.uber.org/zap"
)

// UnmarshalAndHandle decodifica el payload de un evento y, si es válido, se lo pasa a handler.
// Devuelve false cuando el payload no encaja en T.
func UnmarshalAndHandle[T any](log *zap.Logger, eventType string, data json.RawMessage, handler func(T)) bool {
	var evt T
	if err := json.Unmarshal(data, &evt); err != nil {
		log.Warn("Failed to unmarshal event data", zap.String("type", eventType), zap.Error(err))
		return false
	}
	handler(evt)
	return true
}
