package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntegrationEvent(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	evt, err := NewIntegrationEvent("employee.created", "abc", EmployeeCreated{EmployeeSnapshot{ID: "abc", Nome: "Ana"}}, now)
	require.NoError(t, err)

	assert.Equal(t, "employee.created", evt.Type)
	assert.Equal(t, "abc", evt.PartitionKey())
	assert.Equal(t, time.UTC, evt.Timestamp.Location())

	var data EmployeeCreated
	require.NoError(t, json.Unmarshal(evt.Data, &data))
	assert.Equal(t, "Ana", data.Nome)
}
