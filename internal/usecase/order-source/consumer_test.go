package ordersource

import (
	"testing"

	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	msg := kafka.Message{
		Offset: 42,
		Value:  []byte(`{"orderID":1,"side":"BUY","price":100,"qty":10,"timestamp":7}`),
	}

	payload, err := parsePayload(msg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), payload.OrderID)
	assert.Equal(t, "BUY", payload.Side)
	assert.Equal(t, int64(100), payload.Price)
	assert.Equal(t, int64(10), payload.Qty)
	assert.Equal(t, int64(42), payload.Offset)
}

func TestParsePayload_BadJSON(t *testing.T) {
	_, err := parsePayload(kafka.Message{Value: []byte("not json")})
	require.Error(t, err)

	var tracer *errors.ErrorTracer
	require.ErrorAs(t, err, &tracer)
	assert.Equal(t, errors.KafkaReadError, tracer.Code)
}
