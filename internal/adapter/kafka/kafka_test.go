package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("LEMR"),
		Value:     []byte(`{"station":"LEMR"}`),
		Topic:     "raw-model-forecasts",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("open-meteo")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("LEMR"), raw.Key)
	assert.JSONEq(t, `{"station":"LEMR"}`, string(raw.Value))
	assert.Equal(t, "raw-model-forecasts", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "open-meteo", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestMapMessageToRawEvent_NoHeaders(t *testing.T) {
	raw := mapMessageToRawEvent(kafkago.Message{Value: []byte("{}")})

	assert.NotNil(t, raw.Headers)
	assert.Empty(t, raw.Headers)
}

func TestToMessage(t *testing.T) {
	processed := time.Date(2025, 11, 4, 7, 5, 0, 0, time.UTC).Format(time.RFC3339)
	event := domain.OutputEvent{
		Key:   []byte("lemr-0011223344556677"),
		Value: []byte(`{"station":"LEMR"}`),
		Headers: map[string]string{
			"station":         "LEMR",
			"processed_at":    processed,
			"flight_category": "LIFR",
		},
	}

	msg := toMessage(event)

	assert.Equal(t, event.Key, msg.Key)
	assert.Equal(t, event.Value, msg.Value)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "flight_category", msg.Headers[0].Key)
	assert.Equal(t, []byte("LIFR"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(processed), msg.Headers[1].Value)
	assert.Equal(t, "station", msg.Headers[2].Key)
	assert.Equal(t, []byte("LEMR"), msg.Headers[2].Value)
}

func TestBalancer_StationAdvisoriesSharePartition(t *testing.T) {
	partitions := []int{0, 1, 2, 3, 4, 5}
	balancer := newBalancer()

	want := -1
	for hour := 6; hour <= 11; hour++ {
		at := time.Date(2025, 11, 4, hour, 0, 0, 0, time.UTC)
		msg := toMessage(domain.OutputEvent{
			Key:   []byte("LEMR"),
			Value: []byte(`{}`),
			Headers: map[string]string{
				"advisory_id": domain.AdvisoryID("LEMR", at),
				"valid_at":    at.Format(time.RFC3339),
			},
		})
		got := balancer.Balance(msg, partitions...)
		if want < 0 {
			want = got
		}
		assert.Equal(t, want, got, "hour %d", hour)
	}
}
