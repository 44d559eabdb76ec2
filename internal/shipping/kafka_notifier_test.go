package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writerMock struct {
	messages []kafka.Message
	err      error
}

func (w *writerMock) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *writerMock) Close() error { return nil }

func TestKafkaNotifier_PublishesOneEvent(t *testing.T) {
	mock := &writerMock{}
	notifier := &KafkaNotifier{writer: mock}

	items := []PackageItem{
		{Name: "Cheese", WeightGrams: 700},
		{Name: "Cheese", WeightGrams: 700},
		{Name: "TV", WeightGrams: 15000},
	}
	require.NoError(t, notifier.NotifyShipment(context.Background(), items))

	require.Len(t, mock.messages, 1)
	msg := mock.messages[0]

	var event ShipmentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.NotEmpty(t, event.ShipmentID)
	assert.Equal(t, []byte(event.ShipmentID), msg.Key)
	assert.Equal(t, items, event.Items)
	assert.InDelta(t, 16.4, event.TotalWeightKg, 1e-9)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestKafkaNotifier_WriteFailure(t *testing.T) {
	wantErr := errors.New("broker unavailable")
	notifier := &KafkaNotifier{writer: &writerMock{err: wantErr}}

	err := notifier.NotifyShipment(context.Background(), []PackageItem{{Name: "TV", WeightGrams: 15000}})
	assert.ErrorIs(t, err, wantErr)
}
