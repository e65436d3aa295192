package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishDealEventKeysByDealID(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w, timeout: time.Second}

	err := p.PublishDealEvent(context.Background(), domain.DealEvent{
		Type: domain.EventDealApproved,
		Deal: &domain.Deal{
			ID:          7,
			RequesterID: 42,
			Address:     "0x52908400098527886E0F7030069857D2E4169EE7",
			Amount:      decimal.RequireFromString("2"),
			Status:      domain.DealApproved,
			TxHash:      "0xfeed",
		},
		ActorID: 5,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	require.Equal(t, "7", string(w.msgs[0].Key))

	var got DealEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	require.Equal(t, "deal_approved", got.Type)
	require.Equal(t, "approved", got.Status)
	require.Equal(t, "2", got.Amount)
	require.Equal(t, "0xfeed", got.TxHash)
	require.Equal(t, int64(5), got.ActorID)
	require.NotEmpty(t, got.EventID)
}

func TestPublishDealEventWrapsWriterError(t *testing.T) {
	p := &KafkaPublisher{writer: &recordingWriter{err: errors.New("broker down")}, timeout: time.Second}

	err := p.PublishDealEvent(context.Background(), domain.DealEvent{Type: domain.EventDealRejected, Deal: &domain.Deal{ID: 1}})
	require.ErrorContains(t, err, "broker down")
	require.ErrorContains(t, err, "deal_rejected")
}
