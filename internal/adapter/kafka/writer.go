package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/facility-safety-service/internal/config"
	"github.com/couchcryptid/facility-safety-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Message header keys.
const (
	HeaderScanID   = "scan_id"
	HeaderScoredAt = "scored_at"
)

// messageWriter is the subset of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes facility score events to a Kafka topic.
// It implements pipeline.ScorePublisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured scores topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaScoresTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishScores serializes and publishes one message per facility in a single
// WriteMessages call. Messages are keyed by facility id so every score of a
// facility lands on the same partition.
func (w *Writer) PublishScores(ctx context.Context, events []domain.ScoreEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d score events: %w", len(msgs), err)
	}
	w.logger.Debug("score events published", "count", len(msgs), "scan_id", events[0].ScanID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ScoreEvent into a Kafka message.
func serializeToMessage(event domain.ScoreEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize score event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.FacilityID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderScanID, Value: []byte(event.ScanID)},
			{Key: HeaderScoredAt, Value: []byte(event.ScoredAt.Format(time.RFC3339))},
		},
	}, nil
}
