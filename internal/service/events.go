package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/noah-isme/edu-records-api/internal/middleware"
)

// RecordEvent announces a committed bulk write.
type RecordEvent struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Inserted      int       `json:"inserted"`
	Skipped       int       `json:"skipped"`
	Total         int       `json:"total"`
	StudentIDs    []uint    `json:"student_ids"`
	CourseIDs     []uint    `json:"course_ids"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RecordEventPublisher delivers record events to interested consumers.
type RecordEventPublisher interface {
	PublishRecords(ctx context.Context, event RecordEvent) error
}

// natsMessenger is the subset of *nats.Conn used for publishing.
type natsMessenger interface {
	PublishMsg(msg *nats.Msg) error
}

type natsRecordPublisher struct {
	conn    natsMessenger
	subject string
}

// NewNATSRecordPublisher publishes events to "<subject>.<kind>". A nil
// connection yields a publisher that drops every event.
func NewNATSRecordPublisher(conn *nats.Conn, subject string) RecordEventPublisher {
	if conn == nil {
		return noopRecordPublisher{}
	}
	return &natsRecordPublisher{conn: conn, subject: subject}
}

func (p *natsRecordPublisher) PublishRecords(ctx context.Context, event RecordEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CorrelationID == "" {
		event.CorrelationID = middleware.CorrelationIDFromContext(ctx)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode record event: %w", err)
	}

	msg := nats.NewMsg(fmt.Sprintf("%s.%s", p.subject, event.Kind))
	msg.Data = payload
	msg.Header.Set("Nats-Msg-Id", event.ID)
	if event.CorrelationID != "" {
		msg.Header.Set(middleware.HeaderCorrelationID, event.CorrelationID)
	}
	return p.conn.PublishMsg(msg)
}

type noopRecordPublisher struct{}

func (noopRecordPublisher) PublishRecords(context.Context, RecordEvent) error {
	return nil
}
