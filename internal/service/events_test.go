package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/middleware"
)

type capturingMessenger struct {
	msgs []*nats.Msg
}

func (c *capturingMessenger) PublishMsg(msg *nats.Msg) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

func TestNATSRecordPublisherSubjectAndHeaders(t *testing.T) {
	messenger := &capturingMessenger{}
	publisher := &natsRecordPublisher{conn: messenger, subject: "edu.records"}

	ctx := middleware.ContextWithCorrelation(context.Background(), "corr-1")
	require.NoError(t, publisher.PublishRecords(ctx, RecordEvent{Kind: "attendance", Inserted: 2, Total: 3}))

	require.Len(t, messenger.msgs, 1)
	msg := messenger.msgs[0]
	require.Equal(t, "edu.records.attendance", msg.Subject)
	require.Equal(t, "corr-1", msg.Header.Get("X-Correlation-ID"))
	require.NotEmpty(t, msg.Header.Get("Nats-Msg-Id"))

	var event RecordEvent
	require.NoError(t, json.Unmarshal(msg.Data, &event))
	require.Equal(t, 2, event.Inserted)
	require.Equal(t, "corr-1", event.CorrelationID)
}

func TestNATSRecordPublisherWithoutConnection(t *testing.T) {
	publisher := NewNATSRecordPublisher(nil, "edu.records")
	require.NoError(t, publisher.PublishRecords(context.Background(), RecordEvent{Kind: "participation"}))
}
