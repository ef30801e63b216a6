package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/portfolio-api/internal/config"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

var testConfig = config.RabbitMQConfig{Exchange: "portfolio.submissions", RoutingKey: "submission.created"}

func TestRabbitMQ_Publish(t *testing.T) {
	ch := &fakeChannel{}
	rmq, err := newRabbitMQ(ch, testConfig)
	require.NoError(t, err)
	assert.Equal(t, []string{"portfolio.submissions:topic"}, ch.declared)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	err = rmq.Publish(context.Background(), SubmissionEvent{Kind: KindContact, ID: "id-1", Service: "seo", CreatedAt: created})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "portfolio.submissions/submission.created", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "id-1", msg.MessageId)
	assert.Equal(t, KindContact, msg.Type)

	var decoded SubmissionEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "id-1", decoded.ID)
	assert.True(t, created.Equal(decoded.CreatedAt))
}

func TestRabbitMQ_PublishErrorAndClose(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	rmq, err := newRabbitMQ(ch, testConfig)
	require.NoError(t, err)

	err = rmq.Publish(context.Background(), SubmissionEvent{Kind: KindServiceInquiry, ID: "x"})
	assert.ErrorContains(t, err, "channel closed")

	require.NoError(t, rmq.Close())
	assert.True(t, ch.closed)

	err = rmq.Publish(context.Background(), SubmissionEvent{Kind: KindContact, ID: "y"})
	assert.ErrorContains(t, err, "closed")
}
