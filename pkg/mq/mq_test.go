package mq

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue()

	require.NoError(t, q.Publish("events", []byte("a")))
	require.NoError(t, q.Publish("events", []byte("b")))
	require.NoError(t, q.Publish("other", []byte("c")))

	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, q.GetMessages("events"))
	assert.Len(t, q.GetMessages("other"), 1)
	assert.Empty(t, q.GetMessages("missing"))

	q.FailWith(errors.New("down"))
	assert.EqualError(t, q.Publish("events", []byte("d")), "down")
	assert.Len(t, q.GetMessages("events"), 2)
}

func TestKafkaConfigValidate(t *testing.T) {
	assert.NoError(t, (&KafkaConfig{}).Validate())
	assert.ErrorContains(t, (&KafkaConfig{Enabled: true}).Validate(), "brokers")
	assert.ErrorContains(t, (&KafkaConfig{Enabled: true, Brokers: []string{"localhost:9092"}}).Validate(), "topic")
	assert.NoError(t, (&KafkaConfig{Enabled: true, Brokers: []string{"localhost:9092"}, Topic: "t"}).Validate())
}

func TestKafkaProducerDisabled(t *testing.T) {
	p, err := NewKafkaProducer(KafkaConfig{})
	require.NoError(t, err)
	assert.Nil(t, p)

	// nil producer is a no-op
	assert.NoError(t, p.Publish("t", []byte("x")))
	assert.NoError(t, p.Close())
}

func TestKafkaProducerPublish(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true

	mock := mocks.NewSyncProducer(t, cfg)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != "payload" {
			return errors.Errorf("unexpected payload %q", val)
		}
		return nil
	})
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newKafkaProducer(KafkaConfig{Enabled: true, Topic: "t"}, mock)

	assert.NoError(t, p.Publish("t", []byte("payload")))
	assert.ErrorIs(t, p.Publish("t", []byte("payload")), sarama.ErrOutOfBrokers)
	assert.NoError(t, p.Close())
}
