package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atrium/config"
	"atrium/infras/kafka"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.ConsumerGroup = "atrium-default"

	return cfg
}

func TestReader_EmptyTopic(t *testing.T) {
	client := kafka.New(testConfig())

	assert.Nil(t, client.Reader("my-group", ""))
}

func TestReader_ConsumerGroupFallback(t *testing.T) {
	client := kafka.New(testConfig())

	tests := []struct {
		name          string
		consumerGroup string
		wantGroupID   string
	}{
		{
			name:          "explicit group wins",
			consumerGroup: "my-group",
			wantGroupID:   "my-group",
		},
		{
			name:          "empty group falls back to the configured default",
			consumerGroup: "",
			wantGroupID:   "atrium-default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := client.Reader(tt.consumerGroup, "lock-lifecycle")

			assert.NotNil(t, reader)
			assert.Equal(t, tt.wantGroupID, reader.Config().GroupID)

			assert.NoError(t, reader.Close())
		})
	}
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	message := kafka.Message{
		Key: "venue-1",
		Value: map[string]string{
			"type":    "lock.acquired",
			"lock_id": "lock-1",
		},
	}

	kafkaMessage, err := message.ToKafkaMessage()

	assert.NoError(t, err)
	assert.Equal(t, "venue-1", string(kafkaMessage.Key))
	assert.JSONEq(t, `{"type":"lock.acquired","lock_id":"lock-1"}`, string(kafkaMessage.Value))
}

func TestDecodeKafkaMessage(t *testing.T) {
	message := kafka.Message{
		Key:   "venue-1",
		Value: map[string]any{"lock_id": "lock-1"},
	}

	kafkaMessage, err := message.ToKafkaMessage()
	assert.NoError(t, err)

	decoded, err := kafka.DecodeKafkaMessage[map[string]any](kafkaMessage)

	assert.NoError(t, err)
	assert.Equal(t, "venue-1", decoded.Key)
	assert.Equal(t, map[string]any{"lock_id": "lock-1"}, decoded.Value)
}
