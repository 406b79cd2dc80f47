package kafka

import (
	"context"

	wbkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
)

// ProducerClient publishes classification events to the classified
// topic.
type ProducerClient struct {
	producer *wbkafka.Producer
	retries  retry.Strategy
}

func NewProducerClient(brokers []string, topic string, retries retry.Strategy) *ProducerClient {
	return &ProducerClient{
		producer: wbkafka.NewProducer(brokers, topic),
		retries:  retries,
	}
}

func (p *ProducerClient) Publish(ctx context.Context, key, value []byte) error {
	return p.producer.SendWithRetry(ctx, p.retries, key, value)
}

func (p *ProducerClient) Close() error {
	return p.producer.Close()
}
