package kafka

import (
	"context"

	kafka "github.com/segmentio/kafka-go"
	wbkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
)

// ConsumerClient receives recheck requests from the recheck topic.
type ConsumerClient struct {
	consumer *wbkafka.Consumer
	retries  retry.Strategy
}

func NewConsumerClient(brokers []string, topic, groupID string, retries retry.Strategy) *ConsumerClient {
	return &ConsumerClient{
		consumer: wbkafka.NewConsumer(brokers, topic, groupID),
		retries:  retries,
	}
}

func (c *ConsumerClient) StartConsuming(ctx context.Context, out chan<- kafka.Message) {
	c.consumer.StartConsuming(ctx, out, c.retries)
}

func (c *ConsumerClient) Commit(ctx context.Context, msg kafka.Message) error {
	return c.consumer.Commit(ctx, msg)
}

func (c *ConsumerClient) Close() error {
	return c.consumer.Close()
}
