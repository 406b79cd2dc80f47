package broker

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Producer publishes classification events.
type Producer interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}

// Consumer delivers recheck requests to the bot.
type Consumer interface {
	StartConsuming(ctx context.Context, out chan<- kafka.Message)
	Commit(ctx context.Context, msg kafka.Message) error
	Close() error
}
