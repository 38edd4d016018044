package broker

import "context"

type Producer interface {
	SendMessage(ctx context.Context, key, value []byte) error
}

// NopProducer drops every message; used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) SendMessage(context.Context, []byte, []byte) error {
	return nil
}
