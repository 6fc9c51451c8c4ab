package pubsub

import (
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var _ PubSubClient = (*noopClient)(nil)

// noopClient is used when no GCP project is configured. Messages are encoded
// so payload errors still surface, then dropped.
type noopClient struct{}

// NewNoop returns a client that publishes nothing.
func NewNoop() PubSubClient {
	return noopClient{}
}

func (noopClient) SendMessage(topic EventType, data any) error {
	if _, err := msgpack.Marshal(data); err != nil {
		return err
	}
	log.Debug("Pub/Sub disabled, dropping message", "topic", topic)
	return nil
}

func (noopClient) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (noopClient) Close() {}
