package queue

// MessageQueue abstracts the broker carrying turn analytics events, so the
// server runs the same against NATS in production and RabbitMQ where that
// is what operations provides.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}
