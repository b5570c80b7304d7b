package carrier

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPTable adapts RabbitMQ message headers. Values that are neither string
// nor []byte read as "".
type AMQPTable amqp.Table

// Get returns the header value for key as a string.
func (c AMQPTable) Get(key string) string {
	switch v := c[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// Set stores value under key. Setting on a nil table is a no-op; wrap an
// initialized amqp.Table.
func (c AMQPTable) Set(key, value string) {
	if c == nil {
		return
	}
	c[key] = value
}

// Keys returns all header names.
func (c AMQPTable) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
