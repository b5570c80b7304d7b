package carrier

import (
	"github.com/segmentio/kafka-go"
)

// KafkaHeaders adapts a Kafka message's header slice. Set replaces the first
// header with a matching key, or appends one.
type KafkaHeaders struct {
	headers *[]kafka.Header
}

// NewKafkaHeaders wraps headers, typically &msg.Headers.
func NewKafkaHeaders(headers *[]kafka.Header) *KafkaHeaders {
	if headers == nil {
		headers = &[]kafka.Header{}
	}
	return &KafkaHeaders{headers: headers}
}

// Get returns the value of the first header named key.
func (c *KafkaHeaders) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set writes key, replacing an existing header of the same name.
func (c *KafkaHeaders) Set(key, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

// Keys returns header names in message order.
func (c *KafkaHeaders) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
