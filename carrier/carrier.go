// Package carrier adapts message-broker and RPC header types to the
// ctrace.Carrier interface, so span contexts can cross Kafka, RabbitMQ and
// gRPC boundaries with the text_map format.
//
//	headers := carrier.NewKafkaHeaders(&msg.Headers)
//	tracer.Inject(span.SpanContext(), ctrace.FormatTextMap, headers)
package carrier

import (
	"github.com/zoobzio/ctrace"
)

var (
	_ ctrace.Carrier = (*KafkaHeaders)(nil)
	_ ctrace.Carrier = AMQPTable(nil)
	_ ctrace.Carrier = GRPCMetadata(nil)
)
