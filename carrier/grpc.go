package carrier

import (
	"google.golang.org/grpc/metadata"
)

// GRPCMetadata adapts gRPC metadata. gRPC lowercases keys, so baggage names
// extracted through it come back lowercased.
type GRPCMetadata metadata.MD

// Get returns the first value for key.
func (c GRPCMetadata) Get(key string) string {
	values := metadata.MD(c).Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Set replaces all values for key with value.
func (c GRPCMetadata) Set(key, value string) {
	if c == nil {
		return
	}
	metadata.MD(c).Set(key, value)
}

// Keys returns all metadata keys.
func (c GRPCMetadata) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
