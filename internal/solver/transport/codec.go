package transport

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec is a google.golang.org/grpc/encoding.Codec implementation
// using encoding/json in place of protobuf wire messages. The Solve
// service carries one request and one response type, both small; JSON
// keeps the wire format debuggable and drops the protoc build step while
// still running over the standard grpc.Server/grpc.ClientConn machinery.
type jsonCodec struct{}

// Name implements encoding.Codec. The content-subtype travels in the gRPC
// request's content-type header ("application/grpc+json"), which is how a
// client selects this codec on an Invoke call via grpc.CallContentSubtype.
func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
