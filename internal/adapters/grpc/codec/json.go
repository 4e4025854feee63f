package codec

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name は content-subtype として使うコーデック名です (application/grpc+json)。
const Name = "json"

// JSON は gRPC のメッセージを JSON で符号化するコーデックです。
// protobuf メッセージは protojson、それ以外の構造体は encoding/json で扱います。
type JSON struct{}

func init() {
	encoding.RegisterCodec(JSON{})
}

// Name はコーデック名を返します。
func (JSON) Name() string {
	return Name
}

// Marshal は v を JSON に変換します。
func (JSON) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

// Unmarshal は JSON を v に読み込みます。空のペイロードはゼロ値として扱います。
func (JSON) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
