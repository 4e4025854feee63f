// Package apiv1 は mining.v1 API のメッセージとサービス定義です。
// メッセージは JSON コーデック (content-subtype "json") で送受信されます。
package apiv1

import (
	"context"

	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/codec"
	"google.golang.org/grpc"
)

const packageName = "mining.v1"

// IDRequest は ID だけを受け取る取得・削除系リクエストです。
type IDRequest struct {
	ID string `json:"id"`
}

// Empty は空のメッセージです。
type Empty struct{}

func unary[S, Req, Resp any](service, method string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Invoke は JSON コーデックで単項 RPC を呼び出します。
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, service, method string, req any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, "/"+service+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
