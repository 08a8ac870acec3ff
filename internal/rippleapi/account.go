package rippleapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const RippleAccountAPI_GetAccountInfo_FullMethodName = "/rippleapi.account.RippleAccountAPI/GetAccountInfo"

// RippleAccountAPIServer is the server API for the account service.
type RippleAccountAPIServer interface {
	GetAccountInfo(context.Context, *RequestGetAccountInfo) (*ResponseGetAccountInfo, error)
}

// UnimplementedRippleAccountAPIServer can be embedded to have forward compatible implementations.
type UnimplementedRippleAccountAPIServer struct{}

func (UnimplementedRippleAccountAPIServer) GetAccountInfo(context.Context, *RequestGetAccountInfo) (*ResponseGetAccountInfo, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAccountInfo not implemented")
}

func RegisterRippleAccountAPIServer(s grpc.ServiceRegistrar, srv RippleAccountAPIServer) {
	s.RegisterService(&RippleAccountAPI_ServiceDesc, srv)
}

// RippleAccountAPIClient is the client API for the account service.
type RippleAccountAPIClient interface {
	GetAccountInfo(ctx context.Context, in *RequestGetAccountInfo, opts ...grpc.CallOption) (*ResponseGetAccountInfo, error)
}

type rippleAccountAPIClient struct{ cc grpc.ClientConnInterface }

func NewRippleAccountAPIClient(cc grpc.ClientConnInterface) RippleAccountAPIClient {
	return &rippleAccountAPIClient{cc: cc}
}

func (c *rippleAccountAPIClient) GetAccountInfo(ctx context.Context, in *RequestGetAccountInfo, opts ...grpc.CallOption) (*ResponseGetAccountInfo, error) {
	out := new(ResponseGetAccountInfo)
	if err := c.cc.Invoke(ctx, RippleAccountAPI_GetAccountInfo_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func _RippleAccountAPI_GetAccountInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestGetAccountInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleAccountAPIServer).GetAccountInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleAccountAPI_GetAccountInfo_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleAccountAPIServer).GetAccountInfo(ctx, req.(*RequestGetAccountInfo))
	}
	return interceptor(ctx, in, info, handler)
}

var RippleAccountAPI_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "rippleapi.account.RippleAccountAPI",
	HandlerType: (*RippleAccountAPIServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetAccountInfo", Handler: _RippleAccountAPI_GetAccountInfo_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "account.proto",
}
