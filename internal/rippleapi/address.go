package rippleapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	RippleAddressAPI_GenerateAddress_FullMethodName  = "/rippleapi.address.RippleAddressAPI/GenerateAddress"
	RippleAddressAPI_GenerateXAddress_FullMethodName = "/rippleapi.address.RippleAddressAPI/GenerateXAddress"
	RippleAddressAPI_IsValidAddress_FullMethodName   = "/rippleapi.address.RippleAddressAPI/IsValidAddress"
)

// RippleAddressAPIServer is the server API for the address service.
type RippleAddressAPIServer interface {
	GenerateAddress(context.Context, *emptypb.Empty) (*ResponseGenerateAddress, error)
	GenerateXAddress(context.Context, *emptypb.Empty) (*ResponseGenerateXAddress, error)
	IsValidAddress(context.Context, *RequestIsValidAddress) (*ResponseIsValidAddress, error)
}

// UnimplementedRippleAddressAPIServer can be embedded to have forward compatible implementations.
type UnimplementedRippleAddressAPIServer struct{}

func (UnimplementedRippleAddressAPIServer) GenerateAddress(context.Context, *emptypb.Empty) (*ResponseGenerateAddress, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateAddress not implemented")
}
func (UnimplementedRippleAddressAPIServer) GenerateXAddress(context.Context, *emptypb.Empty) (*ResponseGenerateXAddress, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateXAddress not implemented")
}
func (UnimplementedRippleAddressAPIServer) IsValidAddress(context.Context, *RequestIsValidAddress) (*ResponseIsValidAddress, error) {
	return nil, status.Error(codes.Unimplemented, "method IsValidAddress not implemented")
}

func RegisterRippleAddressAPIServer(s grpc.ServiceRegistrar, srv RippleAddressAPIServer) {
	s.RegisterService(&RippleAddressAPI_ServiceDesc, srv)
}

// RippleAddressAPIClient is the client API for the address service.
type RippleAddressAPIClient interface {
	GenerateAddress(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ResponseGenerateAddress, error)
	GenerateXAddress(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ResponseGenerateXAddress, error)
	IsValidAddress(ctx context.Context, in *RequestIsValidAddress, opts ...grpc.CallOption) (*ResponseIsValidAddress, error)
}

type rippleAddressAPIClient struct{ cc grpc.ClientConnInterface }

func NewRippleAddressAPIClient(cc grpc.ClientConnInterface) RippleAddressAPIClient {
	return &rippleAddressAPIClient{cc: cc}
}

func (c *rippleAddressAPIClient) GenerateAddress(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ResponseGenerateAddress, error) {
	out := new(ResponseGenerateAddress)
	if err := c.cc.Invoke(ctx, RippleAddressAPI_GenerateAddress_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rippleAddressAPIClient) GenerateXAddress(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ResponseGenerateXAddress, error) {
	out := new(ResponseGenerateXAddress)
	if err := c.cc.Invoke(ctx, RippleAddressAPI_GenerateXAddress_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rippleAddressAPIClient) IsValidAddress(ctx context.Context, in *RequestIsValidAddress, opts ...grpc.CallOption) (*ResponseIsValidAddress, error) {
	out := new(ResponseIsValidAddress)
	if err := c.cc.Invoke(ctx, RippleAddressAPI_IsValidAddress_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func _RippleAddressAPI_GenerateAddress_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleAddressAPIServer).GenerateAddress(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleAddressAPI_GenerateAddress_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleAddressAPIServer).GenerateAddress(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _RippleAddressAPI_GenerateXAddress_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleAddressAPIServer).GenerateXAddress(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleAddressAPI_GenerateXAddress_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleAddressAPIServer).GenerateXAddress(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _RippleAddressAPI_IsValidAddress_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestIsValidAddress)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleAddressAPIServer).IsValidAddress(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleAddressAPI_IsValidAddress_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleAddressAPIServer).IsValidAddress(ctx, req.(*RequestIsValidAddress))
	}
	return interceptor(ctx, in, info, handler)
}

var RippleAddressAPI_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "rippleapi.address.RippleAddressAPI",
	HandlerType: (*RippleAddressAPIServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateAddress", Handler: _RippleAddressAPI_GenerateAddress_Handler},
		{MethodName: "GenerateXAddress", Handler: _RippleAddressAPI_GenerateXAddress_Handler},
		{MethodName: "IsValidAddress", Handler: _RippleAddressAPI_IsValidAddress_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "address.proto",
}
