package rippleapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	RippleTransactionAPI_PrepareTransaction_FullMethodName = "/rippleapi.transaction.RippleTransactionAPI/PrepareTransaction"
	RippleTransactionAPI_SignTransaction_FullMethodName    = "/rippleapi.transaction.RippleTransactionAPI/SignTransaction"
	RippleTransactionAPI_SubmitTransaction_FullMethodName  = "/rippleapi.transaction.RippleTransactionAPI/SubmitTransaction"
	RippleTransactionAPI_WaitValidation_FullMethodName     = "/rippleapi.transaction.RippleTransactionAPI/WaitValidation"
	RippleTransactionAPI_GetTransaction_FullMethodName     = "/rippleapi.transaction.RippleTransactionAPI/GetTransaction"
	RippleTransactionAPI_CombineTransaction_FullMethodName = "/rippleapi.transaction.RippleTransactionAPI/CombineTransaction"
)

// RippleTransactionAPIServer is the server API for the transaction service.
type RippleTransactionAPIServer interface {
	PrepareTransaction(context.Context, *RequestPrepareTransaction) (*ResponsePrepareTransaction, error)
	SignTransaction(context.Context, *RequestSignTransaction) (*ResponseSignTransaction, error)
	SubmitTransaction(context.Context, *RequestSubmitTransaction) (*ResponseSubmitTransaction, error)
	WaitValidation(*emptypb.Empty, RippleTransactionAPI_WaitValidationServer) error
	GetTransaction(context.Context, *RequestGetTransaction) (*ResponseGetTransaction, error)
	CombineTransaction(context.Context, *RequestCombineTransaction) (*ResponseCombineTransaction, error)
}

// UnimplementedRippleTransactionAPIServer can be embedded to have forward compatible implementations.
type UnimplementedRippleTransactionAPIServer struct{}

func (UnimplementedRippleTransactionAPIServer) PrepareTransaction(context.Context, *RequestPrepareTransaction) (*ResponsePrepareTransaction, error) {
	return nil, status.Error(codes.Unimplemented, "method PrepareTransaction not implemented")
}
func (UnimplementedRippleTransactionAPIServer) SignTransaction(context.Context, *RequestSignTransaction) (*ResponseSignTransaction, error) {
	return nil, status.Error(codes.Unimplemented, "method SignTransaction not implemented")
}
func (UnimplementedRippleTransactionAPIServer) SubmitTransaction(context.Context, *RequestSubmitTransaction) (*ResponseSubmitTransaction, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitTransaction not implemented")
}
func (UnimplementedRippleTransactionAPIServer) WaitValidation(*emptypb.Empty, RippleTransactionAPI_WaitValidationServer) error {
	return status.Error(codes.Unimplemented, "method WaitValidation not implemented")
}
func (UnimplementedRippleTransactionAPIServer) GetTransaction(context.Context, *RequestGetTransaction) (*ResponseGetTransaction, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTransaction not implemented")
}
func (UnimplementedRippleTransactionAPIServer) CombineTransaction(context.Context, *RequestCombineTransaction) (*ResponseCombineTransaction, error) {
	return nil, status.Error(codes.Unimplemented, "method CombineTransaction not implemented")
}

func RegisterRippleTransactionAPIServer(s grpc.ServiceRegistrar, srv RippleTransactionAPIServer) {
	s.RegisterService(&RippleTransactionAPI_ServiceDesc, srv)
}

// RippleTransactionAPIClient is the client API for the transaction service.
type RippleTransactionAPIClient interface {
	PrepareTransaction(ctx context.Context, in *RequestPrepareTransaction, opts ...grpc.CallOption) (*ResponsePrepareTransaction, error)
	SignTransaction(ctx context.Context, in *RequestSignTransaction, opts ...grpc.CallOption) (*ResponseSignTransaction, error)
	SubmitTransaction(ctx context.Context, in *RequestSubmitTransaction, opts ...grpc.CallOption) (*ResponseSubmitTransaction, error)
	WaitValidation(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (RippleTransactionAPI_WaitValidationClient, error)
	GetTransaction(ctx context.Context, in *RequestGetTransaction, opts ...grpc.CallOption) (*ResponseGetTransaction, error)
	CombineTransaction(ctx context.Context, in *RequestCombineTransaction, opts ...grpc.CallOption) (*ResponseCombineTransaction, error)
}

type rippleTransactionAPIClient struct{ cc grpc.ClientConnInterface }

func NewRippleTransactionAPIClient(cc grpc.ClientConnInterface) RippleTransactionAPIClient {
	return &rippleTransactionAPIClient{cc: cc}
}

func (c *rippleTransactionAPIClient) PrepareTransaction(ctx context.Context, in *RequestPrepareTransaction, opts ...grpc.CallOption) (*ResponsePrepareTransaction, error) {
	out := new(ResponsePrepareTransaction)
	if err := c.cc.Invoke(ctx, RippleTransactionAPI_PrepareTransaction_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rippleTransactionAPIClient) SignTransaction(ctx context.Context, in *RequestSignTransaction, opts ...grpc.CallOption) (*ResponseSignTransaction, error) {
	out := new(ResponseSignTransaction)
	if err := c.cc.Invoke(ctx, RippleTransactionAPI_SignTransaction_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rippleTransactionAPIClient) SubmitTransaction(ctx context.Context, in *RequestSubmitTransaction, opts ...grpc.CallOption) (*ResponseSubmitTransaction, error) {
	out := new(ResponseSubmitTransaction)
	if err := c.cc.Invoke(ctx, RippleTransactionAPI_SubmitTransaction_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rippleTransactionAPIClient) GetTransaction(ctx context.Context, in *RequestGetTransaction, opts ...grpc.CallOption) (*ResponseGetTransaction, error) {
	out := new(ResponseGetTransaction)
	if err := c.cc.Invoke(ctx, RippleTransactionAPI_GetTransaction_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rippleTransactionAPIClient) CombineTransaction(ctx context.Context, in *RequestCombineTransaction, opts ...grpc.CallOption) (*ResponseCombineTransaction, error) {
	out := new(ResponseCombineTransaction)
	if err := c.cc.Invoke(ctx, RippleTransactionAPI_CombineTransaction_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rippleTransactionAPIClient) WaitValidation(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (RippleTransactionAPI_WaitValidationClient, error) {
	stream, err := c.cc.NewStream(ctx, &RippleTransactionAPI_ServiceDesc.Streams[0], RippleTransactionAPI_WaitValidation_FullMethodName, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &rippleTransactionAPIWaitValidationClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// RippleTransactionAPI_WaitValidationClient receives one message per validated ledger.
type RippleTransactionAPI_WaitValidationClient interface {
	Recv() (*ResponseWaitValidation, error)
	grpc.ClientStream
}

type rippleTransactionAPIWaitValidationClient struct {
	grpc.ClientStream
}

func (x *rippleTransactionAPIWaitValidationClient) Recv() (*ResponseWaitValidation, error) {
	m := new(ResponseWaitValidation)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _RippleTransactionAPI_PrepareTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestPrepareTransaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleTransactionAPIServer).PrepareTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleTransactionAPI_PrepareTransaction_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleTransactionAPIServer).PrepareTransaction(ctx, req.(*RequestPrepareTransaction))
	}
	return interceptor(ctx, in, info, handler)
}

func _RippleTransactionAPI_SignTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestSignTransaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleTransactionAPIServer).SignTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleTransactionAPI_SignTransaction_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleTransactionAPIServer).SignTransaction(ctx, req.(*RequestSignTransaction))
	}
	return interceptor(ctx, in, info, handler)
}

func _RippleTransactionAPI_SubmitTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestSubmitTransaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleTransactionAPIServer).SubmitTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleTransactionAPI_SubmitTransaction_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleTransactionAPIServer).SubmitTransaction(ctx, req.(*RequestSubmitTransaction))
	}
	return interceptor(ctx, in, info, handler)
}

func _RippleTransactionAPI_GetTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestGetTransaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleTransactionAPIServer).GetTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleTransactionAPI_GetTransaction_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleTransactionAPIServer).GetTransaction(ctx, req.(*RequestGetTransaction))
	}
	return interceptor(ctx, in, info, handler)
}

func _RippleTransactionAPI_CombineTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestCombineTransaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RippleTransactionAPIServer).CombineTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RippleTransactionAPI_CombineTransaction_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RippleTransactionAPIServer).CombineTransaction(ctx, req.(*RequestCombineTransaction))
	}
	return interceptor(ctx, in, info, handler)
}

func _RippleTransactionAPI_WaitValidation_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(RippleTransactionAPIServer).WaitValidation(m, &rippleTransactionAPIWaitValidationServer{stream})
}

// RippleTransactionAPI_WaitValidationServer pushes validated ledger versions to one client.
type RippleTransactionAPI_WaitValidationServer interface {
	Send(*ResponseWaitValidation) error
	grpc.ServerStream
}

type rippleTransactionAPIWaitValidationServer struct {
	grpc.ServerStream
}

func (x *rippleTransactionAPIWaitValidationServer) Send(m *ResponseWaitValidation) error {
	return x.ServerStream.SendMsg(m)
}

var RippleTransactionAPI_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "rippleapi.transaction.RippleTransactionAPI",
	HandlerType: (*RippleTransactionAPIServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PrepareTransaction", Handler: _RippleTransactionAPI_PrepareTransaction_Handler},
		{MethodName: "SignTransaction", Handler: _RippleTransactionAPI_SignTransaction_Handler},
		{MethodName: "SubmitTransaction", Handler: _RippleTransactionAPI_SubmitTransaction_Handler},
		{MethodName: "GetTransaction", Handler: _RippleTransactionAPI_GetTransaction_Handler},
		{MethodName: "CombineTransaction", Handler: _RippleTransactionAPI_CombineTransaction_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WaitValidation",
			Handler:       _RippleTransactionAPI_WaitValidation_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "transaction.proto",
}
