package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName = "sgf.SgfService"

	checkMethod = "/" + serviceName + "/Check"
	gobanMethod = "/" + serviceName + "/Goban"
)

// SgfServiceServer is served over gRPC with protobuf well-known types as
// messages, so no generated code is needed.
type SgfServiceServer interface {
	// Check takes the SGF text and returns the record summary.
	Check(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// Goban takes {sgf, game, path} and returns the board position.
	Goban(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type UnimplementedSgfServiceServer struct{}

func (UnimplementedSgfServiceServer) Check(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Check not implemented")
}

func (UnimplementedSgfServiceServer) Goban(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Goban not implemented")
}

func RegisterSgfServiceServer(s grpc.ServiceRegistrar, srv SgfServiceServer) {
	s.RegisterService(&SgfService_ServiceDesc, srv)
}

func checkHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SgfServiceServer).Check(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: checkMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SgfServiceServer).Check(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func gobanHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SgfServiceServer).Goban(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: gobanMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SgfServiceServer).Goban(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var SgfService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SgfServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Check", Handler: checkHandler},
		{MethodName: "Goban", Handler: gobanHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sgf.proto",
}

type SgfServiceClient interface {
	Check(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	Goban(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type sgfServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSgfServiceClient(cc grpc.ClientConnInterface) SgfServiceClient {
	return &sgfServiceClient{cc: cc}
}

func (c *sgfServiceClient) Check(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, checkMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sgfServiceClient) Goban(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, gobanMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
