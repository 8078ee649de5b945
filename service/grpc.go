package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "xdao.sbom.service.v1.BOM"

// BOMServer is the server API for the BOM service. Each method takes the
// JSON encoding of the matching model request and answers with the JSON
// encoding of the model response.
type BOMServer interface {
	Convert(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Validate(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Merge(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Diff(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedBOMServer can be embedded to have forward compatible implementations.
type UnimplementedBOMServer struct{}

func (UnimplementedBOMServer) Convert(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Convert not implemented")
}
func (UnimplementedBOMServer) Validate(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Validate not implemented")
}
func (UnimplementedBOMServer) Merge(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Merge not implemented")
}
func (UnimplementedBOMServer) Diff(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Diff not implemented")
}

// RegisterBOMServer registers the BOM service on a gRPC server.
func RegisterBOMServer(s grpc.ServiceRegistrar, srv BOMServer) {
	s.RegisterService(&BOM_ServiceDesc, srv)
}

type method func(BOMServer, context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)

func handler(name string, call method) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(wrapperspb.BytesValue)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BOMServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(BOMServer), ctx, req.(*wrapperspb.BytesValue))
			})
		},
	}
}

// BOM_ServiceDesc is the grpc.ServiceDesc for the BOM service.
var BOM_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*BOMServer)(nil),
	Methods: []grpc.MethodDesc{
		handler("Convert", BOMServer.Convert),
		handler("Validate", BOMServer.Validate),
		handler("Merge", BOMServer.Merge),
		handler("Diff", BOMServer.Diff),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "xdao/sbom/service/v1/bom.proto",
}
