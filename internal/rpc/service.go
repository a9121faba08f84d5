// Package rpc exposes the lifecycle operations over gRPC. Messages are
// google.protobuf.Struct values carrying the same JSON shapes as the REST
// API, so no generated stubs are needed.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "skillnaav.v1.LifecycleService"

const (
	MethodListNotifications    = "ListNotifications"
	MethodMarkNotificationRead = "MarkNotificationRead"
	MethodDeleteNotification   = "DeleteNotification"
	MethodSaveJob              = "SaveJob"
	MethodListSavedJobs        = "ListSavedJobs"
	MethodRemoveSavedJob       = "RemoveSavedJob"
	MethodRespondToOffer       = "RespondToOffer"
)

type LifecycleServer interface {
	ListNotifications(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MarkNotificationRead(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteNotification(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveJob(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSavedJobs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveSavedJob(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RespondToOffer(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(LifecycleServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LifecycleServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(LifecycleServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var LifecycleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LifecycleServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodListNotifications, LifecycleServer.ListNotifications),
		unaryMethod(MethodMarkNotificationRead, LifecycleServer.MarkNotificationRead),
		unaryMethod(MethodDeleteNotification, LifecycleServer.DeleteNotification),
		unaryMethod(MethodSaveJob, LifecycleServer.SaveJob),
		unaryMethod(MethodListSavedJobs, LifecycleServer.ListSavedJobs),
		unaryMethod(MethodRemoveSavedJob, LifecycleServer.RemoveSavedJob),
		unaryMethod(MethodRespondToOffer, LifecycleServer.RespondToOffer),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterLifecycleServer(s grpc.ServiceRegistrar, srv LifecycleServer) {
	s.RegisterService(&LifecycleServiceDesc, srv)
}

func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// Client invokes LifecycleService methods by name.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Call(ctx context.Context, method string, in map[string]interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
