package rpc

import (
	"golang.org/x/net/context"
	"google.golang.org/grpc"
)

const chooseMoveMethod = "/othello.Engine/ChooseMove"

type EngineClient interface {
	ChooseMove(ctx context.Context, in *ChooseMoveRequest, opts ...grpc.CallOption) (*ChooseMoveResponse, error)
}

type engineClient struct {
	cc *grpc.ClientConn
}

func NewEngineClient(cc *grpc.ClientConn) EngineClient {
	return &engineClient{cc}
}

func (c *engineClient) ChooseMove(ctx context.Context, in *ChooseMoveRequest, opts ...grpc.CallOption) (*ChooseMoveResponse, error) {
	out := new(ChooseMoveResponse)
	err := c.cc.Invoke(ctx, chooseMoveMethod, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type EngineServer interface {
	ChooseMove(context.Context, *ChooseMoveRequest) (*ChooseMoveResponse, error)
}

func RegisterEngineServer(s *grpc.Server, srv EngineServer) {
	s.RegisterService(&engineServiceDesc, srv)
}

func chooseMoveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChooseMoveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).ChooseMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: chooseMoveMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EngineServer).ChooseMove(ctx, req.(*ChooseMoveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var engineServiceDesc = grpc.ServiceDesc{
	ServiceName: "othello.Engine",
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ChooseMove",
			Handler:    chooseMoveHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "othello.proto",
}
