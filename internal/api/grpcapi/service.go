// Package grpcapi serves the draw operations over gRPC. Messages are
// google.protobuf.Struct values carrying the same JSON shape as the HTTP API.
package grpcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gacha-backend/internal/draw"
	"github.com/xtding233/gacha-backend/internal/gacha"
	"github.com/xtding233/gacha-backend/internal/session"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "gacha.v1.GachaService"

// SessionField is the request field naming the session.
const SessionField = "session"

// GachaServer is the server API of ServiceName.
type GachaServer interface {
	DrawSingle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DrawBatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Status(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type method func(GachaServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, m method) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return m(srv.(GachaServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return m(srv.(GachaServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes ServiceName for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GachaServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("DrawSingle", GachaServer.DrawSingle),
		unary("DrawBatch", GachaServer.DrawBatch),
		unary("Reset", GachaServer.Reset),
		unary("Status", GachaServer.Status),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gacha/v1/gacha.proto",
}

// RegisterGachaServer registers srv on s.
func RegisterGachaServer(s grpc.ServiceRegistrar, srv GachaServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Service implements GachaServer on an Orchestrator.
type Service struct {
	orch *draw.Orchestrator
}

func NewService(orch *draw.Orchestrator) *Service {
	return &Service{orch: orch}
}

func (s *Service) DrawSingle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.run(ctx, req, s.orch.RunSingle)
}

func (s *Service) DrawBatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.run(ctx, req, s.orch.RunBatch)
}

func (s *Service) Reset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.run(ctx, req, s.orch.ResetAll)
}

func (s *Service) Status(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.run(ctx, req, s.orch.Status)
}

func (s *Service) run(ctx context.Context, req *structpb.Struct, op func(context.Context, string) (draw.Result, error)) (*structpb.Struct, error) {
	key, err := sessionKey(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := op(ctx, key)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeView(res.View())
}

func sessionKey(req *structpb.Struct) (string, error) {
	key := session.GlobalKey
	if v, ok := req.GetFields()[SessionField]; ok {
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return "", fmt.Errorf("%s must be a string", SessionField)
		}
		if sv.StringValue != "" {
			key = sv.StringValue
		}
	}
	if err := session.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// toStatus maps domain errors onto gRPC codes.
func toStatus(err error) error {
	var ce *gacha.ConfigError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case draw.IsStorageError(err):
		return status.Error(codes.Unavailable, err.Error())
	case errors.As(err, &ce):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func encodeView(v draw.View) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(b); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func decodeView(s *structpb.Struct) (draw.View, error) {
	var v draw.View
	b, err := s.MarshalJSON()
	if err != nil {
		return v, err
	}
	err = json.Unmarshal(b, &v)
	return v, err
}
