package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gacha-backend/internal/draw"
)

// Client calls ServiceName and decodes responses into draw.View.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) DrawSingle(ctx context.Context, sessionKey string) (draw.View, error) {
	return c.invoke(ctx, "DrawSingle", sessionKey)
}

func (c *Client) DrawBatch(ctx context.Context, sessionKey string) (draw.View, error) {
	return c.invoke(ctx, "DrawBatch", sessionKey)
}

func (c *Client) Reset(ctx context.Context, sessionKey string) (draw.View, error) {
	return c.invoke(ctx, "Reset", sessionKey)
}

func (c *Client) Status(ctx context.Context, sessionKey string) (draw.View, error) {
	return c.invoke(ctx, "Status", sessionKey)
}

func (c *Client) invoke(ctx context.Context, name, sessionKey string) (draw.View, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if sessionKey != "" {
		req.Fields[SessionField] = structpb.NewStringValue(sessionKey)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+name, req, out); err != nil {
		return draw.View{}, err
	}
	return decodeView(out)
}
