package service

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/sbom/model"
)

// Client calls a remote BOM service with model requests.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) Convert(ctx context.Context, req model.ConvertRequest) (*model.ConvertResponse, error) {
	return call[model.ConvertResponse](ctx, c, "Convert", req)
}

func (c *Client) Validate(ctx context.Context, req model.ValidateRequest) (*model.ValidateResponse, error) {
	return call[model.ValidateResponse](ctx, c, "Validate", req)
}

func (c *Client) Merge(ctx context.Context, req model.MergeRequest) (*model.MergeResponse, error) {
	return call[model.MergeResponse](ctx, c, "Merge", req)
}

func (c *Client) Diff(ctx context.Context, req model.DiffRequest) (*model.DiffResponse, error) {
	return call[model.DiffResponse](ctx, c, "Diff", req)
}

func call[Resp any](ctx context.Context, c *Client, name string, req any, opts ...grpc.CallOption) (*Resp, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/"+name, wrapperspb.Bytes(b), out, opts...); err != nil {
		return nil, fromStatus(err)
	}
	resp := new(Resp)
	if err := json.Unmarshal(out.GetValue(), resp); err != nil {
		return nil, model.NewError(model.ErrInternal, "decode response: "+err.Error())
	}
	return resp, nil
}

// fromStatus rebuilds the coded error a server sent; other transport
// errors are returned unchanged.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var ce model.CodedError
	if json.Unmarshal([]byte(st.Message()), &ce) == nil && ce.Code != "" {
		return &ce
	}
	return err
}
