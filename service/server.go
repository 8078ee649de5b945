// Package service exposes the model operations over gRPC.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/sbom/model"
)

// Server implements BOMServer on top of the model operations.
type Server struct {
	UnimplementedBOMServer

	// Options is handed to every operation; its CAS hydrates inputs given
	// by CID and receives results whose request asks to store them.
	Options model.Options
	// Metrics is optional.
	Metrics *Metrics
}

var _ BOMServer = (*Server)(nil)

func (s *Server) Convert(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return serve(ctx, s, "Convert", in, model.Convert)
}

func (s *Server) Validate(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return serve(ctx, s, "Validate", in, model.Validate)
}

func (s *Server) Merge(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return serve(ctx, s, "Merge", in, model.Merge)
}

func (s *Server) Diff(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return serve(ctx, s, "Diff", in, model.Diff)
}

func serve[Req, Resp any](ctx context.Context, s *Server, name string, in *wrapperspb.BytesValue, op func(context.Context, Req, model.Options) (*Resp, error)) (*wrapperspb.BytesValue, error) {
	start := time.Now()
	out, err := run(ctx, s, in, op)
	s.Metrics.observe(name, start, err)
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}

func run[Req, Resp any](ctx context.Context, s *Server, in *wrapperspb.BytesValue, op func(context.Context, Req, model.Options) (*Resp, error)) (*wrapperspb.BytesValue, error) {
	var req Req
	dec := json.NewDecoder(bytes.NewReader(in.GetValue()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, model.NewError(model.ErrInvalidRequest, "decode request: "+err.Error())
	}
	resp, err := op(ctx, req, s.Options)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(b), nil
}

var grpcCodes = map[model.ErrorCode]codes.Code{
	model.ErrInvalidRequest: codes.InvalidArgument,
	model.ErrInvalidCID:     codes.InvalidArgument,
	model.ErrParse:          codes.InvalidArgument,
	model.ErrUnsupported:    codes.Unimplemented,
	model.ErrConversion:     codes.FailedPrecondition,
	model.ErrMerge:          codes.FailedPrecondition,
	model.ErrMissingCAS:     codes.FailedPrecondition,
	model.ErrNotFound:       codes.NotFound,
	model.ErrCIDMismatch:    codes.DataLoss,
	model.ErrCanceled:       codes.Canceled,
}

// toStatus carries the coded error as JSON in the status message so the
// client can rebuild it.
func toStatus(err error) error {
	ce := model.AsCodedError(err)
	code, ok := grpcCodes[ce.Code]
	if !ok {
		code = codes.Internal
	}
	msg, merr := json.Marshal(ce)
	if merr != nil {
		return status.Error(code, ce.Error())
	}
	return status.Error(code, string(msg))
}
