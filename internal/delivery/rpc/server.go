package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	errs "sgf_engine/internal/errors"
	recorduc "sgf_engine/internal/usecase/record"
)

type SgfRPC struct {
	UnimplementedSgfServiceServer
	log      *zap.SugaredLogger
	recordUC *recorduc.RecordUseCase
}

func NewSgfRPC(log *zap.SugaredLogger, recordUC *recorduc.RecordUseCase) *SgfRPC {
	return &SgfRPC{
		log:      log,
		recordUC: recordUC,
	}
}

func (s *SgfRPC) Check(_ context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	summary, err := s.recordUC.Check(in.GetValue())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(summary)
}

func (s *SgfRPC) Goban(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()

	game := 0
	if v, ok := fields["game"]; ok {
		n, err := index(v)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "game: %v", err)
		}
		game = n
	}

	path := []int{}
	for i, v := range fields["path"].GetListValue().GetValues() {
		n, err := index(v)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "path[%d]: %v", i, err)
		}
		path = append(path, n)
	}

	view, err := s.recordUC.Goban(fields["sgf"].GetStringValue(), game, path)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(view)
}

func index(v *structpb.Value) (int, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue < 0 || n.NumberValue != float64(int(n.NumberValue)) {
		return 0, fmt.Errorf("want a non-negative integer, got %v", v.AsInterface())
	}
	return int(n.NumberValue), nil
}

// toStruct goes through JSON so the message keys match the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *SgfRPC) toStatus(err error) error {
	code := CodeFor(err)
	if code == codes.Internal {
		s.log.Errorw("rpc failed", "error", err)
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}

func CodeFor(err error) codes.Code {
	switch {
	case errors.Is(err, errs.ErrInvalidSgf), errors.Is(err, errs.ErrInvalidGame):
		return codes.InvalidArgument
	case errors.Is(err, errs.ErrGameIndex), errors.Is(err, errs.ErrNodePath), errors.Is(err, errs.ErrNodeNotInGame):
		return codes.NotFound
	case errors.Is(err, errs.ErrInputTooLarge):
		return codes.ResourceExhausted
	}
	return codes.Internal
}
