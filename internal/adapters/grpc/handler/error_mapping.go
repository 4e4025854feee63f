package handler

import (
	"context"
	"errors"
	"sort"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatusError はドメインのエラー種別を gRPC ステータスに変換します。
// 一意制約違反は ErrConstraintViolation も内包するため AlreadyExists を先に判定します。
func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return validationStatus(verr)
	}

	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrConstraintViolation):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrQueryFailure):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func validationStatus(verr *validation.Error) error {
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(fields))
	for _, f := range fields {
		violations = append(violations, &errdetails.BadRequest_FieldViolation{Field: f, Description: verr.Fields[f]})
	}

	st := status.New(codes.InvalidArgument, verr.Error())
	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func requestRequired() error {
	return status.Error(codes.InvalidArgument, "request is required")
}
