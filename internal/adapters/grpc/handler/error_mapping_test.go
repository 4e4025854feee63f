package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatusError_Kinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{name: "invalid input", err: common.InvalidInput("bad"), want: codes.InvalidArgument},
		{name: "not found", err: common.NotFound("missing"), want: codes.NotFound},
		{name: "duplicate", err: common.Duplicate("dup"), want: codes.AlreadyExists},
		{name: "constraint", err: common.ConstraintViolation("in use"), want: codes.FailedPrecondition},
		{name: "query failure", err: fmt.Errorf("list: %w", common.ErrQueryFailure), want: codes.Unavailable},
		{name: "canceled", err: context.Canceled, want: codes.Canceled},
		{name: "deadline", err: fmt.Errorf("wrapped: %w", context.DeadlineExceeded), want: codes.DeadlineExceeded},
		{name: "unknown", err: errors.New("unexpected"), want: codes.Internal},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := status.Code(toStatusError(tc.err)); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	if toStatusError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestToStatusError_ValidationDetails(t *testing.T) {
	t.Parallel()

	verr := &validation.Error{Fields: map[string]string{
		"name":  "must be at least 3 characters",
		"email": "must be a valid email",
	}}

	st, ok := status.FromError(toStatusError(fmt.Errorf("create: %w", verr)))
	if !ok || st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", st)
	}

	details := st.Details()
	if len(details) != 1 {
		t.Fatalf("expected one detail, got %d", len(details))
	}
	br, ok := details[0].(*errdetails.BadRequest)
	if !ok {
		t.Fatalf("expected BadRequest detail, got %T", details[0])
	}

	violations := br.GetFieldViolations()
	if len(violations) != 2 || violations[0].GetField() != "email" || violations[1].GetField() != "name" {
		t.Fatalf("expected sorted field violations, got %v", violations)
	}
}
