package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
)

type certificationForm struct {
	WorkerID   string    `field:"worker_id" validate:"required,uuid"`
	IssueDate  time.Time `field:"issue_date" validate:"required"`
	ExpiryDate time.Time `field:"expiry_date" validate:"required,gtfield=IssueDate"`
	URL        string    `field:"document_url" validate:"omitempty,url"`
	Score      *int      `field:"score" validate:"omitempty,min=0,max=100"`
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	score := 80
	err := Struct(certificationForm{
		WorkerID:   "0b3c9ad2-6a5e-4a43-8d36-1d6f0a3b2c11",
		IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Score:      &score,
	})
	if err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestStruct_CollectsFieldMessages(t *testing.T) {
	t.Parallel()

	score := 101
	err := Struct(certificationForm{
		WorkerID:   "worker-1",
		IssueDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		URL:        "not a url",
		Score:      &score,
	})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatal("validation errors must be invalid input")
	}

	want := map[string]string{
		"worker_id":    "must be a valid uuid",
		"expiry_date":  "must be after issuedate",
		"document_url": "must be a valid url",
		"score":        "must be at most 100",
	}
	for field, msg := range want {
		if verr.Fields[field] != msg {
			t.Errorf("field %s: expected %q, got %q", field, msg, verr.Fields[field])
		}
	}
}
