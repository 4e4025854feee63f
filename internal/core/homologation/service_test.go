package homologation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
)

type fakeRepo struct {
	items map[string]*Homologation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*Homologation)}
}

func (r *fakeRepo) Create(_ context.Context, h *Homologation) (*Homologation, error) {
	for _, existing := range r.items {
		if existing.CompanyID == h.CompanyID && existing.CourseID == h.CourseID {
			return nil, ErrHomologationAlreadyExists
		}
	}
	clone := *h
	clone.ID = uuid.NewString()
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeRepo) Update(_ context.Context, h *Homologation) (*Homologation, error) {
	if _, ok := r.items[h.ID]; !ok {
		return nil, ErrHomologationNotFound
	}
	clone := *h
	r.items[h.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return ErrHomologationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Homologation, error) {
	h, ok := r.items[id]
	if !ok {
		return nil, ErrHomologationNotFound
	}
	out := *h
	return &out, nil
}

func (r *fakeRepo) List(_ context.Context, filter ListHomologationsFilter) ([]*Homologation, string, error) {
	var out []*Homologation
	for _, h := range r.items {
		if filter.CompanyID != nil && h.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.CourseID != nil && h.CourseID != *filter.CourseID {
			continue
		}
		clone := *h
		out = append(out, &clone)
	}
	return out, "", nil
}

func TestService_CreateHomologation_DefaultRequired(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil, nil)

	created, err := svc.CreateHomologation(context.Background(), CreateHomologationInput{
		CompanyID: uuid.NewString(),
		CourseID:  uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("CreateHomologation returned error: %v", err)
	}
	if !created.IsRequired {
		t.Fatal("expected is_required to default to true")
	}
}

func TestService_CreateHomologation_Duplicate(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()
	in := CreateHomologationInput{CompanyID: uuid.NewString(), CourseID: uuid.NewString()}

	if _, err := svc.CreateHomologation(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.CreateHomologation(ctx, in)
	if !errors.Is(err, ErrHomologationAlreadyExists) || !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrHomologationAlreadyExists, got %v", err)
	}
}

func TestService_UpdateHomologation_Optional(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	created, err := svc.CreateHomologation(ctx, CreateHomologationInput{CompanyID: uuid.NewString(), CourseID: uuid.NewString()})
	if err != nil {
		t.Fatalf("CreateHomologation returned error: %v", err)
	}

	optional := false
	updated, err := svc.UpdateHomologation(ctx, UpdateHomologationInput{ID: created.ID, IsRequired: &optional})
	if err != nil {
		t.Fatalf("UpdateHomologation returned error: %v", err)
	}
	if updated.IsRequired {
		t.Fatal("expected is_required false")
	}

	list, err := svc.ListHomologations(ctx, ListHomologationsInput{CompanyID: &created.CompanyID})
	if err != nil {
		t.Fatalf("ListHomologations returned error: %v", err)
	}
	if len(list.Homologations) != 1 {
		t.Fatalf("expected 1 item, got %d", len(list.Homologations))
	}
}

func TestService_CreateHomologation_InvalidIDs(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil, nil)
	_, err := svc.CreateHomologation(context.Background(), CreateHomologationInput{CompanyID: "x", CourseID: uuid.NewString()})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
