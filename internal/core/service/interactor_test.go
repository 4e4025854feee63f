package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeRepo struct {
	services map[string]*Service
	order    []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{services: make(map[string]*Service)}
}

func (r *fakeRepo) Create(_ context.Context, s *Service) (*Service, error) {
	clone := *s
	clone.ID = uuid.NewString()
	r.services[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *fakeRepo) Update(_ context.Context, s *Service) (*Service, error) {
	if _, ok := r.services[s.ID]; !ok {
		return nil, ErrServiceNotFound
	}
	clone := *s
	r.services[s.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	out := *s
	return &out, nil
}

func (r *fakeRepo) List(_ context.Context, filter ListServicesFilter) ([]*Service, string, error) {
	var filtered []*Service
	for _, id := range r.order {
		s, ok := r.services[id]
		if !ok {
			continue
		}
		if filter.CompanyID != nil && s.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		out := *s
		filtered = append(filtered, &out)
	}
	if filter.Offset > len(filtered) {
		return []*Service{}, "", nil
	}
	end := min(filter.Offset+filter.Limit, len(filtered))
	var next string
	if end < len(filtered) {
		next = strconv.Itoa(end)
	}
	return filtered[filter.Offset:end], next, nil
}

func TestInteractor_CreateService(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}
	it := NewInteractor(newFakeRepo(), clk, nil)

	companyID := uuid.NewString()
	created, err := it.CreateService(context.Background(), CreateServiceInput{
		Name:      "Perforacion Tajo Norte",
		CompanyID: " " + companyID + " ",
	})
	if err != nil {
		t.Fatalf("CreateService returned error: %v", err)
	}
	if created.Status != StatusActivo {
		t.Fatalf("expected default status activo, got %s", created.Status)
	}
	if created.CompanyID != companyID {
		t.Fatalf("expected normalized company id, got %s", created.CompanyID)
	}
	if created.ManagerID != nil {
		t.Fatalf("expected no manager")
	}
}

func TestInteractor_CreateService_Validation(t *testing.T) {
	t.Parallel()

	it := NewInteractor(newFakeRepo(), nil, nil)
	ctx := context.Background()

	_, err := it.CreateService(ctx, CreateServiceInput{Name: "Perforacion"})
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Fields["company_id"] != "is required" {
		t.Fatalf("expected company_id required, got %v", err)
	}

	if _, err := it.CreateService(ctx, CreateServiceInput{Name: "Perforacion", CompanyID: "abc"}); !errors.Is(err, ErrInvalidCompanyID) {
		t.Fatalf("expected ErrInvalidCompanyID, got %v", err)
	}

	bad := "nobody"
	if _, err := it.CreateService(ctx, CreateServiceInput{Name: "Perforacion", CompanyID: uuid.NewString(), ManagerID: &bad}); !errors.Is(err, ErrInvalidManagerID) {
		t.Fatalf("expected ErrInvalidManagerID, got %v", err)
	}
}

func TestInteractor_UpdateService_Deactivate(t *testing.T) {
	t.Parallel()

	it := NewInteractor(newFakeRepo(), nil, nil)
	ctx := context.Background()

	created, err := it.CreateService(ctx, CreateServiceInput{Name: "Voladura", CompanyID: uuid.NewString()})
	if err != nil {
		t.Fatalf("CreateService returned error: %v", err)
	}

	status := StatusInactivo
	managerID := uuid.NewString()
	updated, err := it.UpdateService(ctx, UpdateServiceInput{ID: created.ID, Status: &status, ManagerID: &managerID})
	if err != nil {
		t.Fatalf("UpdateService returned error: %v", err)
	}
	if updated.Status != StatusInactivo || updated.ManagerID == nil || *updated.ManagerID != managerID {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	list, err := it.ListServices(ctx, ListServicesInput{Status: &status})
	if err != nil {
		t.Fatalf("ListServices returned error: %v", err)
	}
	if len(list.Services) != 1 {
		t.Fatalf("expected 1 inactive service, got %d", len(list.Services))
	}
}

func TestInteractor_DeleteService_NotFound(t *testing.T) {
	t.Parallel()

	it := NewInteractor(newFakeRepo(), nil, nil)
	if err := it.DeleteService(context.Background(), DeleteServiceInput{ID: uuid.NewString()}); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}
