package worker

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeRepo struct {
	workers map[string]*Worker
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{workers: make(map[string]*Worker)}
}

func (r *fakeRepo) Create(_ context.Context, w *Worker) (*Worker, error) {
	for _, existing := range r.workers {
		if existing.DNI == w.DNI {
			return nil, ErrDNIAlreadyExists
		}
	}
	clone := cloneWorker(w)
	clone.ID = uuid.NewString()
	r.workers[clone.ID] = clone
	return cloneWorker(clone), nil
}

func (r *fakeRepo) Update(_ context.Context, w *Worker) (*Worker, error) {
	if _, ok := r.workers[w.ID]; !ok {
		return nil, ErrWorkerNotFound
	}
	for _, existing := range r.workers {
		if existing.ID != w.ID && existing.DNI == w.DNI {
			return nil, ErrDNIAlreadyExists
		}
	}
	r.workers[w.ID] = cloneWorker(w)
	return cloneWorker(w), nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.workers[id]; !ok {
		return ErrWorkerNotFound
	}
	delete(r.workers, id)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, ErrWorkerNotFound
	}
	return cloneWorker(w), nil
}

func (r *fakeRepo) List(_ context.Context, filter ListWorkersFilter) ([]*Worker, string, error) {
	var filtered []*Worker
	for _, w := range r.workers {
		if filter.CompanyID != nil && (w.CompanyID == nil || *w.CompanyID != *filter.CompanyID) {
			continue
		}
		if filter.Status != nil && w.Status != *filter.Status {
			continue
		}
		if filter.Search != nil {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(w.FullName), q) && !strings.Contains(w.DNI, q) {
				continue
			}
		}
		filtered = append(filtered, cloneWorker(w))
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].FullName < filtered[j].FullName })

	if filter.Offset > len(filtered) {
		return []*Worker{}, "", nil
	}
	end := min(filter.Offset+filter.Limit, len(filtered))
	var next string
	if end < len(filtered) {
		next = strconv.Itoa(end)
	}
	return filtered[filter.Offset:end], next, nil
}

func (r *fakeRepo) ListAssignmentCandidates(_ context.Context, companyID string) ([]*Worker, error) {
	var out []*Worker
	for _, w := range r.workers {
		if w.CompanyID != nil && *w.CompanyID == companyID && w.Status == StatusHabilitado &&
			w.Homologation.IsHomologated && w.Homologation.Status == lifecycle.HomologationVigente {
			out = append(out, cloneWorker(w))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *fakeRepo) ExpireHomologations(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, w := range r.workers {
		h := &w.Homologation
		if h.Status == lifecycle.HomologationVigente && h.Expiry != nil && h.Expiry.Before(asOf) {
			h.Status = lifecycle.HomologationVencida
			n++
		}
	}
	return n, nil
}

func cloneWorker(w *Worker) *Worker {
	if w == nil {
		return nil
	}
	clone := *w
	if w.CompanyID != nil {
		id := *w.CompanyID
		clone.CompanyID = &id
	}
	if w.Homologation.Type != nil {
		t := *w.Homologation.Type
		clone.Homologation.Type = &t
	}
	return &clone
}

func ptr[T any](v T) *T {
	return &v
}

func TestService_CreateWorker_Defaults(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(newFakeRepo(), clk, nil)

	created, err := svc.CreateWorker(context.Background(), CreateWorkerInput{
		DNI:      " 45879632 ",
		FullName: "Juan Perez",
		Homologation: &HomologationInput{
			IsHomologated: false,
			Type:          ptr(HomologationMedica),
			Status:        ptr(lifecycle.HomologationVigente),
		},
	})
	if err != nil {
		t.Fatalf("CreateWorker returned error: %v", err)
	}
	if created.DNI != "45879632" {
		t.Fatalf("expected trimmed dni, got %q", created.DNI)
	}
	if created.Status != StatusHabilitado {
		t.Fatalf("expected default status habilitado, got %s", created.Status)
	}
	if created.Homologation.Type != nil {
		t.Fatalf("expected type cleared for non-homologated worker")
	}
	if created.Homologation.Status != lifecycle.HomologationPendiente {
		t.Fatalf("expected pendiente for non-homologated worker, got %s", created.Homologation.Status)
	}
}

func TestService_CreateWorker_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.CreateWorker(ctx, CreateWorkerInput{
		DNI:      "123",
		FullName: "Juan Perez",
		Profile:  Profile{Email: ptr("not-an-email")},
	})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["dni"] == "" || verr.Fields["email"] == "" {
		t.Fatalf("expected dni and email messages, got %v", verr.Fields)
	}

	if _, err := svc.CreateWorker(ctx, CreateWorkerInput{DNI: "45879632", FullName: "Juan Perez", CompanyID: ptr("x")}); !errors.Is(err, ErrInvalidCompanyID) {
		t.Fatalf("expected ErrInvalidCompanyID, got %v", err)
	}

	_, err = svc.CreateWorker(ctx, CreateWorkerInput{
		DNI:      "45879632",
		FullName: "Juan Perez",
		Homologation: &HomologationInput{
			IsHomologated: true,
			Date:          ptr(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
			Expiry:        ptr(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
		},
	})
	if !errors.Is(err, ErrInvalidHomologationPeriod) {
		t.Fatalf("expected ErrInvalidHomologationPeriod, got %v", err)
	}
}

func TestService_CreateWorker_DuplicateDNI(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	if _, err := svc.CreateWorker(ctx, CreateWorkerInput{DNI: "45879632", FullName: "Juan Perez"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateWorker(ctx, CreateWorkerInput{DNI: "45879632", FullName: "Luis Rojas"}); !errors.Is(err, ErrDNIAlreadyExists) {
		t.Fatalf("expected ErrDNIAlreadyExists, got %v", err)
	}
}

func TestService_GetWorker_ReportsEffectiveHomologationStatus(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(newFakeRepo(), clk, nil)
	ctx := context.Background()

	created, err := svc.CreateWorker(ctx, CreateWorkerInput{
		DNI:      "45879632",
		FullName: "Juan Perez",
		Homologation: &HomologationInput{
			IsHomologated: true,
			Type:          ptr(HomologationSeguridad),
			Status:        ptr(lifecycle.HomologationVigente),
			Expiry:        ptr(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)),
		},
	})
	if err != nil {
		t.Fatalf("CreateWorker returned error: %v", err)
	}
	if created.Homologation.Status != lifecycle.HomologationVigente {
		t.Fatalf("expected vigente before expiry, got %s", created.Homologation.Status)
	}

	clk.now = time.Date(2025, 5, 21, 9, 0, 0, 0, time.UTC)
	got, err := svc.GetWorker(ctx, GetWorkerInput{ID: created.ID})
	if err != nil {
		t.Fatalf("GetWorker returned error: %v", err)
	}
	if got.Homologation.Status != lifecycle.HomologationVencida {
		t.Fatalf("expected vencida after expiry, got %s", got.Homologation.Status)
	}
	if got.IsAssignable("", clk.now) {
		t.Fatal("worker without company must not be assignable")
	}
}

func TestService_UpdateWorker_ReplacesHomologation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	created, err := svc.CreateWorker(ctx, CreateWorkerInput{DNI: "45879632", FullName: "Juan Perez"})
	if err != nil {
		t.Fatalf("CreateWorker returned error: %v", err)
	}

	companyID := uuid.NewString()
	updated, err := svc.UpdateWorker(ctx, UpdateWorkerInput{
		ID:        created.ID,
		CompanyID: &companyID,
		Status:    ptr(StatusInhabilitado),
		Homologation: &HomologationInput{
			IsHomologated: true,
			Type:          ptr(HomologationTecnica),
			Status:        ptr(lifecycle.HomologationSuspendida),
		},
	})
	if err != nil {
		t.Fatalf("UpdateWorker returned error: %v", err)
	}
	if updated.CompanyID == nil || *updated.CompanyID != companyID {
		t.Fatalf("expected company to be set")
	}
	if updated.Status != StatusInhabilitado {
		t.Fatalf("expected inhabilitado, got %s", updated.Status)
	}
	if updated.Homologation.Status != lifecycle.HomologationSuspendida {
		t.Fatalf("expected suspendida, got %s", updated.Homologation.Status)
	}

	empty := ""
	cleared, err := svc.UpdateWorker(ctx, UpdateWorkerInput{ID: created.ID, CompanyID: &empty})
	if err != nil {
		t.Fatalf("UpdateWorker returned error: %v", err)
	}
	if cleared.CompanyID != nil {
		t.Fatalf("expected blank company id to clear the company")
	}
}

func TestService_ListWorkers_Search(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	for i, name := range []string{"Maria Torres", "Juan Perez", "Mario Diaz"} {
		if _, err := svc.CreateWorker(ctx, CreateWorkerInput{DNI: "4587963" + strconv.Itoa(i), FullName: name}); err != nil {
			t.Fatalf("CreateWorker error: %v", err)
		}
	}

	result, err := svc.ListWorkers(ctx, ListWorkersInput{Search: ptr(" mari ")})
	if err != nil {
		t.Fatalf("ListWorkers returned error: %v", err)
	}
	if len(result.Workers) != 2 || result.Workers[0].FullName != "Maria Torres" || result.Workers[1].FullName != "Mario Diaz" {
		t.Fatalf("unexpected search result: %+v", result.Workers)
	}

	if _, err := svc.ListWorkers(ctx, ListWorkersInput{Status: ptr(Status("retirado"))}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
