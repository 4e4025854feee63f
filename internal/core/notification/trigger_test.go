package notification

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/evaluation"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/user"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeRepo struct {
	mu    sync.Mutex
	items map[string]*Notification
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*Notification)}
}

func (r *fakeRepo) CreateIfAbsent(_ context.Context, n *Notification) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.UserID == n.UserID && existing.EventKey == n.EventKey {
			return false, nil
		}
	}
	clone := *n
	clone.ID = uuid.NewString()
	r.seq++
	clone.CreatedAt = clone.CreatedAt.Add(time.Duration(r.seq) * time.Second)
	r.items[clone.ID] = &clone
	return true, nil
}

func (r *fakeRepo) ListForUser(_ context.Context, filter ListNotificationsFilter) ([]*Notification, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Notification
	for _, n := range r.items {
		if n.UserID != filter.UserID || (filter.UnreadOnly && n.Read) {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Offset > len(out) {
		return []*Notification{}, "", nil
	}
	end := min(filter.Offset+filter.Limit, len(out))
	var next string
	if end < len(out) {
		next = strconv.Itoa(end)
	}
	return out[filter.Offset:end], next, nil
}

func (r *fakeRepo) SetRead(_ context.Context, id, userID string, read bool) (*Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	n.Read = read
	out := *n
	return &out, nil
}

func (r *fakeRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.UserID == userID && !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.UserID != userID {
		return ErrNotificationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) UnreadCount(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) forUser(userID string) []*Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeResolver struct {
	byRole map[user.Role][]string
	err    error
}

func (f *fakeResolver) ListIDsByRoles(_ context.Context, roles []user.Role) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []string
	for _, role := range roles {
		ids = append(ids, f.byRole[role]...)
	}
	return ids, nil
}

type people struct {
	admin, rrhh, medico1, medico2, supervisor string
}

func newPeople() people {
	return people{
		admin:      uuid.NewString(),
		rrhh:       uuid.NewString(),
		medico1:    uuid.NewString(),
		medico2:    uuid.NewString(),
		supervisor: uuid.NewString(),
	}
}

func (p people) resolver() *fakeResolver {
	return &fakeResolver{byRole: map[user.Role][]string{
		user.RoleAdmin:      {p.admin},
		user.RoleRRHH:       {p.rrhh},
		user.RoleMedico:     {p.medico1, p.medico2},
		user.RoleSupervisor: {p.supervisor},
	}}
}

func expiredCert() *certification.Certification {
	return &certification.Certification{
		ID:         uuid.NewString(),
		WorkerID:   uuid.NewString(),
		CourseID:   uuid.NewString(),
		ExpiryDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		WorkerName: "Juan Perez",
		CourseName: "Trabajo en altura",
	}
}

func TestTrigger_CertificationExpired_OncePerRecipient(t *testing.T) {
	t.Parallel()

	p := newPeople()
	repo := newFakeRepo()
	trigger := NewTrigger(repo, p.resolver(), &stubClock{now: time.Date(2024, 6, 2, 6, 0, 0, 0, time.UTC)}, nil)
	cert := expiredCert()

	created, err := trigger.CertificationExpired(context.Background(), cert)
	if err != nil {
		t.Fatalf("CertificationExpired returned error: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected notifications for admin and rrhh, got %d", created)
	}

	notes := repo.forUser(p.admin)
	if len(notes) != 1 {
		t.Fatalf("expected one notification for admin, got %d", len(notes))
	}
	n := notes[0]
	if n.Type != TypeCertificacionVencida || n.Read {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.Message != "La certificación de Juan Perez en el curso Trabajo en altura venció el 2024-06-01" {
		t.Fatalf("unexpected message: %q", n.Message)
	}
	if n.EventKey != CertificationExpiredKey(cert.ID, "2024-06-01") {
		t.Fatalf("unexpected event key: %q", n.EventKey)
	}
	if len(repo.forUser(p.medico1)) != 0 {
		t.Fatal("medico must not receive expiry notifications by default")
	}

	again, err := trigger.CertificationExpired(context.Background(), cert)
	if err != nil {
		t.Fatalf("second CertificationExpired returned error: %v", err)
	}
	if again != 0 || len(repo.forUser(p.admin)) != 1 {
		t.Fatalf("expected duplicate suppression, created %d", again)
	}

	renewed := *cert
	renewed.ExpiryDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if n, err := trigger.CertificationExpired(context.Background(), &renewed); err != nil || n != 2 {
		t.Fatalf("expected a new event for a new expiry date, got %d (%v)", n, err)
	}
}

func TestTrigger_CertificationExpired_ConfiguredRoles(t *testing.T) {
	t.Parallel()

	p := newPeople()
	repo := newFakeRepo()
	trigger := NewTrigger(repo, p.resolver(), nil, []user.Role{user.RoleSupervisor})

	created, err := trigger.CertificationExpired(context.Background(), expiredCert())
	if err != nil {
		t.Fatalf("CertificationExpired returned error: %v", err)
	}
	if created != 1 || len(repo.forUser(p.supervisor)) != 1 {
		t.Fatalf("expected only the supervisor to be notified")
	}
}

func TestTrigger_EvaluationCreated_ExcludesEvaluator(t *testing.T) {
	t.Parallel()

	p := newPeople()
	repo := newFakeRepo()
	trigger := NewTrigger(repo, p.resolver(), nil, nil)

	e := &evaluation.Evaluation{
		ID:          uuid.NewString(),
		WorkerID:    uuid.NewString(),
		EvaluatorID: p.medico1,
		Type:        evaluation.TypeMedico,
		WorkerName:  "Juan Perez",
	}
	created, err := trigger.EvaluationCreated(context.Background(), e)
	if err != nil {
		t.Fatalf("EvaluationCreated returned error: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected one notification, got %d", created)
	}
	if len(repo.forUser(p.medico1)) != 0 {
		t.Fatal("evaluator must not be notified")
	}
	notes := repo.forUser(p.medico2)
	if len(notes) != 1 || notes[0].Type != TypeNuevaEvaluacion || notes[0].EventKey != EvaluationCreatedKey(e.ID) {
		t.Fatalf("unexpected notifications for medico2: %+v", notes)
	}
	if len(repo.forUser(p.admin)) != 0 {
		t.Fatal("admin must not be notified of a medico evaluation")
	}
}

func TestTrigger_RecipientQueryFailure(t *testing.T) {
	t.Parallel()

	trigger := NewTrigger(newFakeRepo(), &fakeResolver{err: errors.New("connection refused")}, nil, nil)

	if _, err := trigger.CertificationExpired(context.Background(), expiredCert()); !errors.Is(err, common.ErrQueryFailure) {
		t.Fatalf("expected ErrQueryFailure, got %v", err)
	}
}

func TestTrigger_Raise_Validation(t *testing.T) {
	t.Parallel()

	trigger := NewTrigger(newFakeRepo(), &fakeResolver{}, nil, nil)
	ctx := context.Background()

	if _, err := trigger.Raise(ctx, RaiseInput{Type: "alerta", Message: "x"}); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if _, err := trigger.Raise(ctx, RaiseInput{Type: TypeOtro, Message: "  "}); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}

	recipient := uuid.NewString()
	n, err := trigger.Raise(ctx, RaiseInput{Type: TypeOtro, Message: "hola", EventKey: "k", Recipients: []string{recipient, recipient}})
	if err != nil || n != 1 {
		t.Fatalf("expected duplicate recipients to collapse, got %d (%v)", n, err)
	}
}
