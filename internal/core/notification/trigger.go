package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/evaluation"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/user"
)

// DefaultExpiryRecipientRoles は認定失効通知の既定の宛先役割です。
var DefaultExpiryRecipientRoles = []user.Role{user.RoleAdmin, user.RoleRRHH}

// Trigger は状態遷移から通知の作成を判断します。
// certification.ExpiryNotifier と evaluation.Notifier を実装します。
type Trigger struct {
	repo        Repository
	recipients  RecipientResolver
	clock       common.Clock
	expiryRoles []user.Role
}

// NewTrigger は Trigger を生成します。expiryRoles が空の場合は DefaultExpiryRecipientRoles を使います。
func NewTrigger(repo Repository, recipients RecipientResolver, clock common.Clock, expiryRoles []user.Role) *Trigger {
	clock, _ = common.Defaults(clock, nil)
	if len(expiryRoles) == 0 {
		expiryRoles = DefaultExpiryRecipientRoles
	}
	return &Trigger{repo: repo, recipients: recipients, clock: clock, expiryRoles: expiryRoles}
}

// RaiseInput は通知発行の入力です。
type RaiseInput struct {
	Type       Type
	Message    string
	EventKey   string
	Recipients []string
}

// Raise は宛先ごとに通知を作成し、新たに作成した件数を返します。
// 同じ宛先とイベントの通知が既にある場合は作成しません。
func (t *Trigger) Raise(ctx context.Context, in RaiseInput) (int, error) {
	if !in.Type.IsValid() {
		return 0, ErrInvalidType
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return 0, ErrInvalidMessage
	}

	seen := make(map[string]struct{}, len(in.Recipients))
	created := 0
	for _, recipient := range in.Recipients {
		if _, ok := seen[recipient]; ok {
			continue
		}
		seen[recipient] = struct{}{}

		ok, err := t.repo.CreateIfAbsent(ctx, &Notification{
			UserID:    recipient,
			Type:      in.Type,
			Message:   message,
			EventKey:  in.EventKey,
			CreatedAt: t.clock.Now(),
		})
		if err != nil {
			return created, common.QueryFailure("create notification", err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// CertificationExpired は認定の失効を設定された役割のユーザーへ通知します。
// イベントは認定と有効期限の組で識別され、期限が更新されない限り再通知しません。
func (t *Trigger) CertificationExpired(ctx context.Context, cert *certification.Certification) (int, error) {
	recipients, err := t.recipients.ListIDsByRoles(ctx, t.expiryRoles)
	if err != nil {
		return 0, common.QueryFailure("resolve expiry recipients", err)
	}

	expiry := lifecycle.FormatDate(&cert.ExpiryDate)
	return t.Raise(ctx, RaiseInput{
		Type:       TypeCertificacionVencida,
		Message:    fmt.Sprintf("La certificación de %s en el curso %s venció el %s", displayName(cert.WorkerName, cert.WorkerID), displayName(cert.CourseName, cert.CourseID), expiry),
		EventKey:   CertificationExpiredKey(cert.ID, expiry),
		Recipients: recipients,
	})
}

// EvaluationCreated は評価種別と同じ役割のユーザーへ通知します。評価者本人は除きます。
func (t *Trigger) EvaluationCreated(ctx context.Context, e *evaluation.Evaluation) (int, error) {
	recipients, err := t.recipients.ListIDsByRoles(ctx, []user.Role{user.Role(e.Type)})
	if err != nil {
		return 0, common.QueryFailure("resolve evaluation recipients", err)
	}

	filtered := make([]string, 0, len(recipients))
	for _, id := range recipients {
		if id != e.EvaluatorID {
			filtered = append(filtered, id)
		}
	}

	return t.Raise(ctx, RaiseInput{
		Type:       TypeNuevaEvaluacion,
		Message:    fmt.Sprintf("Nueva evaluación %s registrada para %s", e.Type, displayName(e.WorkerName, e.WorkerID)),
		EventKey:   EvaluationCreatedKey(e.ID),
		Recipients: filtered,
	})
}

// CertificationExpiredKey は認定失効イベントのキーを返します。
func CertificationExpiredKey(certificationID, expiry string) string {
	return "certification:" + certificationID + ":vencido:" + expiry
}

// EvaluationCreatedKey は評価登録イベントのキーを返します。
func EvaluationCreatedKey(evaluationID string) string {
	return "evaluation:" + evaluationID
}

func displayName(name, fallback string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return fallback
}

var (
	_ certification.ExpiryNotifier = (*Trigger)(nil)
	_ evaluation.Notifier          = (*Trigger)(nil)
)
