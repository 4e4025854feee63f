package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

// Service は文書に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock common.Clock
	tx    common.TransactionManager
}

// UseCase は文書ユースケースの公開インターフェースです。
type UseCase interface {
	CreateDocument(ctx context.Context, in CreateDocumentInput) (*Document, error)
	GetDocument(ctx context.Context, in GetDocumentInput) (*Document, error)
	ListDocuments(ctx context.Context, in ListDocumentsInput) (*ListDocumentsResult, error)
	UpdateDocument(ctx context.Context, in UpdateDocumentInput) (*Document, error)
	DeleteDocument(ctx context.Context, in DeleteDocumentInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock common.Clock, tx common.TransactionManager) *Service {
	clock, tx = common.Defaults(clock, tx)
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateDocumentInput は文書登録時の入力です。
type CreateDocumentInput struct {
	Name      string    `field:"name" validate:"min=3,max=255"`
	Type      Type      `field:"type" validate:"required"`
	URL       string    `field:"url" validate:"required,url"`
	RelatedTo RelatedTo `field:"related_to" validate:"required"`
	RelatedID *string   `field:"related_id"`
	CreatedBy string    `field:"created_by" validate:"required,uuid"`
}

// UpdateDocumentInput は文書更新時の入力です。
type UpdateDocumentInput struct {
	ID        string
	Name      *string    `field:"name" validate:"omitempty,min=3,max=255"`
	Type      *Type      `field:"type"`
	URL       *string    `field:"url" validate:"omitempty,url"`
	RelatedTo *RelatedTo `field:"related_to"`
	RelatedID *string    `field:"related_id"`
}

// DeleteDocumentInput は文書削除時の入力です。
type DeleteDocumentInput struct {
	ID string
}

// GetDocumentInput は文書取得時の入力です。
type GetDocumentInput struct {
	ID string
}

// ListDocumentsInput は一覧取得時の入力です。
type ListDocumentsInput struct {
	PageSize  int
	PageToken string
	RelatedTo *RelatedTo
	RelatedID *string
	Type      *Type
}

// ListDocumentsResult は一覧取得結果を表します。
type ListDocumentsResult struct {
	Documents     []*Document
	NextPageToken string
}

// CreateDocument は文書を登録します。
func (s *Service) CreateDocument(ctx context.Context, in CreateDocumentInput) (*Document, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !in.Type.IsValid() {
		return nil, ErrInvalidType
	}

	relatedID, err := normalizeRelation(in.RelatedTo, in.RelatedID)
	if err != nil {
		return nil, err
	}
	createdBy, _ := common.NormalizeID(in.CreatedBy)

	var created *Document
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Document{
			Name:      in.Name,
			Type:      in.Type,
			URL:       in.URL,
			RelatedTo: in.RelatedTo,
			RelatedID: relatedID,
			CreatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateDocument は文書情報を更新します。
func (s *Service) UpdateDocument(ctx context.Context, in UpdateDocumentInput) (*Document, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if in.URL != nil {
		trimmed := strings.TrimSpace(*in.URL)
		in.URL = &trimmed
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Type != nil && !in.Type.IsValid() {
		return nil, ErrInvalidType
	}

	var updated *Document
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			existing.Name = *in.Name
		}
		if in.Type != nil {
			existing.Type = *in.Type
		}
		if in.URL != nil && *in.URL != "" {
			existing.URL = *in.URL
		}
		if in.RelatedTo != nil || in.RelatedID != nil {
			relatedTo := existing.RelatedTo
			if in.RelatedTo != nil {
				relatedTo = *in.RelatedTo
			}
			rawID := existing.RelatedID
			if in.RelatedID != nil {
				rawID = in.RelatedID
			}
			relatedID, err := normalizeRelation(relatedTo, rawID)
			if err != nil {
				return err
			}
			existing.RelatedTo = relatedTo
			existing.RelatedID = relatedID
		}
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteDocument は文書を削除します。
func (s *Service) DeleteDocument(ctx context.Context, in DeleteDocumentInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetDocument は ID で文書を取得します。
func (s *Service) GetDocument(ctx context.Context, in GetDocumentInput) (*Document, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Document
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// ListDocuments は文書の一覧を取得します。
func (s *Service) ListDocuments(ctx context.Context, in ListDocumentsInput) (*ListDocumentsResult, error) {
	limit, err := common.NormalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := common.ParsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	if in.Type != nil && !in.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if in.RelatedTo != nil && !in.RelatedTo.IsValid() {
		return nil, ErrInvalidRelatedTo
	}
	relatedID, ok := common.NormalizeOptionalID(in.RelatedID)
	if !ok {
		return nil, fmt.Errorf("related_id: %w", ErrInvalidID)
	}

	var result ListDocumentsResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		items, token, err := s.repo.List(txCtx, ListDocumentsFilter{
			Limit:     limit,
			Offset:    offset,
			RelatedTo: in.RelatedTo,
			RelatedID: relatedID,
			Type:      in.Type,
		})
		if err != nil {
			return err
		}
		result = ListDocumentsResult{Documents: items, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}

// normalizeRelation は関連先を検証します。other 以外では関連先 ID が必須です。
func normalizeRelation(relatedTo RelatedTo, rawID *string) (*string, error) {
	if !relatedTo.IsValid() {
		return nil, ErrInvalidRelatedTo
	}
	relatedID, ok := common.NormalizeOptionalID(rawID)
	if !ok {
		return nil, fmt.Errorf("related_id: %w", ErrInvalidID)
	}
	if relatedID == nil && relatedTo != RelatedOther {
		return nil, ErrRelatedIDRequired
	}
	return relatedID, nil
}
