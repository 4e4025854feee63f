package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/document"
)

// DocumentGrpcHandler は DocumentService の gRPC 実装です。
type DocumentGrpcHandler struct {
	svc document.UseCase
}

var _ apiv1.DocumentServiceServer = (*DocumentGrpcHandler)(nil)

// NewDocumentGrpcHandler は DocumentGrpcHandler を生成します。
func NewDocumentGrpcHandler(svc document.UseCase) *DocumentGrpcHandler {
	return &DocumentGrpcHandler{svc: svc}
}

func (h *DocumentGrpcHandler) CreateDocument(ctx context.Context, req *apiv1.CreateDocumentRequest) (*apiv1.DocumentResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	created, err := h.svc.CreateDocument(ctx, document.CreateDocumentInput{
		Name:      req.Name,
		Type:      document.Type(req.Type),
		URL:       req.URL,
		RelatedTo: document.RelatedTo(req.RelatedTo),
		RelatedID: req.RelatedID,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.DocumentResponse{Document: toAPIDocument(created)}, nil
}

func (h *DocumentGrpcHandler) GetDocument(ctx context.Context, req *apiv1.IDRequest) (*apiv1.DocumentResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetDocument(ctx, document.GetDocumentInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.DocumentResponse{Document: toAPIDocument(found)}, nil
}

func (h *DocumentGrpcHandler) ListDocuments(ctx context.Context, req *apiv1.ListDocumentsRequest) (*apiv1.ListDocumentsResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListDocuments(ctx, document.ListDocumentsInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		RelatedTo: optionalEnum[document.RelatedTo](req.RelatedTo),
		RelatedID: optionalString(req.RelatedID),
		Type:      optionalEnum[document.Type](req.Type),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	items := make([]*apiv1.Document, 0, len(result.Documents))
	for _, d := range result.Documents {
		items = append(items, toAPIDocument(d))
	}

	return &apiv1.ListDocumentsResponse{Documents: items, NextPageToken: result.NextPageToken}, nil
}

func (h *DocumentGrpcHandler) UpdateDocument(ctx context.Context, req *apiv1.UpdateDocumentRequest) (*apiv1.DocumentResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	updated, err := h.svc.UpdateDocument(ctx, document.UpdateDocumentInput{
		ID:        req.ID,
		Name:      req.Name,
		Type:      enumPtr[document.Type](req.Type),
		URL:       req.URL,
		RelatedTo: enumPtr[document.RelatedTo](req.RelatedTo),
		RelatedID: req.RelatedID,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.DocumentResponse{Document: toAPIDocument(updated)}, nil
}

func (h *DocumentGrpcHandler) DeleteDocument(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteDocument(ctx, document.DeleteDocumentInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func toAPIDocument(d *document.Document) *apiv1.Document {
	if d == nil {
		return nil
	}
	return &apiv1.Document{
		ID:        d.ID,
		Name:      d.Name,
		Type:      string(d.Type),
		URL:       d.URL,
		RelatedTo: string(d.RelatedTo),
		RelatedID: d.RelatedID,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
