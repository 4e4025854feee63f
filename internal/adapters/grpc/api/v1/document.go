package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// DocumentServiceName は DocumentService の完全修飾名です。
const DocumentServiceName = packageName + ".DocumentService"

type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	RelatedTo string    `json:"related_to"`
	RelatedID *string   `json:"related_id,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateDocumentRequest struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	URL       string  `json:"url"`
	RelatedTo string  `json:"related_to"`
	RelatedID *string `json:"related_id,omitempty"`
	CreatedBy string  `json:"created_by"`
}

type UpdateDocumentRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Type      *string `json:"type,omitempty"`
	URL       *string `json:"url,omitempty"`
	RelatedTo *string `json:"related_to,omitempty"`
	RelatedID *string `json:"related_id,omitempty"`
}

type ListDocumentsRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	RelatedTo string `json:"related_to,omitempty"`
	RelatedID string `json:"related_id,omitempty"`
	Type      string `json:"type,omitempty"`
}

type ListDocumentsResponse struct {
	Documents     []*Document `json:"documents"`
	NextPageToken string      `json:"next_page_token,omitempty"`
}

type DocumentResponse struct {
	Document *Document `json:"document"`
}

// DocumentServiceServer は DocumentService のサーバー実装です。
type DocumentServiceServer interface {
	CreateDocument(context.Context, *CreateDocumentRequest) (*DocumentResponse, error)
	GetDocument(context.Context, *IDRequest) (*DocumentResponse, error)
	ListDocuments(context.Context, *ListDocumentsRequest) (*ListDocumentsResponse, error)
	UpdateDocument(context.Context, *UpdateDocumentRequest) (*DocumentResponse, error)
	DeleteDocument(context.Context, *IDRequest) (*Empty, error)
}

var DocumentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DocumentServiceName,
	HandlerType: (*DocumentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DocumentServiceName, "CreateDocument", DocumentServiceServer.CreateDocument),
		unary(DocumentServiceName, "GetDocument", DocumentServiceServer.GetDocument),
		unary(DocumentServiceName, "ListDocuments", DocumentServiceServer.ListDocuments),
		unary(DocumentServiceName, "UpdateDocument", DocumentServiceServer.UpdateDocument),
		unary(DocumentServiceName, "DeleteDocument", DocumentServiceServer.DeleteDocument),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterDocumentServiceServer(s grpc.ServiceRegistrar, srv DocumentServiceServer) {
	s.RegisterService(&DocumentService_ServiceDesc, srv)
}
