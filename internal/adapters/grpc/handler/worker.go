package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/worker"
)

// WorkerGrpcHandler は WorkerService の gRPC 実装です。
type WorkerGrpcHandler struct {
	svc  worker.UseCase
	view expiryView
}

var _ apiv1.WorkerServiceServer = (*WorkerGrpcHandler)(nil)

// NewWorkerGrpcHandler は WorkerGrpcHandler を生成します。thresholds は認証期限の区分に使います。
func NewWorkerGrpcHandler(svc worker.UseCase, thresholds lifecycle.Thresholds, clock common.Clock) *WorkerGrpcHandler {
	return &WorkerGrpcHandler{svc: svc, view: newExpiryView(thresholds, clock)}
}

// CreateWorker は作業員を登録します。
func (h *WorkerGrpcHandler) CreateWorker(ctx context.Context, req *apiv1.CreateWorkerRequest) (*apiv1.WorkerResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	var profile worker.Profile
	if req.Profile != nil {
		p, err := toDomainProfile(req.Profile)
		if err != nil {
			return nil, toStatusError(err)
		}
		profile = p
	}

	homologation, err := toDomainHomologationInput(req.Homologation)
	if err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.CreateWorker(ctx, worker.CreateWorkerInput{
		DNI:          req.DNI,
		FullName:     req.FullName,
		Status:       enumPtr[worker.Status](req.Status),
		CompanyID:    req.CompanyID,
		Profile:      profile,
		Homologation: homologation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.WorkerResponse{Worker: h.view.worker(created)}, nil
}

// GetWorker は作業員を取得します。
func (h *WorkerGrpcHandler) GetWorker(ctx context.Context, req *apiv1.IDRequest) (*apiv1.WorkerResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetWorker(ctx, worker.GetWorkerInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.WorkerResponse{Worker: h.view.worker(found)}, nil
}

// ListWorkers は作業員の一覧を取得します。
func (h *WorkerGrpcHandler) ListWorkers(ctx context.Context, req *apiv1.ListWorkersRequest) (*apiv1.ListWorkersResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListWorkers(ctx, worker.ListWorkersInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		CompanyID: optionalString(req.CompanyID),
		Status:    optionalEnum[worker.Status](req.Status),
		Search:    optionalString(req.Search),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.ListWorkersResponse{
		Workers:       h.view.workers(result.Workers),
		NextPageToken: result.NextPageToken,
	}, nil
}

// UpdateWorker は作業員情報を更新します。
func (h *WorkerGrpcHandler) UpdateWorker(ctx context.Context, req *apiv1.UpdateWorkerRequest) (*apiv1.WorkerResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	var profile *worker.Profile
	if req.Profile != nil {
		p, err := toDomainProfile(req.Profile)
		if err != nil {
			return nil, toStatusError(err)
		}
		profile = &p
	}

	homologation, err := toDomainHomologationInput(req.Homologation)
	if err != nil {
		return nil, toStatusError(err)
	}

	updated, err := h.svc.UpdateWorker(ctx, worker.UpdateWorkerInput{
		ID:           req.ID,
		DNI:          req.DNI,
		FullName:     req.FullName,
		Status:       enumPtr[worker.Status](req.Status),
		CompanyID:    req.CompanyID,
		Profile:      profile,
		Homologation: homologation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.WorkerResponse{Worker: h.view.worker(updated)}, nil
}

// DeleteWorker は作業員を削除します。
func (h *WorkerGrpcHandler) DeleteWorker(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteWorker(ctx, worker.DeleteWorkerInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func toDomainHomologationInput(in *apiv1.WorkerHomologationInput) (*worker.HomologationInput, error) {
	if in == nil {
		return nil, nil
	}

	date, err := parseDate("homologation.date", in.Date)
	if err != nil {
		return nil, err
	}
	expiry, err := parseDate("homologation.expiry", in.Expiry)
	if err != nil {
		return nil, err
	}

	return &worker.HomologationInput{
		IsHomologated:     in.IsHomologated,
		Type:              enumPtr[worker.HomologationType](in.Type),
		Status:            enumPtr[lifecycle.HomologationStatus](in.Status),
		Date:              date,
		Expiry:            expiry,
		Entity:            in.Entity,
		CertificateNumber: in.CertificateNumber,
		Notes:             in.Notes,
	}, nil
}

func toDomainProfile(in *apiv1.WorkerProfile) (worker.Profile, error) {
	birth, err := parseDate("profile.birth_date", in.BirthDate)
	if err != nil {
		return worker.Profile{}, err
	}
	start, err := parseDate("profile.start_date", in.StartDate)
	if err != nil {
		return worker.Profile{}, err
	}
	end, err := parseDate("profile.end_date", in.EndDate)
	if err != nil {
		return worker.Profile{}, err
	}

	return worker.Profile{
		Phone:             in.Phone,
		Email:             in.Email,
		Position:          in.Position,
		PhotoURL:          in.PhotoURL,
		Country:           in.Country,
		Gender:            in.Gender,
		MaritalStatus:     in.MaritalStatus,
		BirthDate:         birth,
		PersonalEmail:     in.PersonalEmail,
		Address:           in.Address,
		Landline:          in.Landline,
		Career:            in.Career,
		StartDate:         start,
		EndDate:           end,
		Site:              in.Site,
		Area:              in.Area,
		Local:             in.Local,
		WorkingConditions: in.WorkingConditions,
	}, nil
}

func (v expiryView) workers(ws []*worker.Worker) []*apiv1.Worker {
	out := make([]*apiv1.Worker, 0, len(ws))
	for _, w := range ws {
		out = append(out, v.worker(w))
	}
	return out
}

func (v expiryView) worker(w *worker.Worker) *apiv1.Worker {
	if w == nil {
		return nil
	}

	hom := w.Homologation
	return &apiv1.Worker{
		ID:        w.ID,
		DNI:       w.DNI,
		FullName:  w.FullName,
		Status:    string(w.Status),
		CompanyID: w.CompanyID,
		Profile:   toAPIProfile(w.Profile),
		Homologation: apiv1.WorkerHomologation{
			IsHomologated:     hom.IsHomologated,
			Type:              stringPtr(hom.Type),
			Status:            string(hom.Status),
			Date:              lifecycle.FormatDate(hom.Date),
			Expiry:            lifecycle.FormatDate(hom.Expiry),
			Entity:            hom.Entity,
			CertificateNumber: hom.CertificateNumber,
			Notes:             hom.Notes,
			Window:            v.homologationWindow(hom),
		},
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// homologationWindow は認証期限の区分を返します。未認証の作業員には区分を付けません。
func (v expiryView) homologationWindow(h worker.Homologation) string {
	if !h.IsHomologated {
		return ""
	}
	return v.window(h.Expiry)
}

func toAPIProfile(p worker.Profile) apiv1.WorkerProfile {
	return apiv1.WorkerProfile{
		Phone:             p.Phone,
		Email:             p.Email,
		Position:          p.Position,
		PhotoURL:          p.PhotoURL,
		Country:           p.Country,
		Gender:            p.Gender,
		MaritalStatus:     p.MaritalStatus,
		BirthDate:         lifecycle.FormatDate(p.BirthDate),
		PersonalEmail:     p.PersonalEmail,
		Address:           p.Address,
		Landline:          p.Landline,
		Career:            p.Career,
		StartDate:         lifecycle.FormatDate(p.StartDate),
		EndDate:           lifecycle.FormatDate(p.EndDate),
		Site:              p.Site,
		Area:              p.Area,
		Local:             p.Local,
		WorkingConditions: p.WorkingConditions,
	}
}
