package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/course"
)

// CourseGrpcHandler は CourseService の gRPC 実装です。
type CourseGrpcHandler struct {
	svc course.UseCase
}

var _ apiv1.CourseServiceServer = (*CourseGrpcHandler)(nil)

// NewCourseGrpcHandler は CourseGrpcHandler を生成します。
func NewCourseGrpcHandler(svc course.UseCase) *CourseGrpcHandler {
	return &CourseGrpcHandler{svc: svc}
}

func (h *CourseGrpcHandler) CreateCourse(ctx context.Context, req *apiv1.CreateCourseRequest) (*apiv1.CourseResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	created, err := h.svc.CreateCourse(ctx, course.CreateCourseInput{
		Name:          req.Name,
		Description:   req.Description,
		DurationHours: int(req.DurationHours),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CourseResponse{Course: toAPICourse(created)}, nil
}

func (h *CourseGrpcHandler) GetCourse(ctx context.Context, req *apiv1.IDRequest) (*apiv1.CourseResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetCourse(ctx, course.GetCourseInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CourseResponse{Course: toAPICourse(found)}, nil
}

func (h *CourseGrpcHandler) ListCourses(ctx context.Context, req *apiv1.ListCoursesRequest) (*apiv1.ListCoursesResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListCourses(ctx, course.ListCoursesInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	courses := make([]*apiv1.Course, 0, len(result.Courses))
	for _, c := range result.Courses {
		courses = append(courses, toAPICourse(c))
	}

	return &apiv1.ListCoursesResponse{Courses: courses, NextPageToken: result.NextPageToken}, nil
}

func (h *CourseGrpcHandler) UpdateCourse(ctx context.Context, req *apiv1.UpdateCourseRequest) (*apiv1.CourseResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	updated, err := h.svc.UpdateCourse(ctx, course.UpdateCourseInput{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		DurationHours: intPtr(req.DurationHours),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CourseResponse{Course: toAPICourse(updated)}, nil
}

func (h *CourseGrpcHandler) DeleteCourse(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteCourse(ctx, course.DeleteCourseInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func toAPICourse(c *course.Course) *apiv1.Course {
	if c == nil {
		return nil
	}
	return &apiv1.Course{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		DurationHours: int32(c.DurationHours),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
