package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// CourseServiceName は CourseService の完全修飾名です。
const CourseServiceName = packageName + ".CourseService"

type Course struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	DurationHours int32     `json:"duration_hours"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateCourseRequest struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	DurationHours int32   `json:"duration_hours"`
}

type UpdateCourseRequest struct {
	ID            string  `json:"id"`
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	DurationHours *int32  `json:"duration_hours,omitempty"`
}

type ListCoursesRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type ListCoursesResponse struct {
	Courses       []*Course `json:"courses"`
	NextPageToken string    `json:"next_page_token,omitempty"`
}

type CourseResponse struct {
	Course *Course `json:"course"`
}

// CourseServiceServer は CourseService のサーバー実装です。
type CourseServiceServer interface {
	CreateCourse(context.Context, *CreateCourseRequest) (*CourseResponse, error)
	GetCourse(context.Context, *IDRequest) (*CourseResponse, error)
	ListCourses(context.Context, *ListCoursesRequest) (*ListCoursesResponse, error)
	UpdateCourse(context.Context, *UpdateCourseRequest) (*CourseResponse, error)
	DeleteCourse(context.Context, *IDRequest) (*Empty, error)
}

var CourseService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CourseServiceName,
	HandlerType: (*CourseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CourseServiceName, "CreateCourse", CourseServiceServer.CreateCourse),
		unary(CourseServiceName, "GetCourse", CourseServiceServer.GetCourse),
		unary(CourseServiceName, "ListCourses", CourseServiceServer.ListCourses),
		unary(CourseServiceName, "UpdateCourse", CourseServiceServer.UpdateCourse),
		unary(CourseServiceName, "DeleteCourse", CourseServiceServer.DeleteCourse),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCourseServiceServer(s grpc.ServiceRegistrar, srv CourseServiceServer) {
	s.RegisterService(&CourseService_ServiceDesc, srv)
}
