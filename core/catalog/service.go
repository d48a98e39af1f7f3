package catalog

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) QueryModules(ctx context.Context) ([]CourseModule, error) {
	return svc.repo.QueryAllModules(ctx)
}

func (svc *Service) QueryModulesByCourse(ctx context.Context, courseID string) ([]CourseModule, error) {
	return svc.repo.QueryModulesByCourse(ctx, courseID)
}
