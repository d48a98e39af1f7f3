package enrollment

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Student, error) {
	if filter.IsEmpty() {
		return svc.repo.QueryAllStudents(ctx)
	}
	return svc.repo.FilterStudents(ctx, filter)
}
