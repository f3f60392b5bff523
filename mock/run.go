package mock

import (
	"context"

	"github.com/ethanol1310/hotnews"
)

var _ hotnews.RunService = (*RunService)(nil)

// RunService is a mock implementation of hotnews.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *hotnews.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*hotnews.Run, error)
	FindRunsFn    func(ctx context.Context, filter hotnews.RunFilter) ([]*hotnews.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *hotnews.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*hotnews.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter hotnews.RunFilter) ([]*hotnews.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
