package usecase

import (
	"time"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
)

type UseCases struct {
	repo interfaces.Repository
	now  func() time.Time

	Estimation *EstimationUseCase
	Approval   *ApprovalUseCase
	Assignment *AssignmentUseCase
	Risk       *RiskUseCase
}

type Option func(*UseCases)

// WithClock overrides the time source used for approval timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Estimation = NewEstimationUseCase(repo)
	uc.Approval = NewApprovalUseCase(repo, uc.now)
	uc.Assignment = NewAssignmentUseCase(repo)
	uc.Risk = NewRiskUseCase(repo)

	return uc
}
