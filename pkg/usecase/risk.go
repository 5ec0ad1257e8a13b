package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/estimate"
	"github.com/shopspring/decimal"
)

// RiskUseCase manages risks owned by WBS items. Every mutation passes the
// edit guard on the owning WBS item first.
type RiskUseCase struct {
	repo interfaces.Repository
}

func NewRiskUseCase(repo interfaces.Repository) *RiskUseCase {
	return &RiskUseCase{repo: repo}
}

func (uc *RiskUseCase) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	if _, err := requireEditable(ctx, uc.repo, risk.WBSID); err != nil {
		return nil, err
	}

	created, err := uc.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk", goerr.V(WBSIDKey, risk.WBSID))
	}

	return created, nil
}

func (uc *RiskUseCase) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	existing, err := uc.get(ctx, risk.ID)
	if err != nil {
		return nil, err
	}

	if _, err := requireEditable(ctx, uc.repo, existing.WBSID); err != nil {
		return nil, err
	}

	// A risk never moves between WBS items.
	risk.WBSID = existing.WBSID

	updated, err := uc.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V(RiskIDKey, risk.ID))
	}

	return updated, nil
}

func (uc *RiskUseCase) Delete(ctx context.Context, id int64) error {
	existing, err := uc.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := requireEditable(ctx, uc.repo, existing.WBSID); err != nil {
		return err
	}

	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V(RiskIDKey, id))
	}

	return nil
}

func (uc *RiskUseCase) Get(ctx context.Context, id int64) (*model.Risk, error) {
	return uc.get(ctx, id)
}

func (uc *RiskUseCase) ListByWBS(ctx context.Context, wbsID int64) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().ListByWBS(ctx, wbsID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V(WBSIDKey, wbsID))
	}
	return risks, nil
}

// GetExposure returns a risk together with its computed exposure.
func (uc *RiskUseCase) GetExposure(ctx context.Context, id int64) (*model.Risk, decimal.Decimal, error) {
	risk, err := uc.get(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}

	exposure, err := estimate.Exposure(ctx, risk, uc.repo.Lookup())
	if err != nil {
		return nil, decimal.Zero, goerr.Wrap(err, "failed to compute risk exposure", goerr.V(RiskIDKey, id))
	}

	return risk, exposure, nil
}

func (uc *RiskUseCase) get(ctx context.Context, id int64) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrRiskNotFound, "no such risk", goerr.V(RiskIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, id))
	}
	return risk, nil
}
