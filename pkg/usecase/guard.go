package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
)

// requireEditable loads the owning WBS item and rejects the mutation unless
// it is in an editable state (draft or rejected). Once an estimate is under
// review its inputs are frozen, so the number a reviewer approves is exactly
// the number the aggregator computed; edits resume only after an explicit
// reject-and-reset cycle.
func requireEditable(ctx context.Context, repo interfaces.Repository, wbsID int64) (*model.WBSItem, error) {
	wbs, err := getWBS(ctx, repo, wbsID)
	if err != nil {
		return nil, err
	}

	if !wbs.ApprovalStatus.Editable() {
		return nil, goerr.Wrap(ErrEditBlocked, "wbs item is "+wbs.ApprovalStatus.Normalize().String(),
			goerr.V(WBSIDKey, wbsID),
			goerr.V(StatusKey, wbs.ApprovalStatus.Normalize().String()),
		)
	}

	return wbs, nil
}

// getWBS fetches a WBS item, mapping a repository miss to the use case
// sentinel.
func getWBS(ctx context.Context, repo interfaces.Repository, wbsID int64) (*model.WBSItem, error) {
	wbs, err := repo.WBS().Get(ctx, wbsID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrWBSNotFound, "no such wbs item", goerr.V(WBSIDKey, wbsID))
		}
		return nil, goerr.Wrap(err, "failed to get wbs item", goerr.V(WBSIDKey, wbsID))
	}
	return wbs, nil
}
