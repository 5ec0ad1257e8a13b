package interfaces

import (
	"context"

	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

type ProjectRepository interface {
	// Create creates a new project with auto-generated ID
	Create(ctx context.Context, project *model.Project) (*model.Project, error)

	// Get retrieves a project by ID
	Get(ctx context.Context, id int64) (*model.Project, error)
}

type WBSRepository interface {
	// Create creates a new WBS item with auto-generated ID
	Create(ctx context.Context, wbs *model.WBSItem) (*model.WBSItem, error)

	// Get retrieves a WBS item by ID
	Get(ctx context.Context, id int64) (*model.WBSItem, error)

	// ListByProject retrieves all WBS items of a project
	ListByProject(ctx context.Context, projectID int64) ([]*model.WBSItem, error)

	// UpdateApproval applies an approval patch to the WBS item if and only
	// if its current status still equals from. It fails with
	// ErrStatusConflict when a concurrent transition won the race, so a
	// check-then-write sequence in the use case stays atomic.
	UpdateApproval(ctx context.Context, id int64, from types.ApprovalStatus, patch model.ApprovalPatch) (*model.WBSItem, error)
}
