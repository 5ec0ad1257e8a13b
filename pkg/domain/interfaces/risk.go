package interfaces

import (
	"context"

	"github.com/estima-lab/pertcost/pkg/domain/model"
)

type RiskRepository interface {
	// Create creates a new risk with auto-generated ID
	Create(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Get retrieves a risk by ID
	Get(ctx context.Context, id int64) (*model.Risk, error)

	// ListByWBS retrieves all risks owned by a WBS item
	ListByWBS(ctx context.Context, wbsID int64) ([]*model.Risk, error)

	// CountByWBS counts risks owned by a WBS item
	CountByWBS(ctx context.Context, wbsID int64) (int, error)

	// Update updates an existing risk
	Update(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Delete deletes a risk by ID
	Delete(ctx context.Context, id int64) error
}
