package interfaces

import (
	"context"

	"github.com/estima-lab/pertcost/pkg/domain/model"
)

type AssignmentRepository interface {
	// Create creates a new assignment with auto-generated ID
	Create(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error)

	// Get retrieves an assignment by ID
	Get(ctx context.Context, id int64) (*model.Assignment, error)

	// ListByWBS retrieves all assignments owned by a WBS item
	ListByWBS(ctx context.Context, wbsID int64) ([]*model.Assignment, error)

	// CountByWBS counts assignments owned by a WBS item
	CountByWBS(ctx context.Context, wbsID int64) (int, error)

	// Update updates an existing assignment
	Update(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error)

	// Delete deletes an assignment by ID
	Delete(ctx context.Context, id int64) error
}
