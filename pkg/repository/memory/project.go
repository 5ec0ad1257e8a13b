package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
)

type projectRepository struct {
	mu       sync.RWMutex
	projects map[int64]*model.Project
	nextID   int64
}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[int64]*model.Project),
		nextID:   1,
	}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := &model.Project{
		ID:          r.nextID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++

	r.projects[created.ID] = created
	return copyProject(created), nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, exists := r.projects[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "project not found", goerr.V("id", id))
	}

	return copyProject(project), nil
}

func copyProject(p *model.Project) *model.Project {
	copied := *p
	return &copied
}
