package memory

import (
	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model/config"
)

// Memory is an in-memory repository used for development and tests.
type Memory struct {
	project    *projectRepository
	wbs        *wbsRepository
	assignment *assignmentRepository
	risk       *riskRepository
	lookup     *lookupRepository
	audit      *auditRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		project:    newProjectRepository(),
		wbs:        newWBSRepository(),
		assignment: newAssignmentRepository(),
		risk:       newRiskRepository(),
		lookup:     newLookupRepository(),
		audit:      newAuditRepository(),
	}
}

// SeedCatalog loads the read-only lookup tables. Lookups are owned outside
// the core; in-memory they come from the estimation catalog config.
func (m *Memory) SeedCatalog(catalog *config.Catalog) {
	m.lookup.load(catalog)
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) WBS() interfaces.WBSRepository {
	return m.wbs
}

func (m *Memory) Assignment() interfaces.AssignmentRepository {
	return m.assignment
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Lookup() interfaces.LookupRepository {
	return m.lookup
}

func (m *Memory) Audit() interfaces.AuditRepository {
	return m.audit
}

func (m *Memory) Close() error {
	return nil
}
