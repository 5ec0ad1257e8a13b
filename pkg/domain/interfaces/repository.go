package interfaces

// Repository defines the persistence contract consumed by the estimation
// and governance use cases.
type Repository interface {
	Project() ProjectRepository
	WBS() WBSRepository
	Assignment() AssignmentRepository
	Risk() RiskRepository
	Lookup() LookupRepository
	Audit() AuditRepository

	Close() error
}
