package model

import "time"

// Project owns a set of WBS items. Full project CRUD lives outside the
// estimation core; this model covers the read side plus the seed surface.
type Project struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
