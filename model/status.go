package model

// Status gates public visibility of a content row
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	// StatusDeleted marks a soft-deleted career resource
	StatusDeleted Status = "deleted"
)
