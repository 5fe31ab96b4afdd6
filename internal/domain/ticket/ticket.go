// Package ticket holds the support-ticket record, its freshness token, and
// the lifecycle rules governing soft deletion and restore.
package ticket

import (
	"fmt"
	"strings"
	"time"
)

// State is the lifecycle state of a stored record. Purged records no longer
// exist, so only the two live states are representable.
type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

// Ticket is the stored record. Fields are exported because the record is
// data first: the import engine builds tickets from loosely shaped payloads
// and the repository maps them to rows without ceremony.
type Ticket struct {
	ID         uint    `json:"id"`
	Date       string  `json:"date"`
	Issue      string  `json:"issue"`
	Department string  `json:"department,omitempty"`
	Name       string  `json:"name,omitempty"`
	Solution   string  `json:"solution,omitempty"`
	Remarks    string  `json:"remarks,omitempty"`
	Type       string  `json:"type,omitempty"`
	Version    Version `json:"version"`
	IsDeleted  bool    `json:"is_deleted"`
	DeletedAt  *int64  `json:"deleted_at,omitempty"`
	CreatedAt  int64   `json:"created_at,omitempty"`
	UpdatedAt  int64   `json:"updated_at,omitempty"`
}

const (
	maxDateLen       = 32
	maxDepartmentLen = 128
	maxNameLen       = 128
	maxTypeLen       = 64
)

// NewTicket creates an active ticket with a freshly minted version. Optional
// fields are assigned by the caller after construction and re-checked through
// Validate before persisting.
func NewTicket(date, issue string, now time.Time) (*Ticket, error) {
	t := &Ticket{
		Date:    strings.TrimSpace(date),
		Issue:   strings.TrimSpace(issue),
		Version: MintVersion(now),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the persistence invariants. Date and issue must be present
// on every record regardless of how it entered the system.
func (t *Ticket) Validate() error {
	if strings.TrimSpace(t.Date) == "" {
		return fmt.Errorf("date is required")
	}
	if len(t.Date) > maxDateLen {
		return fmt.Errorf("date exceeds maximum length of %d characters", maxDateLen)
	}
	if strings.TrimSpace(t.Issue) == "" {
		return fmt.Errorf("issue is required")
	}
	if len(t.Department) > maxDepartmentLen {
		return fmt.Errorf("department exceeds maximum length of %d characters", maxDepartmentLen)
	}
	if len(t.Name) > maxNameLen {
		return fmt.Errorf("name exceeds maximum length of %d characters", maxNameLen)
	}
	if len(t.Type) > maxTypeLen {
		return fmt.Errorf("type exceeds maximum length of %d characters", maxTypeLen)
	}
	if t.IsDeleted && t.DeletedAt == nil {
		return fmt.Errorf("deleted ticket must carry a deletion timestamp")
	}
	if !t.IsDeleted && t.DeletedAt != nil {
		return fmt.Errorf("active ticket must not carry a deletion timestamp")
	}
	return nil
}

// State returns the lifecycle state of the record.
func (t *Ticket) State() State {
	if t.IsDeleted {
		return StateDeleted
	}
	return StateActive
}

// Touch mints a new version for a mutation happening at now.
func (t *Ticket) Touch(now time.Time) {
	t.Version = MintVersion(now)
}

// MarkDeleted transitions the record to Deleted, stamping the deletion time
// and a new version.
func (t *Ticket) MarkDeleted(now time.Time) {
	deletedAt := now.UnixMilli()
	t.IsDeleted = true
	t.DeletedAt = &deletedAt
	t.Touch(now)
}

// MarkRestored transitions the record back to Active, clearing the deletion
// time and stamping a new version.
func (t *Ticket) MarkRestored(now time.Time) {
	t.IsDeleted = false
	t.DeletedAt = nil
	t.Touch(now)
}
