package ticket

import (
	"context"

	"vetiver/internal/shared/keyset"
)

// ListQuery describes one listing request. Cursor, when present, selects
// keyset pagination; otherwise Page/PageSize run classic offset paging.
// From and To bound the sort key inclusively and may be empty.
type ListQuery struct {
	Trash     bool
	From      string
	To        string
	Type      string
	Search    string
	Page      int
	PageSize  int
	Cursor    *keyset.Cursor
	Direction keyset.Direction
}

// ListPage is one page of results in ascending sort-key order. NextCursor and
// PrevCursor are set only for keyset pages and bound the returned rows.
type ListPage struct {
	Items      []*Ticket
	Total      int64
	NextCursor string
	PrevCursor string
}

// StatCount is one aggregate bucket in the statistics report.
type StatCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Stats is the aggregate statistics report across the whole store.
type Stats struct {
	Total   int64       `json:"total"`
	Active  int64       `json:"active"`
	Deleted int64       `json:"deleted"`
	ByType  []StatCount `json:"by_type"`
	ByMonth []StatCount `json:"by_month"`
}

// TicketRepository is the persistence contract for ticket records.
//
// The conditional mutations (Update, SoftDelete, Restore) implement the
// compare-and-swap protocol: each issues a single write predicated on the
// expected state, and diagnoses a zero-row outcome into a typed error or an
// idempotent no-op. UpsertIfNewer and InsertIgnoring are the import engine's
// batch primitives; both enforce the never-downgrade rule inside the write.
type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)

	// Update overwrites the record's data fields and version, requiring the
	// stored version to equal expected unless force is set. The record must
	// be Active either way.
	Update(ctx context.Context, t *Ticket, expected Version, force bool) error

	// SoftDelete moves an Active record to the trash, stamping v as the new
	// version and v.TS as the deletion time. A record that is already in the
	// trash yields a typed already-in-state error for the caller to absorb.
	SoftDelete(ctx context.Context, id uint, v Version) error

	// Restore moves a Deleted record back to Active, stamping v as the new
	// version. A record that is already active yields a typed already-in-state
	// error for the caller to absorb.
	Restore(ctx context.Context, id uint, v Version) error

	// Purge removes the row permanently, from either lifecycle state.
	Purge(ctx context.Context, id uint) error

	List(ctx context.Context, q ListQuery) (*ListPage, error)

	// VersionsByID fetches the stored version snapshot for the given ids.
	// Ids with no stored row are absent from the result.
	VersionsByID(ctx context.Context, ids []uint) (map[uint]Version, error)

	// CreateBatch inserts rows that carry no id, assigning fresh ids.
	CreateBatch(ctx context.Context, tickets []*Ticket) error

	// UpsertIfNewer inserts new rows and overwrites existing ones only when
	// the incoming version is strictly newer, decided inside the statement.
	// Every row must carry an explicit id.
	UpsertIfNewer(ctx context.Context, tickets []*Ticket) error

	// InsertIgnoring inserts rows with explicit ids, silently keeping
	// existing rows intact when an id collides.
	InsertIgnoring(ctx context.Context, tickets []*Ticket) error

	Stats(ctx context.Context) (*Stats, error)
}

// Event is one audit-trail entry. TicketID is nil for store-wide events such
// as an import summary.
type Event struct {
	ID        uint           `json:"id"`
	TicketID  *uint          `json:"ticket_id,omitempty"`
	Action    string         `json:"action"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt int64          `json:"created_at"`
}

// Audit actions recorded per mutation.
const (
	EventActionCreate  = "create"
	EventActionUpdate  = "update"
	EventActionDelete  = "delete"
	EventActionRestore = "restore"
	EventActionPurge   = "purge"
	EventActionImport  = "import"
)

// EventRepository is the persistence contract for the audit trail.
type EventRepository interface {
	Append(ctx context.Context, e *Event) error
	ListByTicket(ctx context.Context, ticketID uint, limit int) ([]*Event, error)
}
