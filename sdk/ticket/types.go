// Package ticket provides a Go SDK for interacting with the Vetiver ticket API.
package ticket

import "encoding/json"

// Ticket represents a stored support ticket record returned by the API.
type Ticket struct {
	ID         uint   `json:"id"`
	Date       string `json:"date"`
	Issue      string `json:"issue"`
	Department string `json:"department,omitempty"`
	Name       string `json:"name,omitempty"`
	Solution   string `json:"solution,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	Type       string `json:"type,omitempty"`
	VersionTS  int64  `json:"version_ts"`
	VersionStr string `json:"version_str,omitempty"`
	IsDeleted  bool   `json:"is_deleted"`
	DeletedAt  *int64 `json:"deleted_at,omitempty"`
	CreatedAt  int64  `json:"created_at,omitempty"`
	UpdatedAt  int64  `json:"updated_at,omitempty"`
}

// CreateRequest carries the writable fields of a new ticket.
type CreateRequest struct {
	Date       string `json:"date"`
	Issue      string `json:"issue"`
	Department string `json:"department,omitempty"`
	Name       string `json:"name,omitempty"`
	Solution   string `json:"solution,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	Type       string `json:"type,omitempty"`
}

// UpdateRequest carries a full replacement record plus the version token the
// client last saw. The server commits the write only while the stored row
// still carries that token; Force drops the check.
type UpdateRequest struct {
	Date       string `json:"date"`
	Issue      string `json:"issue"`
	Department string `json:"department,omitempty"`
	Name       string `json:"name,omitempty"`
	Solution   string `json:"solution,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	Type       string `json:"type,omitempty"`
	VersionTS  int64  `json:"version_ts,omitempty"`
	VersionStr string `json:"version_str,omitempty"`
	Force      bool   `json:"force,omitempty"`
}

// ListOptions narrows and pages a List call. Zero values are omitted from
// the query string. Set Cursor (with an optional Direction of "next" or
// "prev") to page by keyset instead of offset.
type ListOptions struct {
	Page      int
	PageSize  int
	Trash     bool
	From      string
	To        string
	Type      string
	Search    string
	Cursor    string
	Direction string
}

// TicketPage represents one page of a listing call. Page and TotalPages are
// set for offset requests; NextCursor and PrevCursor bound keyset pages.
type TicketPage struct {
	Items      []Ticket `json:"items"`
	Total      int64    `json:"total"`
	Page       int      `json:"page,omitempty"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages,omitempty"`
	NextCursor string   `json:"next_cursor,omitempty"`
	PrevCursor string   `json:"prev_cursor,omitempty"`
}

// LifecycleResult represents the outcome of a delete or restore call.
// Already is true when the record was in the requested state before the
// call, which the API treats as an idempotent success.
type LifecycleResult struct {
	ID        uint  `json:"id"`
	Already   bool  `json:"already"`
	VersionTS int64 `json:"version_ts,omitempty"`
}

// ImportRecord represents one row of a merge import. A zero VersionTS with
// an empty Version marks the row as version-less; the server then updates
// an existing record only when it is itself version-less.
type ImportRecord struct {
	ID         uint   `json:"id,omitempty"`
	Date       string `json:"date"`
	Issue      string `json:"issue"`
	Department string `json:"department,omitempty"`
	Name       string `json:"name,omitempty"`
	Solution   string `json:"solution,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	Type       string `json:"type,omitempty"`
	VersionTS  int64  `json:"version_ts,omitempty"`
	Version    string `json:"version,omitempty"`
	DeletedAt  *int64 `json:"deleted_at,omitempty"`
}

// ImportRequest carries the records of a merge import. Rows in Trash land
// in the store marked deleted. With DryRun the server classifies every row
// but writes nothing.
type ImportRequest struct {
	Records []ImportRecord `json:"records,omitempty"`
	Trash   []ImportRecord `json:"trash,omitempty"`
	DryRun  bool           `json:"dry_run,omitempty"`
}

// ImportResult represents the per-class row counts of a merge import.
type ImportResult struct {
	DryRun              bool `json:"dry_run"`
	Total               int  `json:"total"`
	Inserts             int  `json:"inserts"`
	Updates             int  `json:"updates"`
	Skips               int  `json:"skips"`
	SkippedNewerOrEqual int  `json:"skipped_newer_or_equal"`
	IndexRebuilt        bool `json:"index_rebuilt,omitempty"`
}

// StatBucket represents one labeled count in a statistics report.
type StatBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Stats represents the aggregate statistics report.
type Stats struct {
	Total   int64        `json:"total"`
	Active  int64        `json:"active"`
	Deleted int64        `json:"deleted"`
	ByType  []StatBucket `json:"by_type"`
	ByMonth []StatBucket `json:"by_month"`
}

// Event represents one audit-trail entry for a ticket.
type Event struct {
	ID        uint           `json:"id"`
	TicketID  *uint          `json:"ticket_id,omitempty"`
	Action    string         `json:"action"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt int64          `json:"created_at"`
}

// Version represents a record freshness token.
type Version struct {
	TS  int64  `json:"version_ts"`
	Str string `json:"version_str,omitempty"`
}

// ConflictData represents the payload attached to a version-conflict error:
// the server's current copy of the record plus both version tokens, so the
// caller can rebase and retry.
type ConflictData struct {
	Record           Ticket  `json:"record"`
	CurrentVersion   Version `json:"current_version"`
	SubmittedVersion Version `json:"submitted_version"`
}

// apiResponse represents the standard API response structure.
type apiResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

// apiError represents the error block of a failed API response.
type apiError struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Details string          `json:"details,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
