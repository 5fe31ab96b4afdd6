package dto

import (
	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/mapper"
)

// TicketDTO is the wire shape of a stored ticket record.
type TicketDTO struct {
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

// TicketListDTO is one listing page plus the cursors for walking further.
type TicketListDTO struct {
	Items      []TicketDTO `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page,omitempty"`
	PageSize   int         `json:"page_size"`
	NextCursor string      `json:"next_cursor,omitempty"`
	PrevCursor string      `json:"prev_cursor,omitempty"`
}

// StatBucketDTO is one labeled count in a statistics report.
type StatBucketDTO struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// TicketStatsDTO is the aggregate statistics report.
type TicketStatsDTO struct {
	Total   int64           `json:"total"`
	Active  int64           `json:"active"`
	Deleted int64           `json:"deleted"`
	ByType  []StatBucketDTO `json:"by_type"`
	ByMonth []StatBucketDTO `json:"by_month"`
}

// TicketEventDTO is one audit-trail entry.
type TicketEventDTO struct {
	ID        uint           `json:"id"`
	TicketID  *uint          `json:"ticket_id,omitempty"`
	Action    string         `json:"action"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt int64          `json:"created_at"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:         t.ID,
		Date:       t.Date,
		Issue:      t.Issue,
		Department: t.Department,
		Name:       t.Name,
		Solution:   t.Solution,
		Remarks:    t.Remarks,
		Type:       t.Type,
		VersionTS:  t.Version.TS,
		VersionStr: t.Version.Str,
		IsDeleted:  t.IsDeleted,
		DeletedAt:  t.DeletedAt,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []TicketDTO {
	return mapper.MapSlice(tickets, func(t *ticket.Ticket) TicketDTO {
		return *ToTicketDTO(t)
	})
}

func ToTicketStatsDTO(s *ticket.Stats) *TicketStatsDTO {
	if s == nil {
		return nil
	}
	toBuckets := func(counts []ticket.StatCount) []StatBucketDTO {
		return mapper.MapSlice(counts, func(c ticket.StatCount) StatBucketDTO {
			return StatBucketDTO{Label: c.Label, Count: c.Count}
		})
	}
	return &TicketStatsDTO{
		Total:   s.Total,
		Active:  s.Active,
		Deleted: s.Deleted,
		ByType:  toBuckets(s.ByType),
		ByMonth: toBuckets(s.ByMonth),
	}
}

func ToTicketEventDTO(e *ticket.Event) TicketEventDTO {
	return TicketEventDTO{
		ID:        e.ID,
		TicketID:  e.TicketID,
		Action:    e.Action,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt,
	}
}

func ToTicketEventDTOs(events []*ticket.Event) []TicketEventDTO {
	return mapper.MapSlice(events, ToTicketEventDTO)
}
