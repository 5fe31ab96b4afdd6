package models

import (
	"gorm.io/datatypes"
)

// TicketEventModel is one audit-trail row. TicketID is nil for store-wide
// events (import summaries). Detail holds the action-specific payload, e.g.
// old and new version for an update or classification counts for an import.
type TicketEventModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  *uint  `gorm:"index:idx_ticket_events_ticket"`
	Action    string `gorm:"size:32;not null;index"` // create, update, delete, restore, purge, import
	Detail    datatypes.JSON
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
}

func (TicketEventModel) TableName() string {
	return "ticket_events"
}
