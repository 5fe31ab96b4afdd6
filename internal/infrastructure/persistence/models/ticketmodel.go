package models

// TicketModel is the persisted form of a ticket record. The composite
// indexes back the two keyset listing orders: (is_deleted, date) for active
// listings and (is_deleted, deleted_at) for the trash.
type TicketModel struct {
	ID         uint   `gorm:"primaryKey"`
	Date       string `gorm:"size:32;not null;index:idx_tickets_active_date,priority:2"`
	Issue      string `gorm:"type:text;not null"`
	Department string `gorm:"size:128"`
	Name       string `gorm:"size:128"`
	Solution   string `gorm:"type:text"`
	Remarks    string `gorm:"type:text"`
	Type       string `gorm:"size:64;index"`
	VersionTS  int64  `gorm:"not null;default:0"`
	VersionStr string `gorm:"size:32"`
	IsDeleted  bool   `gorm:"not null;default:false;index:idx_tickets_active_date,priority:1;index:idx_tickets_trash_time,priority:1"`
	DeletedAt  *int64 `gorm:"index:idx_tickets_trash_time,priority:2"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt  int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
