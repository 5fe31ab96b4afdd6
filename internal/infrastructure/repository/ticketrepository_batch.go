package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/db"
)

// upsertColumns lists the columns overwritten by a newest-wins upsert.
// The version columns must stay last, version_ts after version_str: MySQL
// evaluates assignments left to right, and every column's guard reads the
// pre-assignment version columns.
var upsertColumns = []string{
	"date",
	"issue",
	"department",
	"name",
	"solution",
	"remarks",
	"type",
	"is_deleted",
	"deleted_at",
	"updated_at",
	"version_str",
	"version_ts",
}

// UpsertIfNewer inserts new rows and overwrites existing ones only when the
// incoming version is strictly newer than the stored one: numerically on
// version_ts, or lexicographically on version_str when neither side resolved
// to a timestamp. The guard lives inside the statement itself, closing the
// race window between the caller's version snapshot and the write. Callers
// bound the slice below the engine's per-statement parameter ceiling.
func (r *TicketRepositoryImpl) UpsertIfNewer(ctx context.Context, tickets []*ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	rows := r.mapper.ToModels(tickets)
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: r.newestWinsAssignments(),
	}).Create(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to upsert tickets", "count", len(rows), "error", err)
		return fmt.Errorf("failed to upsert tickets: %w", err)
	}

	return nil
}

// CreateBatch inserts rows that carry no id in one statement, letting the
// engine assign fresh ids. Rows with explicit ids belong in UpsertIfNewer or
// InsertIgnoring instead; mixing them here would write literal zero ids.
func (r *TicketRepositoryImpl) CreateBatch(ctx context.Context, tickets []*ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	rows := r.mapper.ToModels(tickets)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(&rows).Error; err != nil {
		r.logger.Errorw("failed to batch create tickets", "count", len(rows), "error", err)
		return fmt.Errorf("failed to batch create tickets: %w", err)
	}

	return nil
}

// InsertIgnoring inserts rows with explicit ids, silently keeping existing
// rows intact when an id collides.
func (r *TicketRepositoryImpl) InsertIgnoring(ctx context.Context, tickets []*ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	rows := r.mapper.ToModels(tickets)
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to insert tickets", "count", len(rows), "error", err)
		return fmt.Errorf("failed to insert tickets: %w", err)
	}

	return nil
}

// newestWinsAssignments builds the conditional SET list for the upsert. The
// guard mirrors Version.NewerThan: a numeric incoming version_ts compares
// numerically, and a zero one falls back to the display string against a
// store whose version_ts is also zero. The comparison syntax differs per
// dialect: MySQL reads the incoming row through VALUES(), everything else
// through the standard excluded pseudo-table.
func (r *TicketRepositoryImpl) newestWinsAssignments() clause.Set {
	set := make(clause.Set, 0, len(upsertColumns))

	if r.db.Dialector.Name() == "mysql" {
		const guard = "VALUES(`version_ts`) > `version_ts` OR (VALUES(`version_ts`) = 0 AND `version_ts` = 0 AND VALUES(`version_str`) > `version_str`)"
		for _, col := range upsertColumns {
			set = append(set, clause.Assignment{
				Column: clause.Column{Name: col},
				Value:  gorm.Expr(fmt.Sprintf("IF(%s, VALUES(`%s`), `%s`)", guard, col, col)),
			})
		}
		return set
	}

	const guard = "excluded.version_ts > tickets.version_ts OR (excluded.version_ts = 0 AND tickets.version_ts = 0 AND excluded.version_str > tickets.version_str)"
	for _, col := range upsertColumns {
		set = append(set, clause.Assignment{
			Column: clause.Column{Name: col},
			Value:  gorm.Expr(fmt.Sprintf("CASE WHEN %s THEN excluded.%s ELSE tickets.%s END", guard, col, col)),
		})
	}
	return set
}
