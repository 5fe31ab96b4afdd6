package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/persistence/mappers"
	"vetiver/internal/infrastructure/persistence/models"
	"vetiver/internal/infrastructure/search"
	"vetiver/internal/shared/db"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

// versionSnapshotChunk bounds the IN list when snapshotting stored versions
// for an import batch.
const versionSnapshotChunk = 1000

// TicketRepositoryImpl implements the ticket.TicketRepository interface
type TicketRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	index  *search.TicketIndex
	logger logger.Interface
}

// NewTicketRepository creates a new ticket repository instance. The search
// index supplies the text-match clause for listing queries and degrades to
// LIKE matching when no full-text index exists.
func NewTicketRepository(gdb *gorm.DB, index *search.TicketIndex, logger logger.Interface) ticket.TicketRepository {
	return &TicketRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
		index:  index,
		logger: logger,
	}
}

// Create inserts a new record and writes the assigned id and storage
// timestamps back to the entity.
func (r *TicketRepositoryImpl) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("ticket already exists")
		}
		r.logger.Errorw("failed to create ticket", "error", err)
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	t.UpdatedAt = model.UpdatedAt

	r.logger.Infow("ticket created", "id", model.ID)
	return nil
}

// GetByID returns the record regardless of its lifecycle state. Callers that
// must not see trashed records check the state themselves.
func (r *TicketRepositoryImpl) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		r.logger.Errorw("failed to get ticket", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

// Purge removes the row permanently, from either lifecycle state.
func (r *TicketRepositoryImpl) Purge(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.TicketModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to purge ticket", "id", id, "error", result.Error)
		return fmt.Errorf("failed to purge ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("ticket not found")
	}

	r.logger.Infow("ticket purged", "id", id)
	return nil
}

// VersionsByID snapshots the stored version token for the given ids. Ids
// without a stored row are absent from the result. The IN list is chunked to
// stay below the engine's statement parameter ceiling.
func (r *TicketRepositoryImpl) VersionsByID(ctx context.Context, ids []uint) (map[uint]ticket.Version, error) {
	out := make(map[uint]ticket.Version, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	type versionRow struct {
		ID         uint
		VersionTS  int64
		VersionStr string
	}

	tx := db.GetTxFromContext(ctx, r.db)
	for start := 0; start < len(ids); start += versionSnapshotChunk {
		end := start + versionSnapshotChunk
		if end > len(ids) {
			end = len(ids)
		}

		var rows []versionRow
		if err := tx.Model(&models.TicketModel{}).
			Select("id, version_ts, version_str").
			Where("id IN ?", ids[start:end]).
			Find(&rows).Error; err != nil {
			r.logger.Errorw("failed to snapshot ticket versions", "count", len(ids), "error", err)
			return nil, fmt.Errorf("failed to snapshot ticket versions: %w", err)
		}

		for _, row := range rows {
			out[row.ID] = ticket.Version{TS: row.VersionTS, Str: row.VersionStr}
		}
	}

	return out, nil
}
