package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/persistence/models"
	"vetiver/internal/shared/db"
	"vetiver/internal/shared/errors"
)

// Update overwrites the record's data fields and stamps the new version.
// The write is a compare-and-swap: it matches only an active row holding
// exactly the expected version token, so two racing writers cannot both
// succeed. With force set the version predicate is dropped but the row must
// still be active.
func (r *TicketRepositoryImpl) Update(ctx context.Context, t *ticket.Ticket, expected ticket.Version, force bool) error {
	model := r.mapper.ToModel(t)

	tx := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ?", t.ID).
		Scopes(db.Active())
	if !force {
		tx = tx.Where("version_ts = ? AND version_str = ?", expected.TS, expected.Str)
	}

	result := tx.Updates(map[string]interface{}{
		"date":        model.Date,
		"issue":       model.Issue,
		"department":  model.Department,
		"name":        model.Name,
		"solution":    model.Solution,
		"remarks":     model.Remarks,
		"type":        model.Type,
		"version_ts":  model.VersionTS,
		"version_str": model.VersionStr,
	})
	if result.Error != nil {
		r.logger.Errorw("failed to update ticket", "id", t.ID, "error", result.Error)
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.diagnoseWriteMiss(ctx, t.ID, expected)
	}

	r.logger.Infow("ticket updated", "id", t.ID, "version_ts", model.VersionTS, "force", force)
	return nil
}

// SoftDelete moves an active record to the trash, stamping v as the new
// version and v.TS as the deletion time. The state predicate makes the write
// a compare-and-swap on the lifecycle: of two racing deletes exactly one
// flips the row, the other sees it already in the trash.
func (r *TicketRepositoryImpl) SoftDelete(ctx context.Context, id uint, v ticket.Version) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ?", id).
		Scopes(db.Active()).
		Updates(map[string]interface{}{
			"is_deleted":  true,
			"deleted_at":  v.TS,
			"version_ts":  v.TS,
			"version_str": v.Str,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to soft delete ticket", "id", id, "error", result.Error)
		return fmt.Errorf("failed to soft delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.diagnoseStateMiss(ctx, id, true)
	}

	r.logger.Infow("ticket soft deleted", "id", id)
	return nil
}

// Restore moves a trashed record back to active, clearing the deletion time
// and stamping v as the new version. Mirrors SoftDelete's state CAS.
func (r *TicketRepositoryImpl) Restore(ctx context.Context, id uint, v ticket.Version) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ?", id).
		Scopes(db.Trashed()).
		Updates(map[string]interface{}{
			"is_deleted":  false,
			"deleted_at":  nil,
			"version_ts":  v.TS,
			"version_str": v.Str,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to restore ticket", "id", id, "error", result.Error)
		return fmt.Errorf("failed to restore ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.diagnoseStateMiss(ctx, id, false)
	}

	r.logger.Infow("ticket restored", "id", id)
	return nil
}

// diagnoseWriteMiss explains a conditional update that matched no rows by
// re-reading the record: missing, trashed, or holding a different version.
// The conflict payload carries the stored record and both version tokens so
// the caller can re-fetch or retry with force.
func (r *TicketRepositoryImpl) diagnoseWriteMiss(ctx context.Context, id uint, submitted ticket.Version) error {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("ticket not found")
		}
		return fmt.Errorf("failed to diagnose conditional write: %w", err)
	}

	if model.IsDeleted {
		return errors.NewDeletedError("ticket is deleted", fmt.Sprintf("ticket %d is in the trash; restore it before updating", id))
	}

	stored := r.mapper.ToEntity(&model)
	return errors.NewConflictError("ticket version mismatch").WithData(map[string]any{
		"record":            stored,
		"current_version":   stored.Version,
		"submitted_version": submitted,
	})
}

// diagnoseStateMiss explains a lifecycle write that matched no rows. The
// record is either gone or already in the requested state; the latter is the
// idempotent no-op callers translate into success with an "already" flag.
func (r *TicketRepositoryImpl) diagnoseStateMiss(ctx context.Context, id uint, wantDeleted bool) error {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("ticket not found")
		}
		return fmt.Errorf("failed to diagnose lifecycle write: %w", err)
	}

	if model.IsDeleted == wantDeleted {
		if wantDeleted {
			return errors.NewAlreadyInStateError("ticket already deleted")
		}
		return errors.NewAlreadyInStateError("ticket already active")
	}

	// The row flipped between the write and the re-read; a retry will land.
	return errors.NewConflictError("concurrent lifecycle change", fmt.Sprintf("ticket %d changed state during the request", id))
}
