package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/persistence/mappers"
	"vetiver/internal/infrastructure/persistence/models"
	"vetiver/internal/shared/db"
	"vetiver/internal/shared/logger"
)

// defaultEventLimit caps a ticket history listing when the caller does not.
const defaultEventLimit = 50

// TicketEventRepositoryImpl implements the ticket.EventRepository interface
type TicketEventRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketEventMapper
	logger logger.Interface
}

// NewTicketEventRepository creates a new ticket event repository instance
func NewTicketEventRepository(gdb *gorm.DB, logger logger.Interface) ticket.EventRepository {
	return &TicketEventRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewTicketEventMapper(),
		logger: logger,
	}
}

// Append records one audit event. Events are written after the mutation they
// describe commits; callers treat failures as non-fatal.
func (r *TicketEventRepositoryImpl) Append(ctx context.Context, e *ticket.Event) error {
	model, err := r.mapper.ToModel(e)
	if err != nil {
		return fmt.Errorf("failed to map ticket event: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append ticket event", "action", e.Action, "error", err)
		return fmt.Errorf("failed to append ticket event: %w", err)
	}

	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	return nil
}

// ListByTicket returns the newest events for one ticket, newest first.
func (r *TicketEventRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint, limit int) ([]*ticket.Event, error) {
	if limit < 1 {
		limit = defaultEventLimit
	}

	var rows []models.TicketEventModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list ticket events", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list ticket events: %w", err)
	}

	events, err := r.mapper.ToEntities(rows)
	if err != nil {
		r.logger.Errorw("failed to map ticket events", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to map ticket events: %w", err)
	}

	return events, nil
}
