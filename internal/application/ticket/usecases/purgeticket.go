package usecases

import (
	"context"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/cache"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

type PurgeTicketCommand struct {
	ID uint
}

// PurgeTicketUseCase removes a record permanently, from either lifecycle
// state. The audit trail keeps its entries; only the record itself goes.
type PurgeTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	events     ticket.EventRepository
	statsCache cache.StatsCache
	logger     logger.Interface
}

func NewPurgeTicketUseCase(
	ticketRepo ticket.TicketRepository,
	events ticket.EventRepository,
	statsCache cache.StatsCache,
	logger logger.Interface,
) *PurgeTicketUseCase {
	return &PurgeTicketUseCase{
		ticketRepo: ticketRepo,
		events:     events,
		statsCache: statsCache,
		logger:     logger,
	}
}

func (uc *PurgeTicketUseCase) Execute(ctx context.Context, cmd PurgeTicketCommand) error {
	if cmd.ID == 0 {
		return errors.NewValidationError("ticket id is required")
	}

	if err := uc.ticketRepo.Purge(ctx, cmd.ID); err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to purge ticket", "ticket_id", cmd.ID, "error", err)
		}
		return err
	}

	recordEvent(ctx, uc.events, uc.logger, &cmd.ID, ticket.EventActionPurge, nil)
	invalidateStats(ctx, uc.statsCache, uc.logger)

	uc.logger.Infow("ticket purged", "ticket_id", cmd.ID)
	return nil
}
