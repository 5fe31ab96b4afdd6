package usecases

import (
	"context"
	"time"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/cache"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

type DeleteTicketCommand struct {
	ID uint
}

// DeleteTicketResult reports a soft delete. Already is set when the record
// was in the trash before the request: the desired end state holds, so the
// operation succeeds as a no-op instead of failing.
type DeleteTicketResult struct {
	ID        uint  `json:"id"`
	Already   bool  `json:"already"`
	VersionTS int64 `json:"version_ts,omitempty"`
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	events     ticket.EventRepository
	statsCache cache.StatsCache
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	events ticket.EventRepository,
	statsCache cache.StatsCache,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		events:     events,
		statsCache: statsCache,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	if cmd.ID == 0 {
		return nil, errors.NewValidationError("ticket id is required")
	}

	version := ticket.MintVersion(time.Now())
	err := uc.ticketRepo.SoftDelete(ctx, cmd.ID, version)
	if err != nil {
		if errors.IsAlreadyInStateError(err) {
			uc.logger.Infow("ticket already deleted", "ticket_id", cmd.ID)
			return &DeleteTicketResult{ID: cmd.ID, Already: true}, nil
		}
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.ID, "error", err)
		}
		return nil, err
	}

	recordEvent(ctx, uc.events, uc.logger, &cmd.ID, ticket.EventActionDelete, map[string]any{
		"version_ts": version.TS,
	})
	invalidateStats(ctx, uc.statsCache, uc.logger)

	uc.logger.Infow("ticket deleted", "ticket_id", cmd.ID, "version_ts", version.TS)
	return &DeleteTicketResult{ID: cmd.ID, VersionTS: version.TS}, nil
}
