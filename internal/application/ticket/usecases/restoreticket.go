package usecases

import (
	"context"
	"time"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/cache"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

type RestoreTicketCommand struct {
	ID uint
}

// RestoreTicketResult mirrors DeleteTicketResult: Already is set when the
// record was active before the request.
type RestoreTicketResult struct {
	ID        uint  `json:"id"`
	Already   bool  `json:"already"`
	VersionTS int64 `json:"version_ts,omitempty"`
}

type RestoreTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	events     ticket.EventRepository
	statsCache cache.StatsCache
	logger     logger.Interface
}

func NewRestoreTicketUseCase(
	ticketRepo ticket.TicketRepository,
	events ticket.EventRepository,
	statsCache cache.StatsCache,
	logger logger.Interface,
) *RestoreTicketUseCase {
	return &RestoreTicketUseCase{
		ticketRepo: ticketRepo,
		events:     events,
		statsCache: statsCache,
		logger:     logger,
	}
}

func (uc *RestoreTicketUseCase) Execute(ctx context.Context, cmd RestoreTicketCommand) (*RestoreTicketResult, error) {
	if cmd.ID == 0 {
		return nil, errors.NewValidationError("ticket id is required")
	}

	version := ticket.MintVersion(time.Now())
	err := uc.ticketRepo.Restore(ctx, cmd.ID, version)
	if err != nil {
		if errors.IsAlreadyInStateError(err) {
			uc.logger.Infow("ticket already active", "ticket_id", cmd.ID)
			return &RestoreTicketResult{ID: cmd.ID, Already: true}, nil
		}
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to restore ticket", "ticket_id", cmd.ID, "error", err)
		}
		return nil, err
	}

	recordEvent(ctx, uc.events, uc.logger, &cmd.ID, ticket.EventActionRestore, map[string]any{
		"version_ts": version.TS,
	})
	invalidateStats(ctx, uc.statsCache, uc.logger)

	uc.logger.Infow("ticket restored", "ticket_id", cmd.ID, "version_ts", version.TS)
	return &RestoreTicketResult{ID: cmd.ID, VersionTS: version.TS}, nil
}
