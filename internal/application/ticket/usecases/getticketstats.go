package usecases

import (
	"context"

	"vetiver/internal/application/ticket/dto"
	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/cache"
	"vetiver/internal/shared/logger"
)

// GetTicketStatsUseCase serves the aggregate statistics report through a
// short-TTL cache. The cache is fail-open in both directions: a read or
// write failure falls back to the database and logs, never errors.
type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	statsCache cache.StatsCache
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(
	ticketRepo ticket.TicketRepository,
	statsCache cache.StatsCache,
	logger logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		statsCache: statsCache,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context) (*dto.TicketStatsDTO, error) {
	if uc.statsCache != nil {
		cached, err := uc.statsCache.Get(ctx)
		if err != nil {
			uc.logger.Warnw("stats cache read failed", "error", err)
		} else if cached != nil {
			return dto.ToTicketStatsDTO(cached), nil
		}
	}

	stats, err := uc.ticketRepo.Stats(ctx)
	if err != nil {
		uc.logger.Errorw("failed to compute ticket stats", "error", err)
		return nil, err
	}

	if uc.statsCache != nil {
		if err := uc.statsCache.Set(ctx, stats); err != nil {
			uc.logger.Warnw("stats cache write failed", "error", err)
		}
	}

	return dto.ToTicketStatsDTO(stats), nil
}
