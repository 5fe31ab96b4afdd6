package usecases

import (
	"context"

	"vetiver/internal/application/ticket/dto"
	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

const maxHistoryLimit = 500

type GetTicketHistoryQuery struct {
	ID    uint
	Limit int
}

// GetTicketHistoryUseCase lists the audit trail of one record, newest
// first. Events outlive the record itself, so the history of a purged
// ticket stays readable.
type GetTicketHistoryUseCase struct {
	events ticket.EventRepository
	logger logger.Interface
}

func NewGetTicketHistoryUseCase(events ticket.EventRepository, logger logger.Interface) *GetTicketHistoryUseCase {
	return &GetTicketHistoryUseCase{
		events: events,
		logger: logger,
	}
}

func (uc *GetTicketHistoryUseCase) Execute(ctx context.Context, query GetTicketHistoryQuery) ([]dto.TicketEventDTO, error) {
	if query.ID == 0 {
		return nil, errors.NewValidationError("ticket id is required")
	}

	limit := query.Limit
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	events, err := uc.events.ListByTicket(ctx, query.ID, limit)
	if err != nil {
		uc.logger.Errorw("failed to list ticket history", "ticket_id", query.ID, "error", err)
		return nil, err
	}

	result := dto.ToTicketEventDTOs(events)
	if result == nil {
		result = []dto.TicketEventDTO{}
	}
	return result, nil
}
