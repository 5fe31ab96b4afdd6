package usecases

import (
	"context"

	"vetiver/internal/application/ticket/dto"
	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

type GetTicketQuery struct {
	ID uint
}

// GetTicketUseCase fetches a single record in either lifecycle state;
// trashed records are returned with is_deleted set rather than hidden.
type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.ID == 0 {
		return nil, errors.NewValidationError("ticket id is required")
	}

	found, err := uc.ticketRepo.GetByID(ctx, query.ID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to get ticket", "ticket_id", query.ID, "error", err)
		}
		return nil, err
	}

	return dto.ToTicketDTO(found), nil
}
