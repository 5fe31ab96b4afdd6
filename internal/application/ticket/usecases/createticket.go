package usecases

import (
	"context"
	"strings"
	"time"

	"vetiver/internal/application/ticket/dto"
	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/cache"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

type CreateTicketCommand struct {
	Date       string
	Issue      string
	Department string
	Name       string
	Solution   string
	Remarks    string
	Type       string
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	events     ticket.EventRepository
	statsCache cache.StatsCache
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	events ticket.EventRepository,
	statsCache cache.StatsCache,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		events:     events,
		statsCache: statsCache,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	newTicket, err := ticket.NewTicket(cmd.Date, cmd.Issue, time.Now())
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	newTicket.Department = strings.TrimSpace(cmd.Department)
	newTicket.Name = strings.TrimSpace(cmd.Name)
	newTicket.Solution = strings.TrimSpace(cmd.Solution)
	newTicket.Remarks = strings.TrimSpace(cmd.Remarks)
	newTicket.Type = strings.TrimSpace(cmd.Type)
	if err := newTicket.Validate(); err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Create(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, err
	}

	recordEvent(ctx, uc.events, uc.logger, &newTicket.ID, ticket.EventActionCreate, map[string]any{
		"version_ts": newTicket.Version.TS,
	})
	invalidateStats(ctx, uc.statsCache, uc.logger)

	uc.logger.Infow("ticket created", "ticket_id", newTicket.ID, "version_ts", newTicket.Version.TS)
	return dto.ToTicketDTO(newTicket), nil
}
