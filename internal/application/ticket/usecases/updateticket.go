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

// UpdateTicketCommand replaces the record's data fields. ExpectedVersion is
// the version token the client last saw; the write commits only while the
// stored row still carries exactly that token, unless Force drops the check.
type UpdateTicketCommand struct {
	ID              uint
	Date            string
	Issue           string
	Department      string
	Name            string
	Solution        string
	Remarks         string
	Type            string
	ExpectedVersion ticket.Version
	Force           bool
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	events     ticket.EventRepository
	statsCache cache.StatsCache
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	events ticket.EventRepository,
	statsCache cache.StatsCache,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		events:     events,
		statsCache: statsCache,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	if cmd.ID == 0 {
		return nil, errors.NewValidationError("ticket id is required")
	}

	updated := &ticket.Ticket{
		ID:         cmd.ID,
		Date:       strings.TrimSpace(cmd.Date),
		Issue:      strings.TrimSpace(cmd.Issue),
		Department: strings.TrimSpace(cmd.Department),
		Name:       strings.TrimSpace(cmd.Name),
		Solution:   strings.TrimSpace(cmd.Solution),
		Remarks:    strings.TrimSpace(cmd.Remarks),
		Type:       strings.TrimSpace(cmd.Type),
	}
	updated.Touch(time.Now())
	if err := updated.Validate(); err != nil {
		uc.logger.Warnw("invalid update ticket command", "ticket_id", cmd.ID, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, updated, cmd.ExpectedVersion, cmd.Force); err != nil {
		if errors.IsConflictError(err) {
			uc.logger.Warnw("ticket update lost version race",
				"ticket_id", cmd.ID, "submitted_version_ts", cmd.ExpectedVersion.TS)
			return nil, conflictWithWireRecord(err)
		}
		if !errors.IsNotFoundError(err) && !errors.IsDeletedError(err) {
			uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.ID, "error", err)
		}
		return nil, err
	}

	recordEvent(ctx, uc.events, uc.logger, &cmd.ID, ticket.EventActionUpdate, map[string]any{
		"version_ts": updated.Version.TS,
		"force":      cmd.Force,
	})
	invalidateStats(ctx, uc.statsCache, uc.logger)

	uc.logger.Infow("ticket updated", "ticket_id", cmd.ID, "version_ts", updated.Version.TS, "force", cmd.Force)

	// Re-read for a complete response; the write itself is already committed,
	// so a failed read falls back to the data we wrote.
	fresh, err := uc.ticketRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Warnw("failed to reload ticket after update", "ticket_id", cmd.ID, "error", err)
		return dto.ToTicketDTO(updated), nil
	}
	return dto.ToTicketDTO(fresh), nil
}

// conflictWithWireRecord swaps the stored entity in a version-conflict
// payload for its wire shape, so the record a client rebases from looks
// exactly like a plain read.
func conflictWithWireRecord(err error) error {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		return err
	}
	data, ok := appErr.Data.(map[string]any)
	if !ok {
		return err
	}
	if stored, ok := data["record"].(*ticket.Ticket); ok {
		data["record"] = dto.ToTicketDTO(stored)
	}
	return err
}
