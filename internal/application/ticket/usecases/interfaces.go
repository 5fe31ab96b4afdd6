package usecases

import (
	"context"

	"vetiver/internal/application/ticket/dto"
)

// TransactionRunner runs a function inside a database transaction; the
// context it passes carries the transaction for repositories to pick up.
// Satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SearchRebuilder refreshes the search index after bulk mutations.
// Satisfied by search.TicketIndex; a nil-tolerant no-op when unsupported.
type SearchRebuilder interface {
	Rebuild(ctx context.Context) error
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type RestoreTicketExecutor interface {
	Execute(ctx context.Context, cmd RestoreTicketCommand) (*RestoreTicketResult, error)
}

type PurgeTicketExecutor interface {
	Execute(ctx context.Context, cmd PurgeTicketCommand) error
}

type ImportTicketsExecutor interface {
	Execute(ctx context.Context, cmd ImportTicketsCommand) (*ImportTicketsResult, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context) (*dto.TicketStatsDTO, error)
}

type GetTicketHistoryExecutor interface {
	Execute(ctx context.Context, query GetTicketHistoryQuery) ([]dto.TicketEventDTO, error)
}
