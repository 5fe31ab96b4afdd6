package usecases

import (
	"context"

	"vetiver/internal/application/ticket/dto"
	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/keyset"
	"vetiver/internal/shared/logger"
	"vetiver/internal/shared/utils"
)

type ListTicketsQuery struct {
	Trash     bool
	From      string
	To        string
	Type      string
	Search    string
	Page      int
	PageSize  int
	Cursor    string
	Direction string
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListDTO, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	listQuery := ticket.ListQuery{
		Trash:     query.Trash,
		From:      query.From,
		To:        query.To,
		Type:      query.Type,
		Search:    query.Search,
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		Direction: keyset.ParseDirection(query.Direction),
	}

	// A stale or corrupted cursor degrades to offset paging, never errors.
	if cursor, ok := keyset.Decode(query.Cursor); ok {
		listQuery.Cursor = &cursor
	}

	page, err := uc.ticketRepo.List(ctx, listQuery)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "trash", query.Trash, "error", err)
		return nil, err
	}

	result := &dto.TicketListDTO{
		Items:      dto.ToTicketDTOs(page.Items),
		Total:      page.Total,
		PageSize:   pagination.PageSize,
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
	}
	if listQuery.Cursor == nil {
		result.Page = pagination.Page
	}
	if result.Items == nil {
		result.Items = []dto.TicketDTO{}
	}

	return result, nil
}
