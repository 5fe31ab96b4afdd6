package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/keyset"
)

func TestListTickets_DefaultsAndFilters(t *testing.T) {
	var captured ticket.ListQuery
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error) {
			captured = q
			return &ticket.ListPage{
				Items: []*ticket.Ticket{{ID: 1, Date: "2025-01-05", Issue: "no sound"}},
				Total: 1,
			}, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		Trash:  true,
		From:   "2025-01-01",
		To:     "2025-01-31",
		Type:   "hardware",
		Search: "sound",
	})

	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, captured.Trash)
	assert.Equal(t, "2025-01-01", captured.From)
	assert.Equal(t, "2025-01-31", captured.To)
	assert.Equal(t, "hardware", captured.Type)
	assert.Equal(t, "sound", captured.Search)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 20, captured.PageSize)
	assert.Nil(t, captured.Cursor)
	assert.Equal(t, keyset.DirectionNext, captured.Direction)

	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "no sound", result.Items[0].Issue)
}

func TestListTickets_CursorSelectsKeysetPaging(t *testing.T) {
	var captured ticket.ListQuery
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error) {
			captured = q
			return &ticket.ListPage{NextCursor: "tok-next", PrevCursor: "tok-prev"}, nil
		},
	}

	token := keyset.Encode(keyset.Cursor{Key: "2025-01-02", ID: 5})
	uc := NewListTicketsUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), ListTicketsQuery{Cursor: token, Direction: "prev"})

	require.NoError(t, err)
	require.NotNil(t, captured.Cursor)
	assert.Equal(t, "2025-01-02", captured.Cursor.Key)
	assert.Equal(t, uint(5), captured.Cursor.ID)
	assert.Equal(t, keyset.DirectionPrev, captured.Direction)

	// Keyset pages have no meaningful page number.
	assert.Zero(t, result.Page)
	assert.Equal(t, "tok-next", result.NextCursor)
	assert.Equal(t, "tok-prev", result.PrevCursor)
}

func TestListTickets_MalformedCursorFallsBackToOffset(t *testing.T) {
	var captured ticket.ListQuery
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error) {
			captured = q
			return &ticket.ListPage{}, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), ListTicketsQuery{Cursor: "!!not-base64!!", Page: 3, PageSize: 10})

	require.NoError(t, err)
	assert.Nil(t, captured.Cursor)
	assert.Equal(t, 3, captured.Page)
	assert.Equal(t, 10, captured.PageSize)
	assert.Equal(t, 3, result.Page)
}

func TestListTickets_PaginationClamped(t *testing.T) {
	var captured ticket.ListQuery
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error) {
			captured = q
			return &ticket.ListPage{}, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})
	_, err := uc.Execute(context.Background(), ListTicketsQuery{Page: -4, PageSize: 5000})

	require.NoError(t, err)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 100, captured.PageSize)
}

func TestListTickets_EmptyPageHasNonNilItems(t *testing.T) {
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error) {
			return &ticket.ListPage{Total: 0}, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), ListTicketsQuery{})

	require.NoError(t, err)
	require.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestListTickets_RepositoryError(t *testing.T) {
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error) {
			return nil, errors.NewInternalError("query failed")
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), ListTicketsQuery{})

	require.Error(t, err)
	assert.Nil(t, result)
}
