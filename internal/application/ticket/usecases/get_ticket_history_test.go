package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
)

func TestGetTicketHistory_Success(t *testing.T) {
	ticketID := uint(42)
	events := &mockEventRepository{
		ListByTicketFunc: func(ctx context.Context, id uint, limit int) ([]*ticket.Event, error) {
			return []*ticket.Event{
				{ID: 3, TicketID: &ticketID, Action: ticket.EventActionDelete, CreatedAt: 1739000000000},
				{ID: 2, TicketID: &ticketID, Action: ticket.EventActionUpdate, Detail: map[string]any{"force": false}, CreatedAt: 1738000000000},
				{ID: 1, TicketID: &ticketID, Action: ticket.EventActionCreate, CreatedAt: 1737000000000},
			}, nil
		},
	}

	uc := NewGetTicketHistoryUseCase(events, &mockLogger{})
	result, err := uc.Execute(context.Background(), GetTicketHistoryQuery{ID: 42, Limit: 50})

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, ticket.EventActionDelete, result[0].Action)
	assert.Equal(t, ticket.EventActionCreate, result[2].Action)
	assert.Equal(t, false, result[1].Detail["force"])
}

func TestGetTicketHistory_LimitClamped(t *testing.T) {
	var captured int
	events := &mockEventRepository{
		ListByTicketFunc: func(ctx context.Context, id uint, limit int) ([]*ticket.Event, error) {
			captured = limit
			return nil, nil
		},
	}

	uc := NewGetTicketHistoryUseCase(events, &mockLogger{})
	_, err := uc.Execute(context.Background(), GetTicketHistoryQuery{ID: 42, Limit: 10000})

	require.NoError(t, err)
	assert.Equal(t, maxHistoryLimit, captured)
}

func TestGetTicketHistory_EmptyHistoryHasNonNilResult(t *testing.T) {
	uc := NewGetTicketHistoryUseCase(&mockEventRepository{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), GetTicketHistoryQuery{ID: 42})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestGetTicketHistory_ZeroID(t *testing.T) {
	uc := NewGetTicketHistoryUseCase(&mockEventRepository{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), GetTicketHistoryQuery{})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Nil(t, result)
}

func TestGetTicketHistory_RepositoryError(t *testing.T) {
	events := &mockEventRepository{
		ListByTicketFunc: func(ctx context.Context, id uint, limit int) ([]*ticket.Event, error) {
			return nil, errors.NewInternalError("query failed")
		},
	}

	uc := NewGetTicketHistoryUseCase(events, &mockLogger{})
	result, err := uc.Execute(context.Background(), GetTicketHistoryQuery{ID: 42})

	require.Error(t, err)
	assert.Nil(t, result)
}
