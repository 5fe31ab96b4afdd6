package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
)

func TestDeleteTicket_Success(t *testing.T) {
	var stamped ticket.Version
	repo := &mockTicketRepository{
		SoftDeleteFunc: func(ctx context.Context, id uint, v ticket.Version) error {
			stamped = v
			return nil
		},
	}
	var appended []*ticket.Event
	events := &mockEventRepository{
		AppendFunc: func(ctx context.Context, e *ticket.Event) error {
			appended = append(appended, e)
			return nil
		},
	}
	invalidations := 0
	statsCache := &mockStatsCache{
		InvalidateFunc: func(ctx context.Context) error {
			invalidations++
			return nil
		},
	}

	uc := NewDeleteTicketUseCase(repo, events, statsCache, &mockLogger{})
	result, err := uc.Execute(context.Background(), DeleteTicketCommand{ID: 42})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(42), result.ID)
	assert.False(t, result.Already)
	assert.Positive(t, stamped.TS)
	assert.NotEmpty(t, stamped.Str)
	assert.Equal(t, stamped.TS, result.VersionTS)

	require.Len(t, appended, 1)
	assert.Equal(t, ticket.EventActionDelete, appended[0].Action)
	assert.Equal(t, 1, invalidations)
}

func TestDeleteTicket_AlreadyDeletedIsIdempotent(t *testing.T) {
	repo := &mockTicketRepository{
		SoftDeleteFunc: func(ctx context.Context, id uint, v ticket.Version) error {
			return errors.NewAlreadyInStateError("ticket is already in the trash")
		},
	}
	eventRecorded := false
	events := &mockEventRepository{
		AppendFunc: func(ctx context.Context, e *ticket.Event) error {
			eventRecorded = true
			return nil
		},
	}
	invalidations := 0
	statsCache := &mockStatsCache{
		InvalidateFunc: func(ctx context.Context) error {
			invalidations++
			return nil
		},
	}

	uc := NewDeleteTicketUseCase(repo, events, statsCache, &mockLogger{})
	result, err := uc.Execute(context.Background(), DeleteTicketCommand{ID: 42})

	require.NoError(t, err, "repeat delete succeeds because the end state already holds")
	require.NotNil(t, result)
	assert.True(t, result.Already)
	assert.Zero(t, result.VersionTS)
	assert.False(t, eventRecorded, "a no-op leaves no audit entry")
	assert.Zero(t, invalidations)
}

func TestDeleteTicket_NotFound(t *testing.T) {
	repo := &mockTicketRepository{
		SoftDeleteFunc: func(ctx context.Context, id uint, v ticket.Version) error {
			return errors.NewNotFoundError("ticket not found")
		},
	}

	uc := NewDeleteTicketUseCase(repo, &mockEventRepository{}, &mockStatsCache{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), DeleteTicketCommand{ID: 9999})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Nil(t, result)
}

func TestDeleteTicket_ZeroID(t *testing.T) {
	uc := NewDeleteTicketUseCase(&mockTicketRepository{}, &mockEventRepository{}, &mockStatsCache{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), DeleteTicketCommand{})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Nil(t, result)
}
