package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
)

func TestUpdateTicket_Success(t *testing.T) {
	expected := ticket.Version{TS: 1738000000000, Str: "2025-01-27 16:26:40"}

	var written *ticket.Ticket
	var submittedVersion ticket.Version
	var submittedForce bool
	repo := &mockTicketRepository{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket, exp ticket.Version, force bool) error {
			written = tk
			submittedVersion = exp
			submittedForce = force
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return &ticket.Ticket{
				ID:        id,
				Date:      "2025-01-20",
				Issue:     "laptop will not charge",
				Solution:  "replaced adapter",
				Version:   ticket.Version{TS: 1738100000000, Str: "2025-01-28 20:13:20"},
				CreatedAt: 1737000000000,
				UpdatedAt: 1738100000000,
			}, nil
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

	uc := NewUpdateTicketUseCase(repo, events, statsCache, &mockLogger{})
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		ID:              42,
		Date:            "2025-01-20",
		Issue:           " laptop will not charge ",
		Solution:        "replaced adapter",
		ExpectedVersion: expected,
	})

	require.NoError(t, err)
	require.NotNil(t, result)

	require.NotNil(t, written)
	assert.Equal(t, "laptop will not charge", written.Issue)
	assert.Greater(t, written.Version.TS, expected.TS, "mutation must mint a fresh version")
	assert.Equal(t, expected, submittedVersion)
	assert.False(t, submittedForce)

	// Response comes from the reload, carrying storage-managed timestamps.
	assert.Equal(t, int64(1737000000000), result.CreatedAt)
	assert.Equal(t, int64(1738100000000), result.UpdatedAt)

	require.Len(t, appended, 1)
	assert.Equal(t, ticket.EventActionUpdate, appended[0].Action)
	assert.Equal(t, 1, invalidations)
}

func TestUpdateTicket_VersionConflictPassesThrough(t *testing.T) {
	repo := &mockTicketRepository{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket, exp ticket.Version, force bool) error {
			return errors.NewConflictError("ticket was modified by someone else")
		},
	}
	eventRecorded := false
	events := &mockEventRepository{
		AppendFunc: func(ctx context.Context, e *ticket.Event) error {
			eventRecorded = true
			return nil
		},
	}

	uc := NewUpdateTicketUseCase(repo, events, &mockStatsCache{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		ID:              42,
		Date:            "2025-01-20",
		Issue:           "laptop will not charge",
		ExpectedVersion: ticket.Version{TS: 1},
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Nil(t, result)
	assert.False(t, eventRecorded)
}

func TestUpdateTicket_DeletedRecordRejected(t *testing.T) {
	repo := &mockTicketRepository{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket, exp ticket.Version, force bool) error {
			return errors.NewDeletedError("ticket is in the trash")
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockEventRepository{}, &mockStatsCache{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		ID:    42,
		Date:  "2025-01-20",
		Issue: "laptop will not charge",
	})

	require.Error(t, err)
	assert.True(t, errors.IsDeletedError(err))
	assert.Nil(t, result)
}

func TestUpdateTicket_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  UpdateTicketCommand
	}{
		{name: "zero id", cmd: UpdateTicketCommand{Date: "2025-01-20", Issue: "x"}},
		{name: "missing date", cmd: UpdateTicketCommand{ID: 1, Issue: "x"}},
		{name: "missing issue", cmd: UpdateTicketCommand{ID: 1, Date: "2025-01-20"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repoCalled := false
			repo := &mockTicketRepository{
				UpdateFunc: func(ctx context.Context, tk *ticket.Ticket, exp ticket.Version, force bool) error {
					repoCalled = true
					return nil
				},
			}

			uc := NewUpdateTicketUseCase(repo, &mockEventRepository{}, &mockStatsCache{}, &mockLogger{})
			result, err := uc.Execute(context.Background(), tc.cmd)

			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Nil(t, result)
			assert.False(t, repoCalled)
		})
	}
}

func TestUpdateTicket_ForceBypassesVersionCheck(t *testing.T) {
	var submittedForce bool
	repo := &mockTicketRepository{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket, exp ticket.Version, force bool) error {
			submittedForce = force
			return nil
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockEventRepository{}, &mockStatsCache{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		ID:    42,
		Date:  "2025-01-20",
		Issue: "laptop will not charge",
		Force: true,
	})

	require.NoError(t, err)
	assert.True(t, submittedForce)
}

func TestUpdateTicket_ReloadFailureFallsBackToWrittenData(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return nil, errors.NewInternalError("read replica down")
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockEventRepository{}, &mockStatsCache{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		ID:    42,
		Date:  "2025-01-20",
		Issue: "laptop will not charge",
	})

	require.NoError(t, err, "the write committed; the response degrades instead of erroring")
	require.NotNil(t, result)
	assert.Equal(t, uint(42), result.ID)
	assert.Equal(t, "laptop will not charge", result.Issue)
	assert.Positive(t, result.VersionTS)
}
