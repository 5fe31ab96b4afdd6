package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
)

func TestCreateTicket_Success(t *testing.T) {
	var created *ticket.Ticket
	repo := &mockTicketRepository{
		CreateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			tk.ID = 7
			tk.CreatedAt = 1735000000000
			tk.UpdatedAt = 1735000000000
			created = tk
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

	uc := NewCreateTicketUseCase(repo, events, statsCache, &mockLogger{})
	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Date:       "2025-03-01",
		Issue:      "  printer jams on duplex  ",
		Department: "  Accounting ",
		Name:       "j.doe",
		Type:       "hardware",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(7), result.ID)
	assert.Equal(t, "2025-03-01", result.Date)
	assert.Equal(t, "printer jams on duplex", result.Issue)
	assert.Equal(t, "Accounting", result.Department)
	assert.False(t, result.IsDeleted)

	require.NotNil(t, created)
	assert.Positive(t, created.Version.TS)
	assert.NotEmpty(t, created.Version.Str)
	assert.False(t, created.IsDeleted)
	assert.Nil(t, created.DeletedAt)

	require.Len(t, appended, 1)
	assert.Equal(t, ticket.EventActionCreate, appended[0].Action)
	require.NotNil(t, appended[0].TicketID)
	assert.Equal(t, uint(7), *appended[0].TicketID)
	assert.Equal(t, 1, invalidations)
}

func TestCreateTicket_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateTicketCommand
	}{
		{name: "missing date", cmd: CreateTicketCommand{Issue: "broken keyboard"}},
		{name: "missing issue", cmd: CreateTicketCommand{Date: "2025-03-01"}},
		{name: "whitespace issue", cmd: CreateTicketCommand{Date: "2025-03-01", Issue: "   "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repoCalled := false
			repo := &mockTicketRepository{
				CreateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
					repoCalled = true
					return nil
				},
			}

			uc := NewCreateTicketUseCase(repo, &mockEventRepository{}, &mockStatsCache{}, &mockLogger{})
			result, err := uc.Execute(context.Background(), tc.cmd)

			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Nil(t, result)
			assert.False(t, repoCalled)
		})
	}
}

func TestCreateTicket_RepositoryError(t *testing.T) {
	repo := &mockTicketRepository{
		CreateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			return errors.NewInternalError("insert failed")
		},
	}
	eventRecorded := false
	events := &mockEventRepository{
		AppendFunc: func(ctx context.Context, e *ticket.Event) error {
			eventRecorded = true
			return nil
		},
	}

	uc := NewCreateTicketUseCase(repo, events, &mockStatsCache{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), CreateTicketCommand{Date: "2025-03-01", Issue: "vpn drops"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, eventRecorded)
}

func TestCreateTicket_AuditFailureDoesNotFailRequest(t *testing.T) {
	repo := &mockTicketRepository{
		CreateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			tk.ID = 3
			return nil
		},
	}
	events := &mockEventRepository{
		AppendFunc: func(ctx context.Context, e *ticket.Event) error {
			return errors.NewInternalError("events table unavailable")
		},
	}
	statsCache := &mockStatsCache{
		InvalidateFunc: func(ctx context.Context) error {
			return errors.NewInternalError("redis down")
		},
	}

	uc := NewCreateTicketUseCase(repo, events, statsCache, &mockLogger{})
	result, err := uc.Execute(context.Background(), CreateTicketCommand{Date: "2025-03-01", Issue: "vpn drops"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(3), result.ID)
}
