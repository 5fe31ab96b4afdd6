package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("2025-01-01", "printer jam", time.Now())
	require.NoError(t, err)
	return tk
}

// ---------------------------------------------------------------------------
// Constructor
// ---------------------------------------------------------------------------

func TestNewTicket(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tk, err := NewTicket("2025-01-01", "printer jam", now)

	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", tk.Date)
	assert.Equal(t, "printer jam", tk.Issue)
	assert.Equal(t, StateActive, tk.State())
	assert.False(t, tk.IsDeleted)
	assert.Nil(t, tk.DeletedAt)
	assert.Equal(t, now.UnixMilli(), tk.Version.TS)
}

func TestNewTicketTrimsWhitespace(t *testing.T) {
	tk, err := NewTicket("  2025-01-01  ", "  printer jam  ", time.Now())

	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", tk.Date)
	assert.Equal(t, "printer jam", tk.Issue)
}

func TestNewTicketRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		issue string
	}{
		{"empty date", "", "printer jam"},
		{"blank date", "   ", "printer jam"},
		{"empty issue", "2025-01-01", ""},
		{"blank issue", "2025-01-01", "   "},
		{"both missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.date, tt.issue, time.Now())
			assert.Error(t, err)
		})
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestValidateLengthCaps(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Ticket)
		ok     bool
	}{
		{"date at cap", func(tk *Ticket) { tk.Date = strings.Repeat("d", maxDateLen) }, true},
		{"date over cap", func(tk *Ticket) { tk.Date = strings.Repeat("d", maxDateLen+1) }, false},
		{"department at cap", func(tk *Ticket) { tk.Department = strings.Repeat("x", maxDepartmentLen) }, true},
		{"department over cap", func(tk *Ticket) { tk.Department = strings.Repeat("x", maxDepartmentLen+1) }, false},
		{"name over cap", func(tk *Ticket) { tk.Name = strings.Repeat("n", maxNameLen+1) }, false},
		{"type over cap", func(tk *Ticket) { tk.Type = strings.Repeat("t", maxTypeLen+1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newValidTicket(t)
			tt.mutate(tk)

			err := tk.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateDeletionTimestampInvariant(t *testing.T) {
	tk := newValidTicket(t)

	tk.IsDeleted = true
	tk.DeletedAt = nil
	assert.Error(t, tk.Validate(), "deleted without timestamp must fail")

	deletedAt := time.Now().UnixMilli()
	tk.DeletedAt = &deletedAt
	assert.NoError(t, tk.Validate())

	tk.IsDeleted = false
	assert.Error(t, tk.Validate(), "active with timestamp must fail")
}

// ---------------------------------------------------------------------------
// Lifecycle transitions
// ---------------------------------------------------------------------------

func TestMarkDeletedAndRestored(t *testing.T) {
	tk := newValidTicket(t)
	created := tk.Version

	deleteTime := time.Now().Add(time.Second)
	tk.MarkDeleted(deleteTime)

	assert.Equal(t, StateDeleted, tk.State())
	require.NotNil(t, tk.DeletedAt)
	assert.Equal(t, deleteTime.UnixMilli(), *tk.DeletedAt)
	assert.True(t, tk.Version.NewerThan(created), "delete must mint a newer version")
	assert.NoError(t, tk.Validate())

	deleted := tk.Version
	restoreTime := deleteTime.Add(time.Second)
	tk.MarkRestored(restoreTime)

	assert.Equal(t, StateActive, tk.State())
	assert.Nil(t, tk.DeletedAt)
	assert.True(t, tk.Version.NewerThan(deleted), "restore must mint a newer version")
	assert.NoError(t, tk.Validate())
}

func TestTouchNeverDecreasesVersion(t *testing.T) {
	tk := newValidTicket(t)

	previous := tk.Version
	for i := 0; i < 5; i++ {
		tk.Touch(time.Now().Add(time.Duration(i+1) * time.Millisecond))
		assert.GreaterOrEqual(t, tk.Version.TS, previous.TS)
		previous = tk.Version
	}
}
