package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

func TestVersionResolved(t *testing.T) {
	tests := []struct {
		name    string
		version Version
		want    int64
	}{
		{
			name:    "numeric timestamp wins",
			version: Version{TS: 1710500000000, Str: "irrelevant"},
			want:    1710500000000,
		},
		{
			name:    "space-separated display form parsed as UTC",
			version: Version{Str: "2024-03-15 10:13:20"},
			want:    time.Date(2024, 3, 15, 10, 13, 20, 0, time.UTC).UnixMilli(),
		},
		{
			name:    "T-separated display form without zone",
			version: Version{Str: "2024-03-15T10:13:20"},
			want:    time.Date(2024, 3, 15, 10, 13, 20, 0, time.UTC).UnixMilli(),
		},
		{
			name:    "RFC3339 with offset",
			version: Version{Str: "2024-03-15T12:13:20+02:00"},
			want:    time.Date(2024, 3, 15, 10, 13, 20, 0, time.UTC).UnixMilli(),
		},
		{
			name:    "malformed string resolves to zero",
			version: Version{Str: "next tuesday"},
			want:    0,
		},
		{
			name:    "empty version resolves to zero",
			version: Version{},
			want:    0,
		},
		{
			name:    "negative timestamp treated as unset",
			version: Version{TS: -5, Str: "2024-03-15 10:13:20"},
			want:    time.Date(2024, 3, 15, 10, 13, 20, 0, time.UTC).UnixMilli(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.version.Resolved())
		})
	}
}

func TestVersionHasValue(t *testing.T) {
	assert.False(t, Version{}.HasValue())
	assert.True(t, Version{TS: 1}.HasValue())
	assert.True(t, Version{Str: "anything"}.HasValue())
	assert.True(t, Version{Str: "not a timestamp"}.HasValue(),
		"unparseable strings still count as version information")
}

// ---------------------------------------------------------------------------
// Ordering
// ---------------------------------------------------------------------------

func TestVersionNewerThan(t *testing.T) {
	tests := []struct {
		name     string
		incoming Version
		stored   Version
		want     bool
	}{
		{
			name:     "numeric strictly newer",
			incoming: Version{TS: 2000},
			stored:   Version{TS: 1000},
			want:     true,
		},
		{
			name:     "numeric equal is not newer",
			incoming: Version{TS: 1000},
			stored:   Version{TS: 1000},
			want:     false,
		},
		{
			name:     "numeric older",
			incoming: Version{TS: 500},
			stored:   Version{TS: 1000},
			want:     false,
		},
		{
			name:     "version-less incoming never newer",
			incoming: Version{},
			stored:   Version{},
			want:     false,
		},
		{
			name:     "version-less incoming loses even to empty store",
			incoming: Version{},
			stored:   Version{TS: 0, Str: ""},
			want:     false,
		},
		{
			name:     "parseable display string beats older numeric",
			incoming: Version{Str: "2024-03-15 00:00:00"},
			stored:   Version{TS: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC).UnixMilli()},
			want:     true,
		},
		{
			name:     "numeric beats newer-looking display string",
			incoming: Version{TS: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC).UnixMilli(), Str: "2024-03-20 00:00:00"},
			stored:   Version{TS: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli()},
			want:     false,
		},
		{
			name:     "stored without explicit ts resolves through its display string",
			incoming: Version{TS: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli()},
			stored:   Version{Str: "2024-03-16 00:00:00"},
			want:     false,
		},
		{
			name:     "unparseable strings compared lexicographically",
			incoming: Version{Str: "beta"},
			stored:   Version{Str: "alpha"},
			want:     true,
		},
		{
			name:     "unparseable string loses lexicographically",
			incoming: Version{Str: "alpha"},
			stored:   Version{Str: "beta"},
			want:     false,
		},
		{
			name:     "unparseable string beats versionless store",
			incoming: Version{Str: "anything"},
			stored:   Version{},
			want:     true,
		},
		{
			name:     "unparseable string never beats a numeric store",
			incoming: Version{Str: "zzzz"},
			stored:   Version{TS: 1000},
			want:     false,
		},
		{
			name:     "unparseable string never beats a resolvable display string",
			incoming: Version{Str: "zzzz"},
			stored:   Version{Str: "2024-03-15 10:13:20"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.incoming.NewerThan(tt.stored))
		})
	}
}

// ---------------------------------------------------------------------------
// Clamping
// ---------------------------------------------------------------------------

func TestVersionClamp(t *testing.T) {
	long := Version{Str: "Tuesday, January 27th 2025 at 4:26pm CST"}
	assert.Equal(t, "Tuesday, January 27th 2025 at 4:", long.Clamp().Str)

	short := Version{TS: 1738000000000, Str: "2025-01-27 16:26:40"}
	assert.Equal(t, short, short.Clamp())

	multibyte := Version{Str: "版本版本版本版本版本版本版本版本版本版本版本版本版本版本版本版本版本"}
	assert.Equal(t, 32, len([]rune(multibyte.Clamp().Str)))
}

// ---------------------------------------------------------------------------
// Minting
// ---------------------------------------------------------------------------

func TestMintVersion(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 600_000_000, time.UTC)

	v := MintVersion(now)

	require.Equal(t, now.UnixMilli(), v.TS)
	assert.Equal(t, "2025-01-02 03:04:05", v.Str)
}

func TestMintVersionIsMonotonicOverSuccessiveCalls(t *testing.T) {
	first := MintVersion(time.Now())
	second := MintVersion(time.Now().Add(time.Millisecond))

	assert.True(t, second.NewerThan(first))
	assert.False(t, first.NewerThan(second))
}

func TestMintedVersionRoundTripsThroughDisplayString(t *testing.T) {
	// A minted version stripped to its display form must still resolve to the
	// same second, so stores written by legacy clients stay comparable.
	now := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	minted := MintVersion(now)

	textualOnly := Version{Str: minted.Str}
	assert.Equal(t, minted.TS, textualOnly.Resolved())
}
