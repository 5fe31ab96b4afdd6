package ticket

import (
	"time"
	"unicode/utf8"
)

// Version is the freshness token attached to every ticket. TS is the
// authoritative unix-millisecond timestamp; Str is the display form kept for
// records written by legacy clients that only carried a textual timestamp.
//
// A version with TS == 0 falls back to parsing Str, and if Str is not a
// recognizable timestamp either, the version resolves to 0, the oldest
// possible value. Resolution never fails.
type Version struct {
	TS  int64  `json:"version_ts"`
	Str string `json:"version_str,omitempty"`
}

// NewVersion builds a version from its stored representation.
func NewVersion(ts int64, str string) Version {
	return Version{TS: ts, Str: str}
}

// maxDisplayLen bounds the stored display form, matching the column width.
// Unlike the data field caps a long display string is clamped rather than
// rejected: version resolution never fails, and the full string has already
// been parsed by the time the record is stored.
const maxDisplayLen = 32

// Clamp bounds the display string to its storage width.
func (v Version) Clamp() Version {
	if utf8.RuneCountInString(v.Str) > maxDisplayLen {
		v.Str = string([]rune(v.Str)[:maxDisplayLen])
	}
	return v
}

// textualLayouts are the display-timestamp forms legacy clients wrote,
// interpreted as UTC when no zone is present.
var textualLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// HasValue reports whether the version carries any freshness information at
// all. A version-less record is never considered newer than anything.
func (v Version) HasValue() bool {
	return v.TS > 0 || v.Str != ""
}

// Resolved returns the version as unix milliseconds: TS when set, otherwise a
// best-effort parse of the display string, otherwise 0.
func (v Version) Resolved() int64 {
	if v.TS > 0 {
		return v.TS
	}
	return parseTextual(v.Str)
}

// NewerThan reports whether v is strictly newer than stored. When v resolves
// numerically the comparison is numeric against the stored resolution. When it
// does not, the display strings are compared lexicographically, but only
// against a store that is itself numerically unresolved: version_ts never
// decreases across mutations, so an unresolvable token cannot beat a resolved
// one. A version without any value is never newer.
func (v Version) NewerThan(stored Version) bool {
	if !v.HasValue() {
		return false
	}
	if resolved := v.Resolved(); resolved > 0 {
		return resolved > stored.Resolved()
	}
	if stored.Resolved() > 0 {
		return false
	}
	return v.Str > stored.Str
}

func parseTextual(s string) int64 {
	if s == "" {
		return 0
	}
	for _, layout := range textualLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// MintVersion returns the freshness token for a mutation happening at now:
// the millisecond timestamp plus its display form.
func MintVersion(now time.Time) Version {
	return Version{
		TS:  now.UnixMilli(),
		Str: now.UTC().Format("2006-01-02 15:04:05"),
	}
}
