// Package keyset implements the cursor codec for keyset pagination.
//
// A cursor names the exact position of a row in a listing: the value of the
// active sort key plus the row id as tie-breaker. Tokens are JSON serialized
// and then base64 URL-safe encoded without padding, so they survive query
// strings and copy/paste untouched.
package keyset

import (
	"encoding/base64"
	"encoding/json"
)

// Direction selects which side of the cursor a page is read from.
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// ParseDirection normalizes a query parameter into a Direction.
// Anything other than "prev" reads forward.
func ParseDirection(s string) Direction {
	if s == string(DirectionPrev) {
		return DirectionPrev
	}
	return DirectionNext
}

// Cursor is the decoded position of a listing page boundary. Key holds the
// sort column value of the boundary row: the calendar date for active
// listings, the deletion timestamp in decimal milliseconds for trash
// listings. ID breaks ties between rows sharing a key.
type Cursor struct {
	Key string `json:"k"`
	ID  uint   `json:"id"`
}

// Tokens beyond this length cannot come from Encode.
const maxTokenLen = 512

// Encode serializes a cursor into an opaque URL-safe token.
func Encode(c Cursor) string {
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses a token produced by Encode. The boolean reports whether the
// token was usable; callers treat false as "no cursor" and fall back to
// offset pagination rather than erroring, so stale or corrupted tokens can
// never break a listing.
func Decode(token string) (Cursor, bool) {
	if token == "" || len(token) > maxTokenLen {
		return Cursor{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, false
	}

	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, false
	}
	if c.ID == 0 {
		return Cursor{}, false
	}

	return c, true
}
