package network

import (
	"bytes"

	"github.com/google/uuid"
)

// NormalizePair returns the canonical storage order for an unordered pair
// of user ids: the lower-sorting id first. Every connection read and write
// goes through this, so each unordered pair occupies exactly one row.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}
