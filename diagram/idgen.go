package diagram

import (
	"strconv"
	"time"
)

// IDGen hands out node ids derived from the creation timestamp in
// milliseconds. Ids are strictly increasing, so two nodes created within the
// same millisecond (eg a paste right after a duplicate) still differ.
type IDGen struct {
	// Now defaults to time.Now.
	Now func() time.Time

	// Exists, when set, is consulted so that ids already present on the board
	// (eg restored by undo) are skipped.
	Exists func(id string) bool

	last int64
}

func (g *IDGen) NextID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	ms := now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	id := strconv.FormatInt(ms, 10)
	for g.Exists != nil && g.Exists(id) {
		ms++
		id = strconv.FormatInt(ms, 10)
	}
	g.last = ms
	return id
}
