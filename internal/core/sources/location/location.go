package location

import (
	"context"
	"errors"

	"github.com/neilberkman/trailwatch/internal/core/models"
)

// ErrNoFix is reported when a source could not acquire a position
var ErrNoFix = errors.New("position unavailable")

// Event is one delivery from a location source: a fix or an acquisition error
type Event struct {
	Fix models.Fix
	Err error
}

// Source delivers location events until ctx is cancelled.
// Watch blocks; emit is called at most once at a time.
type Source interface {
	Watch(ctx context.Context, emit func(Event)) error
}
