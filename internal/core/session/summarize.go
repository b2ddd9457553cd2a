package session

import (
	"github.com/neilberkman/trailwatch/internal/core/models"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

// Summarize replays a recording through a tracker without waiting on
// wall time. Elapsed time advances in whole seconds following the fix
// timestamps. The returned tracker is in Summary.
func Summarize(fixes []models.Fix, progress ProgressCallback, opts ...tracker.Option) *tracker.Tracker {
	t := tracker.New(opts...)
	t.Start()

	var first int64
	for i, fix := range fixes {
		if i == 0 {
			first = fix.Timestamp
		}

		target := int((fix.Timestamp - first) / 1000)
		for t.Snapshot().Metrics.ElapsedSeconds < target {
			t.Tick()
		}

		if err := fix.Validate(); err != nil {
			t.IngestFixError(err)
		} else {
			t.IngestFix(fix)
		}

		if progress != nil {
			progress.Update(t.Snapshot().Metrics.DistanceKm)
		}
	}

	if progress != nil {
		progress.Finish()
	}
	t.Stop()
	return t
}
