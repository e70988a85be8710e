// Package updater runs the name update cycle: fetch the current display
// name, strip any stale clock glyph, append the glyph for the current time,
// and write the name back. It also provides the half-hour scheduler loop.
package updater

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/onnwee/clockname/clockface"
	"github.com/onnwee/clockname/telemetry"
	"github.com/onnwee/clockname/twitterapi"
)

type Updater struct {
	Client *twitterapi.Client

	// Clock is the time source; nil means the real clock.
	Clock clockwork.Clock

	// Location is the timezone used to pick the glyph. Nil means the
	// process-local zone.
	Location *time.Location

	// Interval between scheduled updates; zero defaults to 30 minutes,
	// firing at :00 and :30.
	Interval time.Duration
}

func (u *Updater) clock() clockwork.Clock {
	if u.Clock != nil {
		return u.Clock
	}
	return clockwork.NewRealClock()
}

// RunOnce performs one full update cycle. Any step's failure aborts the
// cycle: a failed fetch means no update is attempted, a failed update leaves
// the remote name untouched. No retries.
func (u *Updater) RunOnce(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "updater", "update-cycle")
	defer span.End()

	if telemetry.UpdateCycles != nil {
		telemetry.UpdateCycles.Inc()
	}
	start := time.Now()
	defer func() {
		if telemetry.CycleDuration != nil {
			telemetry.CycleDuration.Observe(time.Since(start).Seconds())
		}
	}()

	err := u.runOnce(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		if telemetry.UpdateFailures != nil {
			telemetry.UpdateFailures.Inc()
		}
		return err
	}
	telemetry.RecordUpdate(time.Now())
	return nil
}

func (u *Updater) runOnce(ctx context.Context) error {
	if err := u.Client.Init(); err != nil {
		return err
	}

	name, err := u.Client.Me(ctx)
	if err != nil {
		return err
	}

	now := u.clock().Now()
	if u.Location != nil {
		now = now.In(u.Location)
	}
	glyph := clockface.ForTime(now)
	next := clockface.Compose(clockface.Strip(name), glyph)

	slog.Info("selected clock glyph", slog.String("glyph", glyph), slog.Time("at", now))
	slog.Info("updating display name", slog.String("name", next))

	return u.Client.UpdateName(ctx, next)
}

// Run fires RunOnce at every interval boundary (:00 and :30 for the default
// 30m interval) until ctx is done. Scheduled failures are logged and never
// crash the process; the immediate startup cycle is the caller's concern.
func (u *Updater) Run(ctx context.Context) {
	interval := u.Interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	slog.Info("update scheduler started", slog.Duration("interval", interval))
	for {
		wait := nextBoundary(u.clock().Now(), interval)
		select {
		case <-ctx.Done():
			return
		case <-u.clock().After(wait):
		}
		if err := u.RunOnce(ctx); err != nil {
			slog.Warn("scheduled update failed", slog.Any("err", err))
		}
	}
}

// nextBoundary returns how long to sleep so the next cycle lands on an
// interval boundary (Truncate works on absolute time, so 30m boundaries are
// :00 and :30 in any whole-hour-offset zone).
func nextBoundary(now time.Time, interval time.Duration) time.Duration {
	return now.Truncate(interval).Add(interval).Sub(now)
}
