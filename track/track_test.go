package track

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type recordingTracker struct {
	mu      sync.Mutex
	offsets []float64
	err     error
}

func (r *recordingTracker) Open(context.Context, Payload) (Engagement, error) {
	return Engagement{ID: "e-1"}, nil
}

func (r *recordingTracker) Progress(_ context.Context, _ string, offset, _ float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offsets = append(r.offsets, offset)
	return r.err
}

func (r *recordingTracker) recorded() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.offsets...)
}

func writerAt(tracker Tracker, interval time.Duration, clock *time.Time) *ProgressWriter {
	w := NewProgressWriter(tracker, "e-1", interval)
	w.now = func() time.Time { return *clock }
	return w
}

func TestProgressWriter(t *testing.T) {
	Convey("ProgressWriter", t, func() {
		ctx := context.Background()
		tracker := &recordingTracker{}
		clock := time.Unix(1000, 0)
		w := writerAt(tracker, 15*time.Second, &clock)

		Convey("Offers inside the interval are dropped", func() {
			w.Offer(ctx, 10, 3600)
			clock = clock.Add(5 * time.Second)
			w.Offer(ctx, 20, 3600)
			clock = clock.Add(5 * time.Second)
			w.Offer(ctx, 30, 3600)

			So(tracker.recorded(), ShouldResemble, []float64{10})
		})

		Convey("An offer after the interval writes again", func() {
			w.Offer(ctx, 10, 3600)
			clock = clock.Add(16 * time.Second)
			w.Offer(ctx, 40, 3600)

			So(tracker.recorded(), ShouldResemble, []float64{10, 40})
		})

		Convey("Backwards offsets are ignored", func() {
			w.Offer(ctx, 100, 3600)
			clock = clock.Add(time.Minute)
			w.Offer(ctx, 50, 3600)

			So(tracker.recorded(), ShouldResemble, []float64{100})
		})

		Convey("Flush bypasses the interval", func() {
			w.Offer(ctx, 10, 3600)
			clock = clock.Add(time.Second)
			w.Flush(ctx, 12, 3600)

			So(tracker.recorded(), ShouldResemble, []float64{10, 12})
		})

		Convey("Flush never regresses below the highest seen offset", func() {
			w.Offer(ctx, 100, 3600)
			w.Flush(ctx, 90, 3600)

			So(tracker.recorded(), ShouldResemble, []float64{100, 100})
		})

		Convey("Write failures are swallowed", func() {
			tracker.err = errors.New("service down")
			So(func() { w.Offer(ctx, 10, 3600) }, ShouldNotPanic)
			So(func() { w.Flush(ctx, 20, 3600) }, ShouldNotPanic)
		})
	})
}
