// Package track pushes engagement and resume-offset updates to the service.
package track

import (
	"context"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/streamdex-cli/streamdex/client"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/log"
)

// Payload describes the engagement to open.
type Payload struct {
	ItemID      string
	Kind        string
	Season      int
	Episode     int
	CandidateID string
	SourceID    string
	ProviderID  string
}

// Engagement is an open tracked playback session. Duration is the total
// runtime the service knows for the stream, zero when unknown.
type Engagement struct {
	ID           string
	ResumeOffset float64
	Duration     float64
}

// Tracker is the service surface the progress writer talks to.
type Tracker interface {
	Open(ctx context.Context, p Payload) (Engagement, error)
	Progress(ctx context.Context, engagementID string, offset, duration float64) error
}

// ServiceTracker implements Tracker against the aggregation service API.
type ServiceTracker struct {
	API *client.Client
}

func (t *ServiceTracker) Open(ctx context.Context, p Payload) (Engagement, error) {
	resp, err := t.API.OpenEngagement(ctx, client.EngagementPayload{
		ItemID:      p.ItemID,
		Kind:        p.Kind,
		Season:      p.Season,
		Episode:     p.Episode,
		CandidateID: p.CandidateID,
		SourceID:    p.SourceID,
		ProviderID:  p.ProviderID,
	})
	if err != nil {
		return Engagement{}, err
	}
	return Engagement{ID: resp.EngagementID, ResumeOffset: resp.ResumeOffset, Duration: resp.Duration}, nil
}

func (t *ServiceTracker) Progress(ctx context.Context, engagementID string, offset, duration float64) error {
	return t.API.UpdateProgress(ctx, engagementID, offset, duration)
}

// Interval returns the configured minimum gap between progress writes.
func Interval() time.Duration {
	if seconds := viper.GetInt(key.ProgressWriteInterval); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 15 * time.Second
}

// ProgressWriter rate-limits resume-offset writes for one engagement.
//
// Offers inside the write interval are dropped, offsets that move backwards
// are ignored, and a failed write is logged but never surfaced, playback
// must not stall on a flaky tracking endpoint. Flush bypasses the interval
// so the final position of a session is never lost.
type ProgressWriter struct {
	mu           sync.Mutex
	tracker      Tracker
	engagementID string
	interval     time.Duration

	lastWrite  time.Time
	lastOffset float64

	now func() time.Time
}

// NewProgressWriter builds a writer for an open engagement.
func NewProgressWriter(tracker Tracker, engagementID string, interval time.Duration) *ProgressWriter {
	return &ProgressWriter{
		tracker:      tracker,
		engagementID: engagementID,
		interval:     interval,
		now:          time.Now,
	}
}

// Offer reports a playback position. It writes at most once per interval.
func (w *ProgressWriter) Offer(ctx context.Context, offset, duration float64) {
	w.mu.Lock()

	if offset < w.lastOffset {
		w.mu.Unlock()
		return
	}
	w.lastOffset = offset

	if !w.lastWrite.IsZero() && w.now().Sub(w.lastWrite) < w.interval {
		w.mu.Unlock()
		return
	}
	w.lastWrite = w.now()
	w.mu.Unlock()

	w.write(ctx, offset, duration)
}

// Flush writes the final position unconditionally.
func (w *ProgressWriter) Flush(ctx context.Context, offset, duration float64) {
	w.mu.Lock()
	if offset > w.lastOffset {
		w.lastOffset = offset
	} else {
		offset = w.lastOffset
	}
	w.lastWrite = w.now()
	w.mu.Unlock()

	w.write(ctx, offset, duration)
}

func (w *ProgressWriter) write(ctx context.Context, offset, duration float64) {
	if err := w.tracker.Progress(ctx, w.engagementID, offset, duration); err != nil {
		log.Warnf("track: progress write failed for %s: %s", w.engagementID, err)
	}
}
