// Package timeops formats wall-clock time and sleeps on behalf of the demo.
package timeops

import (
	"context"
	"time"
)

// Layout renders times as "YYYY-MM-DD HH:MM:SS".
const Layout = "2006-01-02 15:04:05"

// Format renders t with Layout in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// CurrentTime returns the local time formatted with Layout.
func CurrentTime() string {
	return Format(time.Now())
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
