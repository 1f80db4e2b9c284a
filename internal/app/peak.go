package app

import (
	"github.com/agbru/hprogress/internal/logging"
	"github.com/agbru/hprogress/internal/progress"
)

// peakBuffer bounds the snapshots queued for the peak tracker.
const peakBuffer = 256

// peakTracker records the highest root progress observed while a scenario
// runs. Snapshots reach it through a channel so reporters never wait on it.
type peakTracker struct {
	ch   *progress.ChannelObserver
	sub  *progress.Subscription
	stop chan struct{}
	done chan struct{}
	peak float64
}

func trackPeak(root *progress.Node) (*peakTracker, error) {
	t := &peakTracker{
		ch:   progress.NewChannelObserver(peakBuffer),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	sub, err := root.Subscribe(t.ch)
	if err != nil {
		return nil, err
	}
	t.sub = sub
	go t.drain()
	return t, nil
}

func (t *peakTracker) drain() {
	defer close(t.done)
	for {
		select {
		case s := <-t.ch.C():
			t.observe(s)
		case <-t.stop:
			for {
				select {
				case s := <-t.ch.C():
					t.observe(s)
				default:
					return
				}
			}
		}
	}
}

func (t *peakTracker) observe(s progress.Snapshot) {
	if s.Progress > t.peak {
		t.peak = s.Progress
	}
}

// finish detaches the tracker from root and returns the peak. It must be
// called once no reporter is active, before root is disposed.
func (t *peakTracker) finish(root *progress.Node, logger logging.Logger) float64 {
	if err := root.Unsubscribe(t.sub); err != nil {
		logger.Debug("peak tracker already detached", logging.Err(err))
	}
	close(t.stop)
	<-t.done
	if n := t.ch.Dropped(); n > 0 {
		logger.Debug("peak tracker dropped snapshots", logging.Uint64("dropped", n))
	}
	return t.peak
}
