package cmd

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dexshare/dexshare-go/internal/poller"
)

type fakeWatchRunner struct {
	started bool
	stopped bool
}

func (f *fakeWatchRunner) Start() { f.started = true }
func (f *fakeWatchRunner) Stop()  { f.stopped = true }

func TestRunWatchStartStop(t *testing.T) {
	withStubClient(t, &stubShareClient{})

	origNewWatchPoller := newWatchPoller
	origSignalNotifyContext := signalNotifyContext
	origInterval := watchInterval
	t.Cleanup(func() {
		newWatchPoller = origNewWatchPoller
		signalNotifyContext = origSignalNotifyContext
		watchInterval = origInterval
	})

	runner := &fakeWatchRunner{}
	var capturedInterval time.Duration
	newWatchPoller = func(_ poller.ReadingFetcher, interval time.Duration) watchRunner {
		capturedInterval = interval
		return runner
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	signalNotifyContext = func(context.Context, ...os.Signal) (context.Context, context.CancelFunc) {
		return ctx, func() {}
	}

	watchInterval = time.Minute
	if err := runWatch(watchCmd, nil); err != nil {
		t.Fatalf("runWatch error: %v", err)
	}

	if !runner.started || !runner.stopped {
		t.Fatalf("runner started=%v stopped=%v, want both true", runner.started, runner.stopped)
	}
	if capturedInterval != time.Minute {
		t.Fatalf("interval = %v, want %v", capturedInterval, time.Minute)
	}
}
