package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dexshare/dexshare-go/internal/poller"
	"github.com/spf13/cobra"
)

type watchRunner interface {
	Start()
	Stop()
}

var (
	watchInterval time.Duration

	newWatchPoller = func(fetcher poller.ReadingFetcher, interval time.Duration) watchRunner {
		return poller.New(fetcher, nil, interval)
	}
	signalNotifyContext = signal.NotifyContext
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll for readings on an interval and log them",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Minute, "polling interval")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	client, persist, err := loadShareClient()
	if err != nil {
		return err
	}
	defer persist()

	ctx, stop := signalNotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := newWatchPoller(client, watchInterval)
	p.Start()
	<-ctx.Done()
	p.Stop()

	return nil
}
