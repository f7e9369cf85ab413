package poller

import (
	"context"
	"sync"
	"time"

	"github.com/dexshare/dexshare-go/pkg/dexshare"
	"github.com/rs/zerolog/log"
)

const defaultInterval = 5 * time.Minute

// ReadingFetcher is the slice of the share client the poller needs.
type ReadingFetcher interface {
	Latest(ctx context.Context) (*dexshare.Reading, error)
}

// Handler receives each reading the poller observes.
type Handler func(reading *dexshare.Reading)

// Poller fetches the latest reading on a fixed interval. Transient fetch
// errors are logged and the loop keeps going; the Share sensor reports every
// five minutes regardless of how often we ask.
type Poller struct {
	fetcher  ReadingFetcher
	handler  Handler
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}

	mu      sync.Mutex
	running bool
}

func New(fetcher ReadingFetcher, handler Handler, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Poller{
		fetcher:  fetcher,
		handler:  handler,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		log.Debug().Msg("poller: start ignored because it is already running")
		return
	}
	p.running = true
	p.stopChan = make(chan struct{})
	p.doneChan = make(chan struct{})
	p.mu.Unlock()

	log.Info().
		Dur("interval", p.interval).
		Msg("poller: started")
	go p.loop()
}

func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		log.Debug().Msg("poller: stop ignored because it is not running")
		return
	}
	p.running = false
	stopChan := p.stopChan
	doneChan := p.doneChan
	p.mu.Unlock()

	close(stopChan)
	<-doneChan
	log.Info().Msg("poller: stopped")
}

func (p *Poller) loop() {
	defer close(p.doneChan)

	p.pollOnce()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.pollOnce()
		case <-p.stopChan:
			return
		}
	}
}

func (p *Poller) pollOnce() {
	reading, err := p.fetcher.Latest(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("poller: fetch latest reading failed")
		return
	}
	if reading == nil {
		log.Debug().Msg("poller: no reading available")
		return
	}

	log.Info().
		Int("mg_dl", reading.MgDl()).
		Float64("mmol_l", reading.MmolL()).
		Str("trend", reading.Trend().String()).
		Time("recorded_at", reading.Timestamp()).
		Msg("poller: reading")

	if p.handler != nil {
		p.handler(reading)
	}
}
