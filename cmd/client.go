package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dexshare/dexshare-go/internal/config"
	"github.com/dexshare/dexshare-go/internal/session"
	"github.com/dexshare/dexshare-go/pkg/dexshare"
	"github.com/rs/zerolog/log"
)

type shareClient interface {
	Readings(ctx context.Context, minutes, maxCount int) ([]*dexshare.Reading, error)
	Latest(ctx context.Context) (*dexshare.Reading, error)
	Current(ctx context.Context) (*dexshare.Reading, error)
	VerifySerialNumber(ctx context.Context, serialNumber string) (bool, error)
	SessionID() string
}

var newShareClient = func(cfg *config.Config, sessionID string) (shareClient, error) {
	opts := []dexshare.Option{
		dexshare.WithLogger(config.InitLogger(cfg.LogLevel)),
		dexshare.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}),
	}
	if sessionID != "" {
		opts = append(opts, dexshare.WithSessionID(sessionID))
	}

	return dexshare.New(dexshare.Config{
		Username:  cfg.Username,
		AccountID: cfg.AccountID,
		Password:  cfg.Password,
		Region:    dexshare.Region(cfg.Region),
	}, opts...)
}

// loadShareClient builds a client from the environment, seeded with any
// cached session for the same credentials. The returned persist function
// writes the session ID back to the cache when a call minted a new one.
func loadShareClient() (shareClient, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	manager := session.NewManager(cfg.DataDir)

	cached := ""
	if record, err := manager.Get(cfg.Region, cfg.Username, cfg.AccountID); err == nil && record != nil {
		cached = record.SessionID
	}

	client, err := newShareClient(cfg, cached)
	if err != nil {
		return nil, nil, err
	}

	persist := func() {
		sessionID := client.SessionID()
		if sessionID == "" || sessionID == cached {
			return
		}
		if _, err := manager.Put(cfg.Region, cfg.Username, cfg.AccountID, sessionID); err != nil {
			log.Warn().Err(err).Msg("cache session id failed")
		}
	}

	return client, persist, nil
}
