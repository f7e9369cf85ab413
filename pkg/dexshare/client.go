package dexshare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultHTTPTimeout = 30 * time.Second

// Config holds the Share credentials. Exactly one of Username or AccountID
// must be set; these identify the publisher account, not a follower.
type Config struct {
	Username  string
	AccountID string
	Password  string
	Region    Region
}

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger attaches a logger for debug output. Default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSessionID seeds the client with a previously issued session ID, e.g.
// one cached from an earlier run. An expired seed costs one failed call and a
// re-authentication, nothing more.
func WithSessionID(sessionID string) Option {
	return func(c *Client) {
		c.sessionID = strings.TrimSpace(sessionID)
	}
}

// WithBaseURL overrides the region-derived base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = strings.TrimSuffix(trimmed, "/")
		}
	}
}

// Client talks to the Dexcom Share API on behalf of one publisher account.
// It creates a session lazily on first use and re-authenticates exactly once
// when the server reports the session expired. Not safe for concurrent use;
// every call is a synchronous round trip.
type Client struct {
	baseURL       string
	applicationID string
	username      string
	accountID     string
	password      string

	sessionID string

	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
}

// New validates the credentials and builds a Client. No network calls are
// made until the first operation.
func New(cfg Config, opts ...Option) (*Client, error) {
	username := strings.TrimSpace(cfg.Username)
	accountID := strings.TrimSpace(cfg.AccountID)

	if username == "" && accountID == "" {
		return nil, newArgumentError(ReasonNoUserID, "")
	}
	if username != "" && accountID != "" {
		return nil, newArgumentError(ReasonTooManyUserIDs, "")
	}
	if cfg.Password == "" {
		return nil, newArgumentError(ReasonPasswordInvalid, "")
	}
	if accountID != "" {
		if err := validateAccountID(accountID); err != nil {
			return nil, err
		}
	}

	region := cfg.Region
	if region == "" {
		region = RegionUS
	}
	baseURL, ok := baseURLs[region]
	if !ok {
		return nil, newArgumentError("unknown region", string(region))
	}

	c := &Client{
		baseURL:       baseURL,
		applicationID: applicationIDs[region],
		username:      username,
		accountID:     accountID,
		password:      cfg.Password,
		httpClient:    &http.Client{Timeout: defaultHTTPTimeout},
		logger:        zerolog.Nop(),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SessionID returns the current session ID, empty before the first
// authenticated call. Useful for caching across process restarts.
func (c *Client) SessionID() string {
	return c.sessionID
}

// CreateSession authenticates against the Share API and stores a fresh
// session ID on the client. When the client was configured with a username,
// the account ID is resolved first via the authenticate endpoint; the login
// endpoint then exchanges account ID and password for a session ID. Failures
// are surfaced as-is, with no retry at this layer.
func (c *Client) CreateSession(ctx context.Context) error {
	if c.accountID == "" {
		c.logger.Debug().Msg("share: resolve account ID from the authenticate endpoint")
		accountID, err := c.fetchID(ctx, authenticateEndpoint, map[string]string{
			"accountName":   c.username,
			"password":      c.password,
			"applicationId": c.applicationID,
		})
		if err != nil {
			return fmt.Errorf("authenticate account: %w", err)
		}
		if err := validateAccountID(accountID); err != nil {
			return err
		}
		c.accountID = accountID
	}

	c.logger.Debug().Msg("share: create session from the login endpoint")
	sessionID, err := c.fetchID(ctx, loginEndpoint, map[string]string{
		"accountId":     c.accountID,
		"password":      c.password,
		"applicationId": c.applicationID,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

// Readings returns up to maxCount readings recorded within the past minutes,
// most recent first. Bounds are checked before any network traffic. A session
// is created lazily, and a session-expired answer triggers exactly one
// re-authentication and one retry.
func (c *Client) Readings(ctx context.Context, minutes, maxCount int) ([]*Reading, error) {
	if minutes < 1 || minutes > MaxMinutes {
		return nil, newArgumentError(ReasonMinutesInvalid, strconv.Itoa(minutes))
	}
	if maxCount < 1 || maxCount > MaxCount {
		return nil, newArgumentError(ReasonMaxCountInvalid, strconv.Itoa(maxCount))
	}

	body, err := c.withSession(ctx, func(sessionID string) ([]byte, error) {
		c.logger.Debug().Int("minutes", minutes).Int("max_count", maxCount).
			Msg("share: fetch glucose readings")
		return c.post(ctx, readingsEndpoint, url.Values{
			"sessionId": {sessionID},
			"minutes":   {strconv.Itoa(minutes)},
			"maxCount":  {strconv.Itoa(maxCount)},
		}, nil)
	})
	if err != nil {
		return nil, err
	}

	var records []RawRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, newArgumentError(ReasonReadingInvalid, err.Error())
	}

	readings := make([]*Reading, 0, len(records))
	for _, record := range records {
		reading, err := ParseReading(record)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

// Latest returns the most recent reading within the past 24 hours, or nil
// when the account has none.
func (c *Client) Latest(ctx context.Context) (*Reading, error) {
	readings, err := c.Readings(ctx, MaxMinutes, 1)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}
	return readings[0], nil
}

// Current returns the reading from the last few minutes, or nil when the
// sensor has not reported recently enough. A reading older than six minutes
// against the local clock does not count as current even if the server
// returned it.
func (c *Client) Current(ctx context.Context) (*Reading, error) {
	readings, err := c.Readings(ctx, currentFetchMinutes, 1)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}

	reading := readings[0]
	if c.now().Sub(reading.Timestamp()) > currentMaxAge {
		c.logger.Debug().Time("recorded_at", reading.Timestamp()).
			Msg("share: newest reading too old to be current")
		return nil, nil
	}
	return reading, nil
}

// VerifySerialNumber reports whether the given receiver serial number is
// assigned to the authenticated account. Session handling matches Readings.
func (c *Client) VerifySerialNumber(ctx context.Context, serialNumber string) (bool, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return false, newArgumentError(ReasonSerialInvalid, "")
	}

	body, err := c.withSession(ctx, func(sessionID string) ([]byte, error) {
		c.logger.Debug().Msg("share: check receiver assignment status")
		return c.post(ctx, verifySerialEndpoint, url.Values{
			"sessionId":    {sessionID},
			"serialNumber": {serialNumber},
		}, nil)
	})
	if err != nil {
		return false, err
	}

	var status string
	if err := json.Unmarshal(body, &status); err != nil {
		return false, fmt.Errorf("verify serial number: parse response: %w", err)
	}

	return status == "AssignedToYou", nil
}

// withSession runs call with a valid session ID, creating one first if
// needed. One SessionError from call triggers one re-authentication and one
// retry; a second failure of any kind is surfaced.
func (c *Client) withSession(ctx context.Context, call func(sessionID string) ([]byte, error)) ([]byte, error) {
	if validateSessionID(c.sessionID) != nil {
		if err := c.CreateSession(ctx); err != nil {
			return nil, err
		}
	}

	body, err := call(c.sessionID)

	var sessionErr *SessionError
	if errors.As(err, &sessionErr) {
		c.logger.Debug().Str("reason", sessionErr.Reason).
			Msg("share: session rejected, re-authenticating once")
		if err := c.CreateSession(ctx); err != nil {
			return nil, err
		}
		return call(c.sessionID)
	}

	return body, err
}

// fetchID posts credentials to one of the two auth endpoints, both of which
// answer with a bare JSON-encoded UUID string.
func (c *Client) fetchID(ctx context.Context, endpoint string, payload map[string]string) (string, error) {
	body, err := c.post(ctx, endpoint, nil, payload)
	if err != nil {
		return "", err
	}

	var id string
	if err := json.Unmarshal(body, &id); err != nil {
		return "", fmt.Errorf("parse id response: %w", err)
	}
	return id, nil
}

// post sends one JSON request to the Share API and returns the raw response
// body. Non-2xx answers are mapped through the vendor error taxonomy.
func (c *Client) post(ctx context.Context, endpoint string, query url.Values, payload any) ([]byte, error) {
	if payload == nil {
		payload = struct{}{}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	reqURL := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The vendor expects this exact header, malformed as it is.
	req.Header.Set("Accept-Encoding", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var vendor struct {
			Code    string `json:"Code"`
			Message string `json:"Message"`
		}
		if jsonErr := json.Unmarshal(body, &vendor); jsonErr == nil {
			if mapped := mapVendorError(vendor.Code, vendor.Message); mapped != nil {
				return nil, mapped
			}
		}
		return nil, fmt.Errorf("share api: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func validateAccountID(accountID string) error {
	if !validUUID(accountID) {
		return newArgumentError(ReasonAccountIDInvalid, "")
	}
	if accountID == defaultUUID {
		return newArgumentError(ReasonAccountIDDefault, "")
	}
	return nil
}

func validateSessionID(sessionID string) error {
	if !validUUID(sessionID) {
		return newArgumentError(ReasonSessionIDInvalid, "")
	}
	if sessionID == defaultUUID {
		return newArgumentError(ReasonSessionIDDefault, "")
	}
	return nil
}
