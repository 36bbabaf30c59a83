// Package api implements the outbound HTTP layer: the authenticated request
// dispatcher and the typed endpoint wrappers built on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
	"github.com/parkwise/parking-client/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// DispatcherConfig carries the dependencies for a Dispatcher.
type DispatcherConfig struct {
	// BaseURL is the API root, e.g. http://localhost:5000/api.
	BaseURL     string
	Credentials ports.CredentialStore
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Timeout bounds every network call; defaults to 15s.
	Timeout time.Duration
	Logger  zerolog.Logger
	// OnSessionEnd runs after the credential store has been cleared due to a
	// terminal auth failure. Optional.
	OnSessionEnd func()
}

// Dispatcher issues calls against the parking API with transparent credential
// handling: it attaches the stored access token as a bearer header, intercepts
// the first 401 of each logical call, refreshes the token (coalescing
// concurrent refreshes into a single flight), and replays the call exactly
// once with the new token. A missing or rejected refresh token clears the
// store and surfaces ErrSessionExpired.
//
// The refresh call itself never routes back through the 401 interception, so
// a rejected refresh token fails plainly instead of recursing.
type Dispatcher struct {
	baseURL      string
	creds        ports.CredentialStore
	httpClient   *http.Client
	timeout      time.Duration
	log          zerolog.Logger
	onSessionEnd func()

	refresh singleflight.Group
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		creds:        cfg.Credentials,
		httpClient:   client,
		timeout:      timeout,
		log:          cfg.Logger,
		onSessionEnd: cfg.OnSessionEnd,
	}
}

// response is the terminal outcome of one logical call.
type response struct {
	status int
	body   []byte
	header http.Header
}

// Send issues a JSON call and returns the raw response body on 2xx.
func (d *Dispatcher) Send(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	resp, err := d.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// SendJSON issues a call and decodes the 2xx response body into out. A nil
// out discards the body.
func (d *Dispatcher) SendJSON(ctx context.Context, method, path string, body, out any) error {
	raw, err := d.Send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Download issues a GET expecting a binary payload and returns the bytes plus
// the filename suggested by the Content-Disposition header, if any.
func (d *Dispatcher) Download(ctx context.Context, path string) ([]byte, string, error) {
	resp, err := d.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}

	filename := ""
	if cd := resp.header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}
	return resp.body, filename, nil
}

// do runs the full algorithm for one logical call: attach, send, intercept
// 401 once, refresh, retry once.
func (d *Dispatcher) do(ctx context.Context, method, path string, body any) (*response, error) {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
	}

	retried := false
	for {
		cred, err := d.creds.Get()
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}

		resp, err := d.roundTrip(ctx, method, path, payload, cred.AccessToken)
		if err != nil {
			return nil, err
		}

		// A 401 on a bearer-authenticated call is the sole trigger for the
		// refresh protocol, and only once per logical call.
		if resp.status == http.StatusUnauthorized && cred.AccessToken != "" && !retried {
			if err := d.refreshAccessToken(ctx); err != nil {
				return nil, err
			}
			retried = true
			metrics.RetriesTotal.Inc()
			d.log.Debug().Str("method", method).Str("path", path).Msg("retrying after token refresh")
			continue
		}

		if resp.status < 200 || resp.status >= 300 {
			return nil, &domain.RequestError{Status: resp.status, Message: errorMessage(resp.body)}
		}
		return resp, nil
	}
}

// refreshAccessToken obtains a new access token using the stored refresh
// token. Concurrent callers share a single in-flight refresh; every waiter
// observes the same outcome. Any failure is terminal: the store is cleared
// and ErrSessionExpired returned.
func (d *Dispatcher) refreshAccessToken(ctx context.Context) error {
	_, err, shared := d.refresh.Do("refresh", func() (any, error) {
		cred, err := d.creds.Get()
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		if cred.RefreshToken == "" {
			metrics.TokenRefreshTotal.WithLabelValues("missing").Inc()
			d.endSession()
			return nil, domain.ErrSessionExpired
		}

		// The shared flight must not die with the first waiter's context.
		resp, err := d.roundTrip(context.WithoutCancel(ctx), http.MethodPost, "/auth/refresh", nil, cred.RefreshToken)
		if err != nil || resp.status < 200 || resp.status >= 300 {
			status := 0
			if resp != nil {
				status = resp.status
			}
			d.log.Warn().Err(err).Int("status", status).Msg("token refresh rejected")
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			d.endSession()
			return nil, domain.ErrSessionExpired
		}

		var out struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(resp.body, &out); err != nil || out.AccessToken == "" {
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			d.endSession()
			return nil, domain.ErrSessionExpired
		}

		if err := d.creds.Set(domain.Credential{AccessToken: out.AccessToken}); err != nil {
			return nil, fmt.Errorf("store refreshed token: %w", err)
		}
		metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
		d.log.Debug().Msg("access token refreshed")
		return nil, nil
	})
	if shared {
		d.log.Debug().Msg("joined in-flight token refresh")
	}
	return err
}

// endSession clears all credential fields and fires the session-end hook.
func (d *Dispatcher) endSession() {
	if err := d.creds.Clear(); err != nil {
		d.log.Error().Err(err).Msg("failed to clear credentials")
	}
	metrics.SessionEndsTotal.Inc()
	if d.onSessionEnd != nil {
		d.onSessionEnd()
	}
}

// roundTrip performs one raw HTTP exchange with the bounded timeout, bearer
// attachment, and metrics. It never interprets the status code.
func (d *Dispatcher) roundTrip(ctx context.Context, method, path string, payload []byte, token string) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var reader io.Reader
	if len(payload) > 0 {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if len(payload) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "0").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &domain.RequestError{Status: 0, Message: fmt.Sprintf("%s %s exceeded %s", method, path, d.timeout)}
		}
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "0").Inc()
		return nil, &domain.NetworkError{Err: err}
	}
	metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	return &response{status: resp.StatusCode, body: body, header: resp.Header}, nil
}

// errorMessage lifts the error field out of a JSON error envelope, falling
// back to a generic message.
func errorMessage(body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return "request failed"
}
