package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/fanyer/presto-sub061/internal/config"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/internal/utils"
	"github.com/fanyer/presto-sub061/models"
)

const (
	syncContentType = "text/xml; charset=utf-8"
	// hashHeader carries the HMAC-SHA256 of the uncompressed request body.
	hashHeader = "HashSHA256"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	syncURL string
	authURL string

	loadingTimeout time.Duration
	authTimeout    time.Duration
	compress       bool
	signer         *utils.Signer

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of
// [ServerAdapter]. The loading and auth timeouts bound each request through
// its context, so an expired deadline surfaces as
// context.DeadlineExceeded wrapped in [ErrTransport].
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	syncURL, err := normalizeURL(adapterCfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid sync server address: %w", err)
	}
	authURL, err := normalizeURL(adapterCfg.AuthAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid auth server address: %w", err)
	}

	return &httpServerAdapter{
		client:         utils.NewHTTPClient("", 0),
		syncURL:        syncURL,
		authURL:        authURL,
		loadingTimeout: adapterCfg.LoadingTimeout,
		authTimeout:    adapterCfg.AuthTimeout,
		compress:       adapterCfg.Compress,
		signer:         utils.NewSigner(appCfg.HashKey),
		logger:         logger,
	}, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return u.String(), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// RequestToken posts the credentials as JSON to the auth endpoint. The
// token is taken from the Authorization response header when present,
// otherwise from the "token" or "access_token" field of the body.
func (h *httpServerAdapter) RequestToken(ctx context.Context, creds models.Credentials) (models.Token, error) {
	ctx, cancel := withTimeout(ctx, h.authTimeout)
	defer cancel()

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(h.authURL)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: token request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return models.Token{}, err
	}

	if header := resp.Header().Get("Authorization"); header != "" {
		signed, err := utils.ParseBearerToken(header)
		if err != nil {
			return models.Token{}, fmt.Errorf("token request: %w", err)
		}
		return utils.NewToken(signed), nil
	}

	var body tokenResponse
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
	}
	signed := body.Token
	if signed == "" {
		signed = body.AccessToken
	}
	if signed == "" {
		return models.Token{}, ErrEmptyToken
	}
	return utils.NewToken(signed), nil
}

// Exchange posts an encoded sync document. With compression enabled the
// body is gzipped; gzip responses are always accepted and decoded.
func (h *httpServerAdapter) Exchange(ctx context.Context, body []byte) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, h.loadingTimeout)
	defer cancel()

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", syncContentType).
		SetHeader("Accept-Encoding", "gzip").
		SetDoNotParseResponse(true)

	payload := body
	if h.compress {
		compressed, err := gzipBytes(body)
		if err != nil {
			return nil, fmt.Errorf("compress request: %w", err)
		}
		payload = compressed
		req.SetHeader("Content-Encoding", "gzip")
	}
	if sig := h.signer.Sign(body); sig != "" {
		req.SetHeader(hashHeader, sig)
	}

	start := time.Now()
	resp, err := req.SetBody(payload).Post(h.syncURL)
	if err != nil {
		return nil, fmt.Errorf("%w: sync request: %w", ErrTransport, err)
	}
	raw := resp.RawBody()
	defer raw.Close()

	data, err := readBody(raw, resp.Header().Get("Content-Encoding"))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	h.logger.Debug().
		Int("status", resp.StatusCode()).
		Int("sent", len(payload)).
		Int("received", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("sync exchange finished")

	if err = mapHTTPError(resp.StatusCode(), data); err != nil {
		return nil, err
	}
	return data, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
