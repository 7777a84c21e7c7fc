package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fanyer/presto-sub061/internal/adapter"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/models"
)

// authenticator keeps the bearer token of the adapter fresh. Concurrent
// callers share one token request.
type authenticator struct {
	adapter adapter.ServerAdapter
	creds   models.Credentials

	group singleflight.Group

	mu    sync.Mutex
	token models.Token

	now func() time.Time
}

func newAuthenticator(serverAdapter adapter.ServerAdapter, creds models.Credentials) *authenticator {
	return &authenticator{
		adapter: serverAdapter,
		creds:   creds,
		now:     time.Now,
	}
}

// Token returns a token that has not expired yet, requesting a new one
// when needed.
func (a *authenticator) Token(ctx context.Context) (models.Token, error) {
	a.mu.Lock()
	token := a.token
	a.mu.Unlock()
	if token.Valid(a.now()) {
		return token, nil
	}

	v, err, shared := a.group.Do("token", func() (any, error) {
		token, err := a.adapter.RequestToken(ctx, a.creds)
		if err != nil {
			return models.Token{}, err
		}
		a.mu.Lock()
		a.token = token
		a.mu.Unlock()
		a.adapter.SetToken(token.SignedString)
		return token, nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Bool("shared", shared).Msg("token request failed")
		return models.Token{}, err
	}
	return v.(models.Token), nil
}

// Invalidate drops the current token.
func (a *authenticator) Invalidate() {
	a.mu.Lock()
	a.token = models.Token{}
	a.mu.Unlock()
	a.adapter.SetToken("")
}
