package api

import (
	"context"
	"log/slog"
	"sync"

	apperrors "vss-session/internal/errors"
	"vss-session/internal/models"
	"vss-session/internal/repositories"

	"golang.org/x/sync/singleflight"
)

// Refresher exchanges a refresh token for a new pair and persists it
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// Requester sends authenticated calls
type Requester interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Pipeline wraps every authenticated call: it attaches the stored access token
// and, on a 401, refreshes once and re-sends the call once.
type Pipeline struct {
	sender    Sender
	store     repositories.TokenStoreInterface
	refresher Refresher
	group     *singleflight.Group
	log       *slog.Logger

	mu        sync.RWMutex
	onExpired func()
}

var _ Requester = (*Pipeline)(nil)

type PipelineOption func(*Pipeline)

// WithSingleFlight controls whether concurrent 401s share one refresh call.
func WithSingleFlight(enabled bool) PipelineOption {
	return func(p *Pipeline) {
		if enabled {
			p.group = &singleflight.Group{}
		} else {
			p.group = nil
		}
	}
}

// NewPipeline creates a pipeline with single-flight refresh enabled.
func NewPipeline(sender Sender, store repositories.TokenStoreInterface, refresher Refresher, log *slog.Logger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		sender:    sender,
		store:     store,
		refresher: refresher,
		group:     &singleflight.Group{},
		log:       log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnSessionExpired registers fn to run after a failed refresh has cleared the store.
func (p *Pipeline) OnSessionExpired(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onExpired = fn
}

// Do sends req with the stored access token.
func (p *Pipeline) Do(ctx context.Context, req *Request) (*Response, error) {
	return p.send(ctx, req, p.store.GetAccessToken(), 0)
}

// send issues req with token. retries is the number of re-sends already spent
// on this call; only the first response may trigger a refresh.
func (p *Pipeline) send(ctx context.Context, req *Request, token string, retries int) (*Response, error) {
	resp, err := p.sender.Send(ctx, req, token)
	if err == nil || !IsUnauthorized(err) || retries > 0 {
		return resp, err
	}

	refreshToken := p.store.GetRefreshToken()
	if refreshToken == "" {
		return nil, err
	}

	pair, refreshErr := p.refresh(ctx, token, refreshToken)
	if refreshErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// this call gave up; the stored session stays for the next one
			return nil, apperrors.NewNetworkError(apperrors.NetworkTimeout, ctxErr)
		}
		p.expire(refreshErr)
		if apperrors.IsSessionExpired(refreshErr) {
			return nil, refreshErr
		}
		return nil, apperrors.NewSessionExpiredError(refreshErr)
	}

	p.log.Debug("Retrying request after token refresh", "method", req.Method, "path", req.Path)
	return p.send(ctx, req, pair.AccessToken, retries+1)
}

func (p *Pipeline) refresh(ctx context.Context, staleToken, refreshToken string) (*models.TokenPair, error) {
	if p.group == nil {
		return p.refresher.Refresh(ctx, refreshToken)
	}

	// the flight outlives the caller that started it; the client timeout bounds it
	flightCtx := context.WithoutCancel(ctx)
	results := p.group.DoChan(refreshToken, func() (any, error) {
		// a flight that finished before this one started may already have rotated the pair
		if current := p.store.GetTokens(); current.AccessToken != "" && current.AccessToken != staleToken {
			return &current, nil
		}
		return p.refresher.Refresh(flightCtx, refreshToken)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}
		if result.Shared {
			p.log.Debug("Joined in-flight token refresh")
		}
		return result.Val.(*models.TokenPair), nil
	}
}

func (p *Pipeline) expire(cause error) {
	if err := p.store.ClearAll(); err != nil {
		p.log.Error("Failed to clear session after refresh failure", "error", err)
	}
	p.log.Warn("Session expired", "error", cause)

	p.mu.RLock()
	fn := p.onExpired
	p.mu.RUnlock()

	if fn != nil {
		fn()
	}
}
