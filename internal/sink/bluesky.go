package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/model"
	"github.com/galois26/medal-bot/internal/store"
	"github.com/galois26/medal-bot/internal/util"
)

const (
	nsidCreateSession  = "com.atproto.server.createSession"
	nsidRefreshSession = "com.atproto.server.refreshSession"
	nsidResolveHandle  = "com.atproto.identity.resolveHandle"
	nsidCreateRecord   = "com.atproto.repo.createRecord"
)

// ErrNotLoggedIn is returned by Publish when no session could be established.
var ErrNotLoggedIn = errors.New("bluesky: not logged in")

// Bluesky talks XRPC to a PDS. It keeps one session and reuses it across
// runs through cfg.SessionPath.
type Bluesky struct {
	cfg     config.BlueskyConfig
	client  *http.Client
	handles *store.Cache
	log     zerolog.Logger

	mu      sync.Mutex
	session store.Session
}

func NewBluesky(cfg config.BlueskyConfig, log zerolog.Logger) *Bluesky {
	return &Bluesky{
		cfg:     cfg,
		client:  util.NewHTTPClient(cfg.Timeout),
		handles: store.NewCache(1024, cfg.HandleCacheTTL),
		log:     log.With().Str("sink", "bluesky").Logger(),
	}
}

func (b *Bluesky) Name() string { return "bluesky" }

type sessionResponse struct {
	AccessJWT  string `json:"accessJwt"`
	RefreshJWT string `json:"refreshJwt"`
	Handle     string `json:"handle"`
	DID        string `json:"did"`
}

// Login establishes a session: a persisted session for the same account is
// refreshed, otherwise a new one is created with the app password.
func (b *Bluesky) Login(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.SessionPath != "" && b.session.RefreshJWT == "" {
		s, err := store.LoadSession(b.cfg.SessionPath)
		if err != nil {
			b.log.Warn().Err(err).Msg("ignoring unreadable session file")
		} else if s.Matches(b.cfg.Service, b.cfg.Identifier) {
			b.session = s
		}
	}
	if b.session.RefreshJWT != "" {
		err := b.refreshLocked(ctx)
		if err == nil {
			return nil
		}
		b.log.Info().Err(err).Msg("session refresh failed, creating a new session")
	}
	return b.createLocked(ctx)
}

func (b *Bluesky) createLocked(ctx context.Context) error {
	if b.cfg.Identifier == "" || b.cfg.Password == "" {
		return fmt.Errorf("%w: missing identifier or password", ErrNotLoggedIn)
	}
	in := map[string]string{"identifier": b.cfg.Identifier, "password": b.cfg.Password}
	var out sessionResponse
	if err := b.retry(ctx, func() error {
		return b.xrpc(ctx, http.MethodPost, nsidCreateSession, "", nil, in, &out)
	}); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	b.setSessionLocked(out)
	b.log.Info().Str("handle", out.Handle).Str("did", out.DID).Msg("logged in")
	return nil
}

func (b *Bluesky) refreshLocked(ctx context.Context) error {
	var out sessionResponse
	if err := b.retry(ctx, func() error {
		return b.xrpc(ctx, http.MethodPost, nsidRefreshSession, b.session.RefreshJWT, nil, nil, &out)
	}); err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	b.setSessionLocked(out)
	b.log.Debug().Str("handle", out.Handle).Msg("session refreshed")
	return nil
}

func (b *Bluesky) setSessionLocked(r sessionResponse) {
	b.session = store.Session{
		Service:    b.cfg.Service,
		Identifier: b.cfg.Identifier,
		DID:        r.DID,
		Handle:     r.Handle,
		AccessJWT:  r.AccessJWT,
		RefreshJWT: r.RefreshJWT,
		UpdatedAt:  time.Now().UTC(),
	}
	if b.cfg.SessionPath == "" {
		return
	}
	if err := store.SaveSession(b.cfg.SessionPath, b.session); err != nil {
		b.log.Warn().Err(err).Str("path", b.cfg.SessionPath).Msg("could not persist session")
	}
}

// Publish creates an app.bsky.feed.post record. An expired access token is
// refreshed once.
func (b *Bluesky) Publish(ctx context.Context, p model.Post) (Receipt, error) {
	b.mu.Lock()
	loggedIn := b.session.AccessJWT != ""
	b.mu.Unlock()
	if !loggedIn {
		if err := b.Login(ctx); err != nil {
			return Receipt{}, err
		}
	}

	r, err := b.createRecord(ctx, newRecord(p))
	if isExpired(err) {
		b.log.Info().Msg("access token expired, refreshing")
		if err := b.Login(ctx); err != nil {
			return Receipt{}, err
		}
		r, err = b.createRecord(ctx, newRecord(p))
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("create record: %w", err)
	}
	return r, nil
}

func (b *Bluesky) createRecord(ctx context.Context, rec postRecord) (Receipt, error) {
	b.mu.Lock()
	did, token := b.session.DID, b.session.AccessJWT
	b.mu.Unlock()

	in := struct {
		Repo       string     `json:"repo"`
		Collection string     `json:"collection"`
		Record     postRecord `json:"record"`
	}{Repo: did, Collection: postCollection, Record: rec}
	var out struct {
		URI string `json:"uri"`
		CID string `json:"cid"`
	}
	err := b.retry(ctx, func() error {
		return b.xrpc(ctx, http.MethodPost, nsidCreateRecord, token, nil, in, &out)
	})
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{URI: out.URI, CID: out.CID}, nil
}

// ResolveHandle returns the DID for handle, caching results.
func (b *Bluesky) ResolveHandle(ctx context.Context, handle string) (string, error) {
	handle = strings.ToLower(strings.TrimPrefix(handle, "@"))
	if did, ok := b.handles.Get(handle); ok {
		return did, nil
	}
	b.mu.Lock()
	token := b.session.AccessJWT
	b.mu.Unlock()

	var out struct {
		DID string `json:"did"`
	}
	err := b.retry(ctx, func() error {
		return b.xrpc(ctx, http.MethodGet, nsidResolveHandle, token, url.Values{"handle": {handle}}, nil, &out)
	})
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", handle, err)
	}
	if out.DID == "" {
		return "", fmt.Errorf("resolve %s: empty did", handle)
	}
	b.handles.Put(handle, out.DID)
	return out.DID, nil
}

// retry retries network errors, 429 and 5xx. Other HTTP errors are final.
func (b *Bluesky) retry(ctx context.Context, fn func() error) error {
	return util.Retry(ctx, b.cfg.MaxRetries, b.cfg.Backoff, b.cfg.MaxBackoff, func() error {
		err := fn()
		var httpErr *util.HTTPError
		if errors.As(err, &httpErr) && !httpErr.Retryable() {
			return util.Permanent(err)
		}
		if err != nil {
			b.log.Debug().Err(err).Msg("xrpc call failed, retrying")
		}
		return err
	})
}

// xrpc performs one call. in is JSON-encoded when non-nil; out is decoded
// from a 2xx response when non-nil.
func (b *Bluesky) xrpc(ctx context.Context, method, nsid, token string, query url.Values, in, out any) error {
	u := strings.TrimRight(b.cfg.Service, "/") + "/xrpc/" + nsid
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return util.Permanent(err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return util.Permanent(err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if ua := b.cfg.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	if err := util.CheckResponse(resp); err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return util.Permanent(fmt.Errorf("decode %s: %w", nsid, err))
	}
	return nil
}

// isExpired matches the XRPC ExpiredToken error.
func isExpired(err error) bool {
	var httpErr *util.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return (httpErr.StatusCode == http.StatusBadRequest || httpErr.StatusCode == http.StatusUnauthorized) &&
		strings.Contains(httpErr.Body, "ExpiredToken")
}
