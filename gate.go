package nsapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/ryhazerus/nsapi/store"
)

// Gate is the single path by which requests reach the API. It serializes
// physical transmissions, reads the rate limit headers of every response and
// refuses to send while a server-declared cool-down is in effect.
//
// Create one Gate per process and hand it to everything that talks to the
// API; two gates would not see each other's cool-downs.
type Gate struct {
	userAgent  string
	client     *http.Client
	logger     *zap.Logger
	now        func() time.Time
	pacer      *rate.Limiter
	usage      store.Store
	window     Window
	onCooldown func(until time.Time, s Snapshot)

	// sendLock admits one physical transmission at a time. It is never held
	// while mu is held.
	sendLock *semaphore.Weighted
	// sent numbers transmissions in send order; guarded by sendLock.
	sent uint64

	mu            sync.RWMutex
	snapshot      *Snapshot
	lastSentAt    time.Time
	sendNotBefore time.Time
	// applied is the sequence number of the transmission behind snapshot.
	applied uint64
}

// NewGate creates a Gate that identifies itself with userAgent on every
// request, as the API's usage policy requires.
func NewGate(userAgent string, opts ...Option) (*Gate, error) {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, ErrNoUserAgent
	}

	g := &Gate{
		userAgent: userAgent,
		sendLock:  semaphore.NewWeighted(1),
	}
	for _, o := range opts {
		o(g)
	}
	if g.client == nil {
		g.client = &http.Client{Transport: http.DefaultTransport}
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.usage == nil {
		g.usage = store.NewMemoryStore()
	}
	return g, nil
}

// Send performs a GET of rawURL through the gate.
//
// It fails fast with a *RateLimitedError while a cool-down is in effect,
// without touching the network. Otherwise it waits for the transmission lock
// (or for ctx to end), sends the request and records the response's rate
// limit headers. Transport failures are returned as *TransportError.
//
// A response with missing or malformed rate limit headers is returned
// together with a *HeaderError; the caller must still close its body.
// The gate never retries.
func (g *Gate) Send(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("nsapi: build request: %w", err)
	}
	return g.do(req)
}

func (g *Gate) do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	target := req.URL.String()

	if until, ok := g.SendNotBefore(); ok && g.now().Before(until) {
		g.logger.Debug("send refused during cool-down",
			zap.String("url", target),
			zap.Time("until", until),
		)
		return nil, &RateLimitedError{Until: until, now: g.now}
	}

	if g.pacer != nil {
		if err := g.pacer.Wait(ctx); err != nil {
			return nil, &TransportError{URL: target, Err: err}
		}
	}

	req.Header.Set("User-Agent", g.userAgent)
	id := uuid.NewString()

	resp, seq, err := g.transmit(req, id)
	if err != nil {
		g.logger.Debug("transmission failed",
			zap.String("request_id", id),
			zap.String("url", target),
			zap.Error(err),
		)
		return nil, &TransportError{URL: target, Err: err}
	}

	snap, err := ParseSnapshot(resp.Header)
	if err != nil {
		g.logger.Warn("response broke the rate limit header contract",
			zap.String("request_id", id),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		g.countUsage(ctx, target)
		return resp, &HeaderError{StatusCode: resp.StatusCode, Err: err}
	}

	g.record(snap, id, seq)
	g.countUsage(ctx, target)
	return resp, nil
}

// transmit holds the transmission lock for exactly the duration of the
// round trip. The deferred release also covers panics in the transport.
// The returned sequence number orders transmissions as they were sent.
func (g *Gate) transmit(req *http.Request, id string) (*http.Response, uint64, error) {
	if err := g.sendLock.Acquire(req.Context(), 1); err != nil {
		return nil, 0, err
	}
	defer g.sendLock.Release(1)

	g.sent++
	seq := g.sent

	g.logger.Debug("sending request",
		zap.String("request_id", id),
		zap.Uint64("seq", seq),
		zap.String("url", req.URL.String()),
	)
	resp, err := g.client.Do(req)
	return resp, seq, err
}

// record replaces the gate state with what s implies. The deadline is always
// recomputed from the newest snapshot, never adjusted. A snapshot from a
// transmission older than the one already applied is dropped: once the lock
// is released, responses may reach record out of send order.
func (g *Gate) record(s Snapshot, id string, seq uint64) {
	g.mu.Lock()
	if seq <= g.applied {
		applied := g.applied
		g.mu.Unlock()
		g.logger.Debug("stale snapshot dropped",
			zap.String("request_id", id),
			zap.Uint64("seq", seq),
			zap.Uint64("applied", applied),
		)
		return
	}
	g.applied = seq
	now := g.now()
	g.snapshot = &s
	g.lastSentAt = now
	wait, cooling := s.Wait()
	if cooling {
		g.sendNotBefore = now.Add(wait)
	} else {
		g.sendNotBefore = time.Time{}
	}
	until := g.sendNotBefore
	g.mu.Unlock()

	if !cooling || wait <= 0 {
		return
	}

	g.logger.Warn("rate limit cool-down started",
		zap.String("request_id", id),
		zap.Uint8("remaining", s.Remaining),
		zap.Uint8("reset", s.Reset),
		zap.Duration("wait", wait),
		zap.Time("until", until),
	)
	if g.onCooldown != nil {
		g.onCooldown(until, s)
	}
}

func (g *Gate) countUsage(ctx context.Context, target string) {
	kind := kindOf(target)
	if _, err := g.usage.Increment(ctx, kind.String(), g.window.Bucket(g.now())); err != nil {
		g.logger.Warn("usage ledger write failed",
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
	}
}

// LastSentAt returns when the last successfully recorded transmission
// completed, or false before the first one.
func (g *Gate) LastSentAt() (time.Time, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lastSentAt, !g.lastSentAt.IsZero()
}

// SendNotBefore returns the current cool-down deadline, or false if none
// has been set. The deadline may already be in the past.
func (g *Gate) SendNotBefore() (time.Time, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sendNotBefore, !g.sendNotBefore.IsZero()
}

// LastSnapshot returns the most recently recorded snapshot.
func (g *Gate) LastSnapshot() (Snapshot, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.snapshot == nil {
		return Snapshot{}, false
	}
	return *g.snapshot, true
}

// EstimatedWaitFraction returns remaining/reset from the latest snapshot.
// It is a rough duty-cycle hint for callers and plays no part in gating.
// It reports false before any snapshot, and also when the snapshot's reset
// window is zero, since the ratio would divide by zero.
func (g *Gate) EstimatedWaitFraction() (float64, bool) {
	s, ok := g.LastSnapshot()
	if !ok || s.Reset == 0 {
		return 0, false
	}
	return float64(s.Remaining) / float64(s.Reset), true
}

// State reports Cooling while the deadline lies ahead of the clock.
func (g *Gate) State() State {
	if until, ok := g.SendNotBefore(); ok && g.now().Before(until) {
		return Cooling
	}
	return Idle
}

// KindUsage is the ledger count for one resource kind.
type KindUsage struct {
	Kind        Kind
	Window      Window
	BucketStart time.Time
	Sent        int64
}

// Usage returns the transmission count of every kind in the current bucket.
func (g *Gate) Usage(ctx context.Context) ([]KindUsage, error) {
	b := g.window.Bucket(g.now())
	out := make([]KindUsage, 0, len(Kinds))
	for _, k := range Kinds {
		n, err := g.usage.Get(ctx, k.String(), b)
		if err != nil {
			return nil, fmt.Errorf("nsapi: usage %s: %w", k, err)
		}
		out = append(out, KindUsage{Kind: k, Window: g.window, BucketStart: b.Start, Sent: n})
	}
	return out, nil
}

// ResetUsage clears the ledger counter for one kind.
func (g *Gate) ResetUsage(ctx context.Context, k Kind) error {
	return g.usage.Reset(ctx, k.String())
}

// Close releases the usage store.
func (g *Gate) Close() error {
	return g.usage.Close()
}
