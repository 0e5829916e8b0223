package nsapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ryhazerus/nsapi/store"
)

// Option configures a Gate.
type Option func(*Gate)

// WithHTTPClient sets the client used for physical transmissions. Its
// timeout, if any, is the only timeout the gate applies.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gate) {
		g.client = c
	}
}

// WithTransport sends through rt using an otherwise default client.
func WithTransport(rt http.RoundTripper) Option {
	return func(g *Gate) {
		g.client = &http.Client{Transport: rt}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l.Named("nsapi.gate")
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// WithPacing spaces transmissions locally at r with the given burst, on top
// of the server-declared limits. Callers wait for the pacer before queueing
// for the transmission lock. Pacing is off by default.
func WithPacing(r rate.Limit, burst int) Option {
	return func(g *Gate) {
		if burst < 1 {
			burst = 1
		}
		g.pacer = rate.NewLimiter(r, burst)
	}
}

// WithUsageStore sets the usage ledger backend. An in-memory store is used
// by default.
func WithUsageStore(s store.Store) Option {
	return func(g *Gate) {
		g.usage = s
	}
}

// WithUsageWindow sets the ledger bucket size. The default is PerMinute.
func WithUsageWindow(w Window) Option {
	return func(g *Gate) {
		g.window = w
	}
}

// WithOnCooldown registers a callback fired after a response starts a
// non-zero cool-down. It runs on the sending goroutine with no locks held.
func WithOnCooldown(fn func(until time.Time, s Snapshot)) Option {
	return func(g *Gate) {
		g.onCooldown = fn
	}
}
