package nsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// apiServer fakes the public API. Every reply carries a healthy rate limit
// window; handle may overwrite those headers before writing.
func apiServer(t *testing.T, handle func(w http.ResponseWriter, q url.Values)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("RateLimit-Remaining", "49")
		w.Header().Set("RateLimit-Reset", "30")
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		handle(w, r.URL.Query())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	g, err := NewGate("nsapi-test/1.0", append([]Option{WithHTTPClient(srv.Client())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })

	c, err := NewClient(g, WithBaseURL(srv.URL+"/cgi-bin/api.cgi"))
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresGate(t *testing.T) {
	_, err := NewClient(nil)
	require.Error(t, err)
}

func TestClientNation(t *testing.T) {
	var got url.Values
	srv := apiServer(t, func(w http.ResponseWriter, q url.Values) {
		got = q
		w.Write([]byte(`<NATION id="testlandia"><NAME>Testlandia</NAME><POPULATION>100</POPULATION></NATION>`))
	})
	c := newTestClient(t, srv)

	n, err := c.Nation(context.Background(), "Testlandia", NationName, NationPopulation)
	require.NoError(t, err)
	require.Equal(t, "Testlandia", n.Name)
	require.Equal(t, int64(100), n.Population)

	require.Equal(t, "testlandia", got.Get("nation"))
	require.Equal(t, "name population", got.Get("q"))
	require.Equal(t, "12", got.Get("v"))
}

func TestClientRegionWorldWA(t *testing.T) {
	srv := apiServer(t, func(w http.ResponseWriter, q url.Values) {
		switch {
		case q.Has("region"):
			w.Write([]byte(`<REGION id="the_pacific"><NUMNATIONS>2</NUMNATIONS><NATIONS>a:b</NATIONS></REGION>`))
		case q.Has("wa"):
			w.Write([]byte(`<WA council="` + q.Get("wa") + `"><NUMNATIONS>5</NUMNATIONS></WA>`))
		default:
			w.Write([]byte(`<WORLD><NUMNATIONS>250000</NUMNATIONS></WORLD>`))
		}
	})
	c := newTestClient(t, srv, WithClock(newFakeClock().Now))
	ctx := context.Background()

	r, err := c.Region(ctx, "The Pacific", RegionNumNations, RegionNations)
	require.NoError(t, err)
	require.Equal(t, ColonList{"a", "b"}, r.Nations)

	wd, err := c.World(ctx, WorldNumNations)
	require.NoError(t, err)
	require.Equal(t, 250000, wd.NumNations)

	wa, err := c.WA(ctx, SecurityCouncil, WANumNations)
	require.NoError(t, err)
	require.Equal(t, 2, wa.Council)

	usage, err := c.Gate().Usage(ctx)
	require.NoError(t, err)
	sent := map[Kind]int64{}
	for _, u := range usage {
		sent[u.Kind] = u.Sent
	}
	require.Equal(t, map[Kind]int64{KindNation: 0, KindRegion: 1, KindWorld: 1, KindWA: 1}, sent)
}

func TestClientNotFound(t *testing.T) {
	srv := apiServer(t, func(w http.ResponseWriter, q url.Values) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<h1 style="color:red">Unknown nation</h1>`))
	})
	c := newTestClient(t, srv)

	_, err := c.Nation(context.Background(), "nowhere", NationName)
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrRateLimited)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.StatusCode)
	require.Equal(t, Idle, c.Gate().State())
}

func TestClientTooManyRequestsCoolsGate(t *testing.T) {
	srv := apiServer(t, func(w http.ResponseWriter, q url.Values) {
		w.Header().Set("RateLimit-Remaining", "0")
		w.Header().Set("RateLimit-Reset", "30")
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	_, err := c.World(ctx, WorldNumNations)
	require.ErrorIs(t, err, ErrRateLimited)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, Cooling, c.Gate().State())

	_, err = c.World(ctx, WorldNumNations)
	var limited *RateLimitedError
	require.True(t, errors.As(err, &limited))
	require.Greater(t, limited.RetryAfter(), time.Duration(0))
}

func TestClientHeaderErrorSkipsDecode(t *testing.T) {
	srv := apiServer(t, func(w http.ResponseWriter, q url.Values) {
		w.Header().Set("RateLimit-Remaining", "lots")
		w.Header().Set("RateLimit-Reset", "30")
		w.Write([]byte(`<WORLD><NUMNATIONS>1</NUMNATIONS></WORLD>`))
	})
	c := newTestClient(t, srv)

	w, err := c.World(context.Background(), WorldNumNations)
	require.Nil(t, w)
	require.ErrorIs(t, err, ErrMalformedHeaders)

	var he *HeaderError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusOK, he.StatusCode)
}

func TestClientDecodeError(t *testing.T) {
	srv := apiServer(t, func(w http.ResponseWriter, q url.Values) {
		w.Write([]byte(`<NATION><NAME>unterminated`))
	})
	c := newTestClient(t, srv)

	_, err := c.Nation(context.Background(), "testlandia", NationName)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode nation")
}

func TestClientInvalidRequest(t *testing.T) {
	srv := apiServer(t, func(w http.ResponseWriter, q url.Values) {
		t.Error("invalid request reached the server")
	})
	c := newTestClient(t, srv)

	_, err := c.World(context.Background())
	require.ErrorIs(t, err, errNoShards)
	_, ok := c.Gate().LastSentAt()
	require.False(t, ok)
}

func TestClientAPIVersion(t *testing.T) {
	var got url.Values
	srv := apiServer(t, func(w http.ResponseWriter, q url.Values) {
		got = q
		w.Write([]byte(`<WORLD></WORLD>`))
	})
	g, err := NewGate("nsapi-test/1.0", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	defer g.Close()

	c, err := NewClient(g, WithBaseURL(srv.URL), WithAPIVersion(0))
	require.NoError(t, err)
	_, err = c.World(context.Background(), WorldNumNations)
	require.NoError(t, err)
	require.False(t, got.Has("v"))

	pinned := WorldRequest(WorldNumNations)
	pinned.Version = 9
	require.NoError(t, c.Do(context.Background(), pinned, &World{}))
	require.Equal(t, "9", got.Get("v"))
}
