package nsapi

import "net/http"

// transport lets an ordinary http.Client route through the gate.
type transport struct {
	gate *Gate
}

// Transport returns an http.RoundTripper that sends every request through
// g. Responses with broken rate limit headers are closed and reported as a
// *HeaderError, since a RoundTripper may not return both.
func (g *Gate) Transport() http.RoundTripper {
	return &transport{gate: g}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.gate.do(req.Clone(req.Context()))
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	return resp, nil
}
