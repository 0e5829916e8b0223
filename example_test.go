package nsapi_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/ryhazerus/nsapi"
)

func ExampleRequest_URL() {
	req := nsapi.RegionRequest("The Pacific", nsapi.RegionNumNations, nsapi.RegionDelegate)
	req.Version = 12

	u, err := req.URL(nsapi.DefaultBaseURL)
	if err != nil {
		panic(err)
	}
	fmt.Println(u)
	// Output: https://www.nationstates.net/cgi-bin/api.cgi?region=the_pacific&q=numnations+delegate&v=12
}

func ExampleParseSnapshot() {
	h := http.Header{}
	h.Set("RateLimit-Remaining", "0")
	h.Set("RateLimit-Reset", "25")
	h.Set("Retry-After", "7")

	s, err := nsapi.ParseSnapshot(h)
	if err != nil {
		panic(err)
	}
	wait, _ := s.Wait()
	fmt.Println(s.Remaining, s.Reset, wait)
	// Output: 0 25 25s
}

func ExampleGate_Send() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("RateLimit-Remaining", "0")
		w.Header().Set("RateLimit-Reset", "30")
		io.WriteString(w, "<WORLD><NUMNATIONS>1</NUMNATIONS></WORLD>")
	}))
	defer srv.Close()

	gate, err := nsapi.NewGate("ExampleBot/1.0 (admin@example.com)", nsapi.WithHTTPClient(srv.Client()))
	if err != nil {
		panic(err)
	}
	defer gate.Close()

	ctx := context.Background()
	resp, err := gate.Send(ctx, srv.URL+"?q=numnations")
	if err != nil {
		panic(err)
	}
	resp.Body.Close()
	fmt.Println(gate.State())

	_, err = gate.Send(ctx, srv.URL+"?q=numnations")
	var limited *nsapi.RateLimitedError
	fmt.Println(errors.As(err, &limited), errors.Is(err, nsapi.ErrRateLimited))
	// Output:
	// Cooling
	// true true
}
