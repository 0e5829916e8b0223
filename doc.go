// Package nsapi is a client for the NationStates public API. It builds
// shard queries for nations, regions, the world and the World Assembly,
// sends them through a rate-limit-aware [Gate] and decodes the XML replies
// into typed records.
//
// # Key Concepts
//
//   - [Gate] is the only path to the network. It lets one request be in
//     flight at a time, reads the RateLimit-Remaining, RateLimit-Reset and
//     Retry-After headers of each response, and refuses to send until a
//     server-declared cool-down has passed.
//   - [Snapshot] is the parsed rate limit state of one response.
//   - [Request] describes a query; [Client] runs it and decodes the result.
//   - [store.Store] backs the usage ledger, a per-kind count of
//     transmissions kept for diagnostics.
//
// # Quick Start
//
//	gate, err := nsapi.NewGate("ExampleBot/1.0 (admin@example.com)")
//	if err != nil {
//		return err
//	}
//	defer gate.Close()
//
//	client, _ := nsapi.NewClient(gate)
//	n, err := client.Nation(ctx, "Testlandia", nsapi.NationName, nsapi.NationPopulation)
//
//	var limited *nsapi.RateLimitedError
//	if errors.As(err, &limited) {
//		// retry after limited.Until
//	}
//
// The gate never retries on its own.
package nsapi
