// Package store defines the [Store] interface for the gate's usage ledger:
// per-kind counters of physical transmissions, bucketed by time window.
//
//   - [MemoryStore]: process-local counters, the default.
//   - [SQLiteStore]: counters kept in a SQLite database file.
//   - [TieredStore]: a MemoryStore in front of any persistent Store.
//
// A Redis-backed store lives in the redis subpackage. The ledger is
// diagnostic; nothing in it affects whether the gate sends a request.
package store
