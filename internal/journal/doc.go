// Package journal persists fetch requests in SQLite so runs can be
// audited after the fact. Each record tracks one search request from
// submission through download and migration, including per-band
// failures and the files that landed in the data directory.
package journal
