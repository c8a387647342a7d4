// Package votes stores user votes and past analyses, and computes the
// community view of an analysis from the votes.
//
// Votes are append-only. The community-adjusted rating is computed on read
// from the original rating and the votes for the same URL; it never
// replaces the stored analysis.
//
// Three stores implement Store:
//   - MemoryStore keeps everything in process memory
//   - SQLiteStore persists to a single SQLite file (modernc.org/sqlite)
//   - RedisStore appends JSON records to Redis lists
//
// Design decision: The Redis store keeps every vote in one list under a
// fixed key, the same record layout the browser extension kept in local
// storage. Existing exports can be loaded with a plain RPUSH.
package votes
