// Package storage provides the small key/value capability the session
// pipeline persists into.
//
// Two lifetimes are used by the client, both behind the same Store interface:
//
//   - persistent: survives process restarts (SQLiteStore, a single-file
//     database migrated with goose);
//   - session-scoped: lives for the current process (MemoryStore) or for a
//     bounded TTL shared through Redis (RedisStore).
//
// A missing key is not an error: Get reports it with ok == false.
package storage
