// Package session owns the client's authenticated identity.
//
// A Store holds the current Session (or nil when unauthenticated), writes
// every change through to persistent storage under common.SessionStorageKey,
// and rehydrates from it on construction. Rehydrated snapshots pass through
// Hydrate, which fills missing identity fields from the access token claims
// without writing the result back.
//
// Every Replace/Clear bumps a generation counter. Callers that start a
// network round-trip capture Generation() first and install the result with
// ReplaceIf, so a response that lands after an intervening logout is
// discarded instead of resurrecting the session.
package session
