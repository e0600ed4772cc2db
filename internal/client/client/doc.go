// Package client contains the transport side of the communityfeed client.
//
// # Overview
//
//  1. Client is the REST API contract: Login/Register/Refresh/Logout plus the
//     read endpoints used by views.
//  2. HTTPClient implements it over net/http with JSON bodies. Its transport
//     chain is otelhttp (tracing) → AuthTransport (bearer token) → base.
//  3. Augmenter decides per request whether the access token is attached:
//     only API URLs (under the configured base URL, or same-origin paths under
//     the API prefix) carry it, and only when a token is available.
//
// # Error Handling
//
// Non-2xx responses become *APIError carrying the problem detail (detail,
// field errors). Status classes unwrap to ErrUnauthorized, ErrNotFound and
// ErrUnavailable; network failures wrap ErrUnavailable. Nothing is retried.
package client
