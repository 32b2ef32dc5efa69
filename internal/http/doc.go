// Package http provides HTTP handlers and middleware for the points editor API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a session token. Body: {"password"}. Response:
//     {"token","expires_at"} with the token also surfaced via the
//     `X-Session-Token` header and a `session_token` cookie. Every session
//     owns an isolated workspace.
//   - DELETE /sessions/current: revokes the token extracted from the
//     Authorization header or session cookie.
//   - POST /documents, POST /documents/new, GET /documents/current,
//     POST /documents/verify, POST /documents/merge: whole-document
//     operations over the canonical serialization. Load/verify/merge accept
//     the raw document JSON as the request body; merge optionally restricts
//     the import with a comma-separated resort_ids query parameter.
//   - POST /documents/save, POST /documents/open, GET /documents/saved,
//     DELETE /documents/saved/{name}: named snapshots in the document store.
//   - GET /resorts, POST /resorts, GET/PUT/DELETE /resorts/{id},
//     POST /resorts/{id}/clone, POST /resorts/{id}/select,
//     GET /resorts/{id}/summary: resort catalog, selection, and the weekly
//     point summary exchanging the payloads defined in resort_handler.go and
//     summary_handler.go.
//   - GET /working plus the /working/... mutation endpoints: staged edits on
//     the selected resort's working copy, exchanging the payloads defined in
//     working_handler.go.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
