// Package auth implements the token-based identity subsystem guarding the
// careloop API: credential verification, signed-token issuance, per-request
// token validation, and the access policy that decides whether a request may
// proceed without an established identity.
//
// Token lifecycle:
//   - TokenService signs compact HS256 tokens carrying subject (username),
//     issued-at, and expiry claims. There is no revocation list; a valid,
//     unexpired token is honored regardless of later account changes.
//   - The signing key is process-wide and immutable after startup. When no key
//     is configured, ResolveSigningKey generates an ephemeral one, which
//     invalidates previously issued tokens on restart.
//
// Identity resolution:
//   - UserProvider verifies credentials against the users repository and
//     bcrypt digests, tracking failed attempts with a cooldown window.
//   - The bearer middleware (middleware/bearerware) installs an Identity into
//     the request context opportunistically; rejection of unauthenticated
//     access on protected routes is enforced by the access decision stage,
//     never by the gate itself.
package auth
