// Package session is the HTTP client used to talk to the student portal.
//
// A Session keeps cookies across requests, picks a User-Agent for every request,
// enforces a minimum spacing between consecutive requests and can route requests
// through a URL-rewriting proxy. Requests are never retried: transport failures and
// non-2xx responses are returned to the caller as errors.
package session
