// Package github talks to the GitHub REST API on behalf of the ingest
// pipeline.
//
// # Components
//
//   - Client: authenticated requests with rate-limit aware retry
//   - Paginator: walks the issues listing of one repository
//   - RedirectResolver: follows paper URL redirects without credentials
//   - RetryPolicy and Clock: retry schedules, testable without sleeping
//
// # Rate limiting
//
// A 403 or 429 response whose X-RateLimit-Remaining header is "0" (or that
// carries Retry-After) is retried exactly once after sleeping until the
// announced reset plus RateLimitMargin. A second rejection surfaces as a
// RemoteAPIError. An optional token bucket (golang.org/x/time/rate) spaces
// requests proactively.
//
// # Authentication
//
// The bearer token comes from a [driven.TokenProvider], normally the
// environment variable named by github.token_env. It is read before any
// network call, so a missing credential never produces a request.
package github
