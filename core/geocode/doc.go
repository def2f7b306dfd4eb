// Package geocode resolves free-form street addresses to coordinates through
// a memoizing cache in front of a rate-limited Provider.
//
// Each distinct address reaches the provider at most once per Store
// lifetime. Failed lookups are remembered as unresolved so the same broken
// address is never retried. Concurrent misses for one address share a
// single outbound call.
package geocode
