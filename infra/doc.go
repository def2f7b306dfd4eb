// Package infra contains technical adapters such as the Nominatim geocoder,
// the Redis geocode cache and metrics exporters. These packages should
// depend only on the interfaces defined in the core packages.
package infra
