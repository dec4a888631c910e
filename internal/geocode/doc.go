// Package geocode queries a Nominatim-compatible search endpoint for city
// names.
//
// The package knows nothing about the UI. It turns a query into the ordered
// list of display names the endpoint returned:
//
//	client, err := geocode.NewClient(endpoint, geocode.WithUserAgent("cityform/1.0"))
//	if err != nil {
//	    // endpoint missing or malformed
//	}
//	names, err := client.Search(ctx, "Warsaw")
//
// Failures carry an internal/errors code (network_failure, upstream_status,
// decode_failed, rate_limited) so callers can log them meaningfully.
package geocode
