// Package query builds search requests for the NASA CMR search API.
//
// A query is built by chaining filter methods on a builder for one resource
// kind. Each setter validates its input before storing it, so the parameter
// store only ever holds values that are safe to put on the wire.
//
// # Usage
//
//	q := query.NewGranuleQuery().
//		ShortName("MOD09GA").
//		Version("006").
//		Point("44.6,-63.6").
//		Temporal(query.ISO("2016-10-10T01:02:03Z"), query.Date(2016, 10, 12, 9, 0, 0), false)
//
//	encoded, err := q.Encode()
//	// short_name=MOD09GA&version=006&point=44.6%2C-63.6&temporal[]=2016-10-10T01:02:03Z,2016-10-12T09:00:00Z
//
// Empty inputs are no-ops, so optional values can be chained without
// conditionals at the call site.
//
// # Errors
//
// Setters never return errors directly. The first failure is kept on the
// builder and reported by Err; later setters are ignored and Encode returns
// the same error. Every error wraps one of the package's sentinel kinds:
//
//	if errors.Is(q.Err(), query.ErrInvalidRange) {
//		// from is later than to
//	}
//
// Constraints that span several parameters, such as spatial granule searches
// needing a collection identifier, are checked by Validate and Encode rather
// than by the setters, so filters may be set in any order.
//
// # Concurrency
//
// Builders are not safe for concurrent use.
package query
