// Package blueprint defines the deployment blueprint returned by the
// generation engine, the JSON Schema it must satisfy, and text formatters
// for terminal and markdown output.
//
// A Blueprint is immutable once decoded. Decode always stamps the caller's
// keyword over whatever the payload carried:
//
//	bp, err := blueprint.Decode(raw, "Q1 Product Marketing Lifecycle")
//	if errors.Is(err, blueprint.ErrMalformed) {
//	    // not JSON, or JSON that does not match the schema
//	}
package blueprint
