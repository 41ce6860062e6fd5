// Package urls provides centralized constants for the external URLs shown to
// users: troubleshooting links and the display-only automation endpoints.
//
// Usage:
//
//	import "github.com/agolabs/architect/internal/urls"
//
//	fmt.Printf("Create a key at: %s\n", urls.GeminiAPIKeys)
package urls
