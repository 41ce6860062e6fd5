// Package portal serves the read-only portal preview of the last deployed
// blueprint.
//
// The server is a chi router over the persisted store. Every request reads
// the store afresh, so a blueprint generated in the terminal application
// shows up on the next page load.
//
// # Routes
//
//	GET /                  HTML preview page
//	GET /api/blueprint     last blueprint as JSON, 404 when none is stored
//	GET /api/frameworks    framework catalog
//	GET /healthz           liveness probe
//	GET /ws/deploy         websocket stream of the deployment log script
//
// # Deployment Stream
//
// /ws/deploy plays the deployment log script with its real delays. Each line
// is sent as a JSON text message:
//
//	{"stream":"<uuid>","seq":1,"line":"[SYSTEM] Initializing Zero-Intervention Pipeline..."}
//
// A final message with "done": true closes the stream. Playback stops as
// soon as the client disconnects or the server shuts down.
//
// # Service Advertisement
//
// When Config.Advertise is set the server registers itself over mDNS as
// "_architect._tcp" so `architect portals` can find it.
package portal
