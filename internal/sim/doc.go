// Package sim implements the cosmetic, randomized widgets shown next to a
// blueprint: the authorization handshake draw, the diagnostics scan and the
// deployment log playback.
//
// Nothing here verifies or deploys anything. The state machines are plain
// values driven by the caller; a Source supplies randomness so tests can fix
// outcomes. Each run carries a token so a restarted or stopped run ignores
// late timer callbacks.
package sim
