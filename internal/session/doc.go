// Package session holds the view state of one interactive session and the
// transitions that mutate it.
//
// State has no goroutines and no timers of its own. Every asynchronous
// sequence (generation steps, handshake resolution, toast expiry) obtains a
// token when it starts and presents it when its timer fires; a mismatched
// token means the sequence was superseded or reset, and the transition is
// dropped. A second generation therefore wins over an earlier in-flight
// one, and Reset aborts everything pending.
package session
