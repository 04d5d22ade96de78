// Package watcher drives the polling loop: fetch all listing pages, reconcile
// availability, decide whether a slot satisfies the request, book it when
// asked to, and either terminate or sleep and poll again.
//
// The loop is an explicit state machine (polling, matching, booking, done)
// with injectable collaborators and sleep, so every path can be unit tested
// without network access or real time. Per-cycle state is derived fresh each
// iteration; the listing is the sole source of truth.
package watcher
