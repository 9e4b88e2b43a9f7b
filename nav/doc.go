// Package nav owns the state of a radial navigation menu and arbitrates
// between its input sources.
//
// Allowed here:
// - the single NavigationState record and its batched mutation path
// - open/close/auto-close policy, keyboard focus traversal, scroll activation
// - radial geometry and item resolution
//
// Not allowed here:
// - rendering of any kind (terminal, DOM, markup)
// - persistence or network I/O
//
// Everything runs single-threaded on an injected sched.Scheduler; the only
// asynchrony is the deferred batch flush and tracked timers. External code
// receives state snapshots, never live references.
package nav
