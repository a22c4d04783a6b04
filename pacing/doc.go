// Package pacing provides the time-window primitives of the chat engine:
// a leading-edge Throttle, a supersedable one-shot Countdown used for
// debouncing and decay, and Distinct for duplicate suppression.
//
// None of them is safe for concurrent use. They are owned by handlers that
// run on the single engine goroutine; Countdown callbacks only carry a
// generation number back to that goroutine.
package pacing
