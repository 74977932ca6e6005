// Package sim ties the theoretical distribution and the manual walk together
// behind a single mode-aware Session.
//
// In automatic mode the parameters are editable and the distribution is
// recomputed lazily on the next read after any change. In manual mode the
// parameters are locked and left/right choices, resets and random drops
// build up completed paths. Calls made in the wrong mode are silent no-ops
// that report false.
//
// # Thread Safety
//
// Session is NOT thread-safe. It is meant to be owned by a single UI event
// loop.
package sim
