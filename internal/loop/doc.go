// Package loop provides cooperative frame scheduling for the effects.
//
// The host (an ebiten game, a bubbletea program or a headless bench) calls
// [Loop.Frame] once per display refresh. A started loop runs its step exactly
// once per call; a stopped loop does nothing, so no timer outlives the
// component that owns it.
//
//   - [Gate]: starts or stops a loop from visibility and reduced-motion signals
//   - [Observer]: intersection-observer analog feeding a gate
//   - [Debouncer]: coalesces resize bursts into one rebuild
//   - [Interval]: fixed-period poller for sampling work
//
// None of these types are safe for concurrent use; they are meant to live on
// the same goroutine as the frame callback.
package loop
