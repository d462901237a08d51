// Package optic provides core primitives for optical pulse propagation.
//
// The package defines the fundamental types shared by the propagation
// engine and its peripherals:
//
//   - [Field]: complex envelope of the pulse on the time grid
//   - [Operator]: frequency-domain linear propagation multiplier
//   - [Result]: final field, spectrum and optional trajectory of a run
//   - [Metric]: per-step observable interface
//   - [Observer]: per-step callback interface
//
// # Field and spectrum
//
// A Field always lives on a fixed grid of N complex samples. Its discrete
// Fourier transform is derived, never authored: whenever a propagation step
// changes the Field, the engine recomputes the spectrum so the two stay
// consistent at step boundaries.
//
// # Thread safety
//
// Fields and Results are plain slices and structs with no internal locking.
// A propagation run owns its state exclusively; share Results only after
// the run returns.
package optic
