// Package analysis inspects integrated trajectories.
//
//   - [PowerSpectrum]: magnitude spectrum of a real signal via radix-2 FFT
//   - [DominantFrequency]: strongest oscillation frequency of the position
//   - [NewPhasePortrait]: the (x, x') plane, rendered by [PhasePortrait.ASCII]
//
// # Example
//
//	hz, err := analysis.DominantFrequency(traj)
//	fmt.Print(analysis.NewPhasePortrait(traj).ASCII(70, 20))
package analysis
