// Package viz provides terminal presentation for integrated trajectories.
//
//   - [Playback]: a Bubble Tea program that replays a stored trajectory,
//     drawing the mass on its spring next to a position graph
//   - [RenderSummary]: a lipgloss panel with the model and run metrics
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	←/→   - Step backward/forward while paused
//	+/-   - Faster/slower playback
//	R     - Restart from the first sample
//	Q     - Quit
package viz
