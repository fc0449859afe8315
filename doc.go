// Package mocut evaluates motion-capture animations window by window.
//
// For an animation over frames [Start, End], every contiguous window [s, e]
// is scored by an Operation and the (error, index) pair is kept in a cost
// matrix. The matrix drives keyframe reduction, clip matching and whatever
// else needs "how good is this span?" answered for all spans at once.
//
// Packages, leaves first:
//
//	timeline/   integer frame ranges and their window permutations
//	scene/      Things, Coordinates (Joints) and flattening
//	animation/  frames over a timeline, dimensions, CSV I/O
//	matrix/     dense float64 storage with NaN/Inf policy
//	costmatrix/ the window table, parallel RunAll, CSV I/O, metrics
//	interp/     deviation from linear interpolation (keyframe reduction)
//	dtw/        Dynamic Time Warping against a reference clip
//	keyframe/   minimal keyframe sets via shortest path over the matrix
//	store/      SQLite persistence of evaluated matrices
//	config/     viper-based configuration
//	telemetry/  zerolog and prometheus wiring for the CLI
//	cmd/mocut/  command-line entry point
//
// Quick example:
//
//	anim, _ := animation.ReadCSVFile("walk.csv")
//	cm, _ := costmatrix.FromAnimation(ctx, anim, interp.New(interp.Euclidean))
//	plan, _ := keyframe.Plan(cm, 0.5)
//	fmt.Println(plan.Keys)
//
//	go install github.com/katalvlaran/mocut/cmd/mocut@latest
package mocut
