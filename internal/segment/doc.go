// Package segment partitions a pixel grid into clusters of similar color.
//
// A run has two phases. FloodFill grows clusters pixel by pixel from seeds
// taken in column-major scan order, comparing each candidate with the pixel
// it was reached from using the redmean Distance. Merge then joins adjacent
// clusters whose seed colors are within the same tolerance.
//
// # Coordinate System
//
// Positions are 0-based with (0,0) at the top-left corner, X increasing
// rightward and Y increasing downward, matching the imaging package.
//
// # Determinism
//
// Both phases are sequential and single-pass. The same grid and options
// always give the same cluster membership. The result is reproducible, not
// canonical: flood-fill only examines the five forward neighbors of a pixel,
// and a candidate rejected by one cluster is never examined again during the
// run (unless Options.RescanRejected is set), so some images split into more
// clusters than an 8-connected fill would produce. Merge does not iterate to
// a fixpoint.
//
// # Thread Safety
//
// A Grid and the clusters built on it are mutated in place by a run and must
// not be shared between concurrent runs. Distance is a pure function.
package segment
