// Package sync decides which tracked files need to be copied to the pod, and
// copies them.
//
// The algorithm is a stateless three-way comparison run from scratch on every
// invocation:
//
//  1. Hash every tracked file locally.
//  2. Hash every tracked file on the pod with a single remote execution
//     (ProbeRemote), so the cost is one round trip regardless of how many
//     files are tracked.
//  3. Classify each file as missing, differing, or the same
//     (ComputeStatuses), and copy the differing ones (Executor).
//
// Whenever a comparison can't be resolved -- the probe failed, a file is
// unreadable, the pod has no digest for a path -- the file is classified as
// differing. A redundant copy is cheap; a skipped copy silently leaves stale
// code running on the pod. Because no state is kept between runs, an
// interrupted sync heals itself on the next run.
package sync
