// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads resolves the --threads value: 0 (or less) means all CPUs.
func EffectiveThreads(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}
	return threads
}

// SplitThreads divides a thread budget between concurrently processed files.
// It returns how many files run at once and how many workers each file gets;
// both are at least 1.
func SplitThreads(threads, files int) (concurrentFiles, workersPerFile int) {
	if threads < 1 {
		threads = 1
	}
	if files < 1 {
		files = 1
	}
	concurrentFiles = min(threads, files)
	workersPerFile = max(threads/concurrentFiles, 1)
	return concurrentFiles, workersPerFile
}
