// pkg/cov/types.go
// Package cov implements the merge algorithm for V8-style JavaScript
// code-coverage reports. It consumes and produces in-memory values only —
// reading files, emitting JSON, and any live instrumentation are the job
// of sibling packages (pkg/v8coverage, internal/scandir, cmd/covmerge).
//
// The three entry points, MergeProcesses, MergeScripts and MergeFunctions,
// call each other top-down and each normalizes its own output, so callers
// never need to normalize a result themselves.
package cov

// RangeCov is a half-open [StartOffset, EndOffset) byte range paired with
// the number of times it executed. StartOffset must be strictly less than
// EndOffset.
type RangeCov struct {
	StartOffset uint32 `json:"startOffset"`
	EndOffset   uint32 `json:"endOffset"`
	Count       uint32 `json:"count"`
}

// FunctionCov is one function's coverage. After normalization, Ranges is
// non-empty, Ranges[0] is the root and encloses every other range, ranges
// are in pre-order with total order (StartOffset ascending, EndOffset
// descending), and no two adjacent siblings share the same count.
// IsBlockCoverage false means every non-root range carries the root's
// count — function-level granularity only.
type FunctionCov struct {
	FunctionName    string     `json:"functionName"`
	Ranges          []RangeCov `json:"ranges"`
	IsBlockCoverage bool       `json:"isBlockCoverage"`
}

// ScriptCov is one script's coverage. After normalization, Functions is
// sorted by the root range's StartOffset.
type ScriptCov struct {
	ScriptID  string        `json:"scriptId"`
	URL       string        `json:"url"`
	Functions []FunctionCov `json:"functions"`
}

// ProcessCov is the coverage report for one process, the top-level shape
// of V8's Profiler.takePreciseCoverage result. After normalization, Result
// is sorted by URL.
type ProcessCov struct {
	Result []ScriptCov `json:"result"`
}
