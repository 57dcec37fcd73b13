// pkg/cov/merge.go
// The merge driver: three layered operations, each normalizing its own
// output. No operation here suspends, blocks, or spawns a goroutine — the
// contract is synchronous end to end, and inputs are consumed: callers
// must not reuse a RangeCov/FunctionCov/ScriptCov/ProcessCov value passed
// into any of these functions.
package cov

import "github.com/Voskan/covmerge/internal/rangetree"

// MergeProcesses buckets every ScriptCov across all processes by URL,
// merges each bucket with MergeScripts, and returns a fresh, normalized
// ProcessCov. An empty input returns an empty result, not an error.
func MergeProcesses(processes []ProcessCov) ProcessCov {
	byURL := make(map[string][]ScriptCov)
	var order []string
	for _, p := range processes {
		for _, s := range p.Result {
			if _, ok := byURL[s.URL]; !ok {
				order = append(order, s.URL)
			}
			byURL[s.URL] = append(byURL[s.URL], s)
		}
	}

	result := make([]ScriptCov, 0, len(order))
	for _, url := range order {
		if merged, ok := MergeScripts(byURL[url]); ok {
			result = append(result, merged)
		}
	}

	out := ProcessCov{Result: result}
	normalizeProcess(&out)
	return out
}

// MergeScripts merges scripts that must all share URL; the first input's
// ScriptID wins when scripts disagree (an inherited quirk — see DESIGN.md).
// The bool result reports whether any input was supplied; an empty input
// returns (ScriptCov{}, false).
func MergeScripts(scripts []ScriptCov) (ScriptCov, bool) {
	if len(scripts) == 0 {
		return ScriptCov{}, false
	}
	if len(scripts) == 1 {
		return deepNormalizeScript(scripts[0]), true
	}

	scriptID := scripts[0].ScriptID
	url := scripts[0].URL

	type rootKey struct{ start, end uint32 }
	buckets := make(map[rootKey][]FunctionCov)
	var order []rootKey

	for _, s := range scripts {
		for _, fn := range s.Functions {
			key := rootKey{fn.Ranges[0].StartOffset, fn.Ranges[0].EndOffset}
			existing, ok := buckets[key]
			switch {
			case !ok:
				buckets[key] = []FunctionCov{fn}
				order = append(order, key)
			case !existing[0].IsBlockCoverage && fn.IsBlockCoverage:
				// Block-level coverage always wins over function-level.
				buckets[key] = []FunctionCov{fn}
			case existing[0].IsBlockCoverage && !fn.IsBlockCoverage:
				// Function-level input dropped in favor of the existing block-level bucket.
			default:
				buckets[key] = append(existing, fn)
			}
		}
	}

	functions := make([]FunctionCov, 0, len(order))
	for _, key := range order {
		if merged, ok := MergeFunctions(buckets[key]); ok {
			functions = append(functions, merged)
		}
	}

	out := ScriptCov{ScriptID: scriptID, URL: url, Functions: functions}
	normalizeScript(&out)
	return out, true
}

// MergeFunctions merges functions that must all share a root span
// (Ranges[0].StartOffset/EndOffset). The bool result reports whether any
// input was supplied.
func MergeFunctions(functions []FunctionCov) (FunctionCov, bool) {
	if len(functions) == 0 {
		return FunctionCov{}, false
	}
	if len(functions) == 1 {
		out := functions[0]
		normalizeFunctionRanges(&out)
		return out, true
	}

	name := functions[0].FunctionName
	trees := make([]*rangetree.Tree, 0, len(functions))
	for _, fn := range functions {
		trees = append(trees, rangetree.FromSorted(toInternalRanges(fn.Ranges)))
	}

	merged := rangetree.Merge(trees)
	rangetree.Normalize(merged)
	ranges := fromInternalRanges(merged.ToRanges())

	return FunctionCov{
		FunctionName:    name,
		Ranges:          ranges,
		IsBlockCoverage: !(len(ranges) == 1 && ranges[0].Count == 0),
	}, true
}
