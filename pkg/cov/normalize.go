// pkg/cov/normalize.go
// Deterministic post-pass applied after every merge: functions sorted by
// root start offset, scripts sorted by URL, and each function's ranges
// rebuilt through a RangeTree so that singleton merges produce exactly the
// same canonical shape as an actual multi-input merge would.
package cov

import (
	"sort"

	"github.com/Voskan/covmerge/internal/rangetree"
)

// normalizeFunctionRanges rebuilds fn's RangeTree and flattens it back,
// guaranteeing canonical shape even when fn was never merged with anything.
func normalizeFunctionRanges(fn *FunctionCov) {
	if len(fn.Ranges) == 0 {
		return
	}
	tree := rangetree.FromSorted(toInternalRanges(fn.Ranges))
	rangetree.Normalize(tree)
	fn.Ranges = fromInternalRanges(tree.ToRanges())
}

// normalizeScript sorts s.Functions by root StartOffset. Each function is
// assumed already normalized (its ranges already sorted and canonical).
func normalizeScript(s *ScriptCov) {
	sort.Slice(s.Functions, func(i, j int) bool {
		return s.Functions[i].Ranges[0].StartOffset < s.Functions[j].Ranges[0].StartOffset
	})
}

// deepNormalizeScript rebuilds every function's RangeTree before sorting,
// the "deep" normalization MergeScripts needs for a singleton input so
// that even a pass-through merge yields canonical output.
func deepNormalizeScript(s ScriptCov) ScriptCov {
	out := ScriptCov{ScriptID: s.ScriptID, URL: s.URL, Functions: make([]FunctionCov, len(s.Functions))}
	copy(out.Functions, s.Functions)
	for i := range out.Functions {
		normalizeFunctionRanges(&out.Functions[i])
	}
	normalizeScript(&out)
	return out
}

// normalizeProcess sorts p.Result by URL.
func normalizeProcess(p *ProcessCov) {
	sort.Slice(p.Result, func(i, j int) bool { return p.Result[i].URL < p.Result[j].URL })
}

func toInternalRanges(rs []RangeCov) []rangetree.Range {
	out := make([]rangetree.Range, len(rs))
	for i, r := range rs {
		out[i] = rangetree.Range{Start: r.StartOffset, End: r.EndOffset, Count: r.Count}
	}
	return out
}

func fromInternalRanges(rs []rangetree.Range) []RangeCov {
	out := make([]RangeCov, len(rs))
	for i, r := range rs {
		out[i] = RangeCov{StartOffset: r.Start, EndOffset: r.End, Count: r.Count}
	}
	return out
}
