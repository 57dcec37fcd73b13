// internal/validate/validate.go
// Package validate is a structural pre-pass over a ProcessCov's invariants,
// run ahead of the merge core so malformed input fails loudly instead of
// triggering undefined behavior inside the merge itself. The merge core
// never validates its input.
package validate

import "github.com/Voskan/covmerge/pkg/cov"

// Error reports the first structural-invariant violation found, naming the
// file it came from (set by the caller, empty if not applicable), the byte
// offset nearest the violation, and a human-readable reason.
type Error struct {
	File   string
	Offset uint32
	Reason string
}

func (e *Error) Error() string {
	if e.File == "" {
		return e.Reason
	}
	return e.File + ": " + e.Reason
}

// Process checks every ScriptCov in p. Returns the first violation found, in
// ScriptCov/FunctionCov declaration order, or nil if p is structurally
// sound.
func Process(p cov.ProcessCov) *Error {
	for _, s := range p.Result {
		if err := Script(s); err != nil {
			return err
		}
	}
	return nil
}

// Script checks s.Functions for the root-range and ordering invariants a
// normalized FunctionCov must satisfy.
func Script(s cov.ScriptCov) *Error {
	for _, fn := range s.Functions {
		if err := Function(fn); err != nil {
			return err
		}
	}
	return nil
}

// Function checks fn.Ranges: non-empty, each range's StartOffset <
// EndOffset, the root (Ranges[0]) encloses every other range, and ranges
// are arranged in the canonical pre-order total order (StartOffset
// ascending, EndOffset descending at ties) with proper nesting.
func Function(fn cov.FunctionCov) *Error {
	if len(fn.Ranges) == 0 {
		return &Error{Reason: "function " + fn.FunctionName + ": ranges must be non-empty"}
	}

	root := fn.Ranges[0]
	if root.StartOffset >= root.EndOffset {
		return &Error{Offset: root.StartOffset, Reason: "function " + fn.FunctionName + ": zero-width or inverted range"}
	}

	// stack of currently-open ancestors, each must enclose the next range.
	stack := []cov.RangeCov{root}
	for i := 1; i < len(fn.Ranges); i++ {
		r := fn.Ranges[i]

		if r.StartOffset >= r.EndOffset {
			return &Error{Offset: r.StartOffset, Reason: "function " + fn.FunctionName + ": zero-width or inverted range"}
		}

		for len(stack) > 0 && r.StartOffset >= stack[len(stack)-1].EndOffset {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return &Error{Offset: r.StartOffset, Reason: "function " + fn.FunctionName + ": range escapes root span"}
		}
		parent := stack[len(stack)-1]
		if r.StartOffset < parent.StartOffset || r.EndOffset > parent.EndOffset {
			return &Error{Offset: r.StartOffset, Reason: "function " + fn.FunctionName + ": range does not nest inside its parent"}
		}
		stack = append(stack, r)
	}
	return nil
}
