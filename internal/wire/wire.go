// internal/wire/wire.go
// Package wire implements an optional compact binary encoding for
// cov.ProcessCov, an alternative to the JSON codec in pkg/v8coverage for
// large merge outputs where wire size matters. It is built directly on
// google.golang.org/protobuf's low-level protowire primitives rather than
// a generated .proto schema, so the repository needs no protoc step.
//
// Wire shape (field numbers are stable; unknown fields are never emitted):
//
//	ProcessCov  { 1: repeated ScriptCov }
//	ScriptCov   { 1: string scriptId, 2: string url, 3: repeated FunctionCov }
//	FunctionCov { 1: string functionName, 2: bool isBlockCoverage, 3: repeated RangeCov }
//	RangeCov    { 1: uint32 startOffset, 2: uint32 endOffset, 3: uint32 count }
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Voskan/covmerge/pkg/cov"
)

// Marshal encodes p using the wire shape documented above.
func Marshal(p cov.ProcessCov) []byte {
	var b []byte
	for _, s := range p.Result {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalScript(s))
	}
	return b
}

func marshalScript(s cov.ScriptCov) []byte {
	var b []byte
	if s.ScriptID != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, s.ScriptID)
	}
	if s.URL != "" {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, s.URL)
	}
	for _, fn := range s.Functions {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalFunction(fn))
	}
	return b
}

func marshalFunction(fn cov.FunctionCov) []byte {
	var b []byte
	if fn.FunctionName != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, fn.FunctionName)
	}
	if fn.IsBlockCoverage {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	for _, r := range fn.Ranges {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalRange(r))
	}
	return b
}

func marshalRange(r cov.RangeCov) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.StartOffset))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.EndOffset))
	if r.Count != 0 {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.Count))
	}
	return b
}

// Unmarshal decodes data produced by Marshal back into a ProcessCov.
func Unmarshal(data []byte) (cov.ProcessCov, error) {
	var p cov.ProcessCov
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return cov.ProcessCov{}, fmt.Errorf("wire: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		if num != 1 || typ != protowire.BytesType {
			return cov.ProcessCov{}, fmt.Errorf("wire: unexpected field %d/%d in ProcessCov", num, typ)
		}
		msg, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return cov.ProcessCov{}, fmt.Errorf("wire: bad bytes field: %w", protowire.ParseError(n))
		}
		data = data[n:]
		s, err := unmarshalScript(msg)
		if err != nil {
			return cov.ProcessCov{}, err
		}
		p.Result = append(p.Result, s)
	}
	return p, nil
}

func unmarshalScript(data []byte) (cov.ScriptCov, error) {
	var s cov.ScriptCov
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return s, fmt.Errorf("wire: bad tag in ScriptCov: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return s, fmt.Errorf("wire: bad scriptId: %w", protowire.ParseError(n))
			}
			s.ScriptID = v
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return s, fmt.Errorf("wire: bad url: %w", protowire.ParseError(n))
			}
			s.URL = v
			data = data[n:]
		case num == 3 && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return s, fmt.Errorf("wire: bad function: %w", protowire.ParseError(n))
			}
			fn, err := unmarshalFunction(msg)
			if err != nil {
				return s, err
			}
			s.Functions = append(s.Functions, fn)
			data = data[n:]
		default:
			return s, fmt.Errorf("wire: unexpected field %d/%d in ScriptCov", num, typ)
		}
	}
	return s, nil
}

func unmarshalFunction(data []byte) (cov.FunctionCov, error) {
	var fn cov.FunctionCov
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fn, fmt.Errorf("wire: bad tag in FunctionCov: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return fn, fmt.Errorf("wire: bad functionName: %w", protowire.ParseError(n))
			}
			fn.FunctionName = v
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fn, fmt.Errorf("wire: bad isBlockCoverage: %w", protowire.ParseError(n))
			}
			fn.IsBlockCoverage = v != 0
			data = data[n:]
		case num == 3 && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fn, fmt.Errorf("wire: bad range: %w", protowire.ParseError(n))
			}
			r, err := unmarshalRange(msg)
			if err != nil {
				return fn, err
			}
			fn.Ranges = append(fn.Ranges, r)
			data = data[n:]
		default:
			return fn, fmt.Errorf("wire: unexpected field %d/%d in FunctionCov", num, typ)
		}
	}
	return fn, nil
}

func unmarshalRange(data []byte) (cov.RangeCov, error) {
	var r cov.RangeCov
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return r, fmt.Errorf("wire: bad tag in RangeCov: %w", protowire.ParseError(n))
		}
		data = data[n:]
		if typ != protowire.VarintType {
			return r, fmt.Errorf("wire: unexpected field %d/%d in RangeCov", num, typ)
		}
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return r, fmt.Errorf("wire: bad varint: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			r.StartOffset = uint32(v)
		case 2:
			r.EndOffset = uint32(v)
		case 3:
			r.Count = uint32(v)
		default:
			return r, fmt.Errorf("wire: unexpected field %d in RangeCov", num)
		}
	}
	return r, nil
}
