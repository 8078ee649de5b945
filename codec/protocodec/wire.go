package protocodec

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// encoder accumulates one message. The first error sticks; later appends
// are no-ops.
type encoder struct {
	b   []byte
	err error
}

func (e *encoder) str(num protowire.Number, s string) {
	if e.err != nil || s == "" {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, s)
}

// strs writes every element, including empty strings, so list positions
// are preserved.
func (e *encoder) strs(num protowire.Number, ss []string) {
	for _, s := range ss {
		if e.err != nil {
			return
		}
		e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
		e.b = protowire.AppendString(e.b, s)
	}
}

func (e *encoder) varint(num protowire.Number, v uint64) {
	if e.err != nil {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, v)
}

func (e *encoder) boolp(num protowire.Number, p *bool) {
	if p != nil {
		e.varint(num, protowire.EncodeBool(*p))
	}
}

func (e *encoder) intp(num protowire.Number, p *int) {
	if p != nil {
		e.varint(num, uint64(int32(*p)))
	}
}

func (e *encoder) doublep(num protowire.Number, p *float64) {
	if e.err != nil || p == nil {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.Fixed64Type)
	e.b = protowire.AppendFixed64(e.b, math.Float64bits(*p))
}

// packedInts writes a packed repeated int32.
func (e *encoder) packedInts(num protowire.Number, vs []int) {
	if e.err != nil || len(vs) == 0 {
		return
	}
	var p []byte
	for _, v := range vs {
		p = protowire.AppendVarint(p, uint64(int32(v)))
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, p)
}

func (e *encoder) enum(num protowire.Number, t *enumTable, tok string) {
	if e.err != nil {
		return
	}
	e.b, e.err = appendEnum(e.b, num, t, tok)
}

// timestamp writes a google.protobuf.Timestamp.
func (e *encoder) timestamp(num protowire.Number, ts *time.Time) {
	if ts == nil {
		return
	}
	e.message(num, func(m *encoder) {
		if s := ts.Unix(); s != 0 {
			m.varint(1, uint64(s))
		}
		if n := ts.Nanosecond(); n != 0 {
			m.varint(2, uint64(int32(n)))
		}
	})
}

// message writes a nested message. The field is written even when the
// nested message is empty, so a present-but-empty message stays present.
func (e *encoder) message(num protowire.Number, fn func(*encoder)) {
	if e.err != nil {
		return
	}
	sub := &encoder{}
	fn(sub)
	if sub.err != nil {
		e.err = sub.err
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, sub.b)
}

var errWireType = errors.New("unexpected wire type")

// field is one decoded tag/value pair.
type field struct {
	num  protowire.Number
	typ  protowire.Type
	raw  []byte
	uint uint64
}

// eachField calls fn for every field in b. Unknown fields are the caller's
// to ignore.
func eachField(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.uint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.uint, n = protowire.ConsumeFixed64(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			f.uint = uint64(v)
		case protowire.BytesType:
			f.raw, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
	}
	return nil
}

func (f field) str() (string, error) {
	if f.typ != protowire.BytesType {
		return "", errWireType
	}
	return string(f.raw), nil
}

func (f field) bytes() ([]byte, error) {
	if f.typ != protowire.BytesType {
		return nil, errWireType
	}
	return f.raw, nil
}

func (f field) boolp() (*bool, error) {
	if f.typ != protowire.VarintType {
		return nil, errWireType
	}
	v := protowire.DecodeBool(f.uint)
	return &v, nil
}

func (f field) int() (int, error) {
	if f.typ != protowire.VarintType {
		return 0, errWireType
	}
	return int(int32(f.uint)), nil
}

func (f field) intp() (*int, error) {
	v, err := f.int()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (f field) doublep() (*float64, error) {
	if f.typ != protowire.Fixed64Type {
		return nil, errWireType
	}
	v := math.Float64frombits(f.uint)
	return &v, nil
}

// ints accepts both packed and unpacked repeated int32 encodings.
func (f field) ints() ([]int, error) {
	switch f.typ {
	case protowire.VarintType:
		return []int{int(int32(f.uint))}, nil
	case protowire.BytesType:
		var out []int
		b := f.raw
		for len(b) > 0 {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			out = append(out, int(int32(v)))
			b = b[n:]
		}
		return out, nil
	}
	return nil, errWireType
}

func (f field) enum(t *enumTable) (string, error) {
	if f.typ != protowire.VarintType {
		return "", errWireType
	}
	return t.token(f.uint)
}

// enums accepts both packed and unpacked repeated enum encodings.
func (f field) enums(t *enumTable) ([]string, error) {
	ns, err := f.ints()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		tok, err := t.token(uint64(uint32(n)))
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

func (f field) timestamp() (*time.Time, error) {
	if f.typ != protowire.BytesType {
		return nil, errWireType
	}
	var sec, nsec int64
	err := eachField(f.raw, func(g field) error {
		switch g.num {
		case 1:
			sec = int64(g.uint)
		case 2:
			nsec = int64(int32(g.uint))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ts := time.Unix(sec, nsec).UTC()
	return &ts, nil
}
