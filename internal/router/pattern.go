package router

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SegmentKind orders segments by specificity: lower is more specific.
type SegmentKind uint8

const (
	Literal SegmentKind = iota
	Param
	Wildcard
)

type segment struct {
	kind  SegmentKind
	value string // literal text or parameter name
}

// Rank is the specificity of a pattern, one SegmentKind per segment.
type Rank []SegmentKind

// Compare returns -1 when r is more specific than o, +1 when it is less
// specific and 0 when both have the same rank. A pattern that is a prefix of
// another is the more specific one.
func (r Rank) Compare(o Rank) int {
	return slices.Compare(r, o)
}

type pattern struct {
	raw      string
	segments []segment
	rank     Rank
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func parsePattern(raw string) (pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return pattern{}, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, raw)
	}

	parts := splitPath(raw)
	p := pattern{
		segments: make([]segment, 0, len(parts)),
		rank:     make(Rank, 0, len(parts)),
	}
	names := make(map[string]struct{}, len(parts))

	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return pattern{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, raw, err)
		}

		if seg.kind == Wildcard && i != len(parts)-1 {
			return pattern{}, fmt.Errorf("%w: %q: wildcard <%s..> must be the last segment", ErrInvalidPattern, raw, seg.value)
		}
		if seg.kind != Literal {
			if _, dup := names[seg.value]; dup {
				return pattern{}, fmt.Errorf("%w: %q: duplicate parameter %q", ErrInvalidPattern, raw, seg.value)
			}
			names[seg.value] = struct{}{}
		}

		p.segments = append(p.segments, seg)
		p.rank = append(p.rank, seg.kind)
	}

	p.raw = "/" + strings.Join(parts, "/")
	return p, nil
}

func parseSegment(part string) (segment, error) {
	if part == "" {
		return segment{}, fmt.Errorf("empty segment")
	}

	if !strings.HasPrefix(part, "<") {
		if strings.ContainsAny(part, "<>") {
			return segment{}, fmt.Errorf("segment %q mixes literal text and a parameter", part)
		}
		return segment{kind: Literal, value: part}, nil
	}

	if !strings.HasSuffix(part, ">") {
		return segment{}, fmt.Errorf("unterminated parameter %q", part)
	}

	name := part[1 : len(part)-1]
	kind := Param
	if trimmed, ok := strings.CutSuffix(name, ".."); ok {
		name = trimmed
		kind = Wildcard
	}
	if name == "" || strings.ContainsAny(name, "<>") {
		return segment{}, fmt.Errorf("bad parameter name in %q", part)
	}
	return segment{kind: kind, value: name}, nil
}

// match binds path segments to p. The returned map is nil when p has no
// parameters.
func (p pattern) match(parts []string) (map[string]string, bool) {
	var params map[string]string
	bind := func(name, value string) {
		if params == nil {
			params = make(map[string]string, len(p.segments))
		}
		params[name] = value
	}

	for i, seg := range p.segments {
		if seg.kind == Wildcard {
			bind(seg.value, strings.Join(parts[i:], "/"))
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}

		switch seg.kind {
		case Literal:
			if parts[i] != seg.value {
				return nil, false
			}
		case Param:
			if parts[i] == "" {
				return nil, false
			}
			bind(seg.value, parts[i])
		}
	}

	if len(parts) != len(p.segments) {
		return nil, false
	}
	return params, true
}

func compareRoutes(a, b *Route) int {
	if c := a.pattern.rank.Compare(b.pattern.rank); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}
