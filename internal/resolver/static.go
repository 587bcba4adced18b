package resolver

import (
	"fmt"
	"strings"
)

// normalizeSegment replaces every character outside [A-Za-z0-9_] with '_',
// per §4.4 "Static symbol naming": normalize(prefix, name, unique_id).
func normalizeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// normalizeJoin builds a dot-joined, per-segment-normalized prefix from a
// namespace's parts (e.g. `namespace a::b::c;` -> "a.b.c").
func normalizeJoin(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = normalizeSegment(p)
	}
	return strings.Join(out, ".")
}

// joinPrefix appends name onto prefix with a '.', normalizing only name
// (prefix is assumed already normalized, since it is always itself either
// "" or the output of normalizeJoin/joinPrefix).
func joinPrefix(prefix, name string) string {
	n := normalizeSegment(name)
	if prefix == "" {
		return n
	}
	return prefix + "." + n
}

// reserveLabel returns a unique static label for (prefix, name): the plain
// normalized join, unless it collides with an already-reserved label, in
// which case a monotonically increasing numeric suffix is appended until
// one is free (§4.4: "a unique id is appended only on collision").
func (r *Resolver) reserveLabel(prefix, name string) string {
	candidate := joinPrefix(prefix, name)
	if !r.usedLabels[candidate] {
		r.usedLabels[candidate] = true
		return candidate
	}
	for {
		r.labelSeq[candidate]++
		n := r.labelSeq[candidate]
		c2 := fmt.Sprintf("%s_%d", candidate, n+1)
		if !r.usedLabels[c2] {
			r.usedLabels[c2] = true
			return c2
		}
	}
}

// reserveSyntheticLabel reserves a label for a compiler-synthesized static
// symbol (a bytes-literal or slice-literal backing array) that has no
// source-level name.
func (r *Resolver) reserveSyntheticLabel(prefix, kind string) string {
	r.bytesCounter++
	return r.reserveLabel(prefix, fmt.Sprintf("%s$%d", kind, r.bytesCounter))
}

func alignUp(off, align uint64) uint64 {
	if align <= 1 {
		return off
	}
	if rem := off % align; rem != 0 {
		return off + (align - rem)
	}
	return off
}

func roundUp8(n uint64) uint64 { return alignUp(n, 8) }
