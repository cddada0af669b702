package capability

import "sort"

// Set is an immutable collection of capabilities held by a session.
type Set struct {
	caps map[Capability]struct{}
}

func NewSet(caps ...Capability) Set {
	s := Set{caps: make(map[Capability]struct{}, len(caps))}
	for _, c := range caps {
		s.caps[c] = struct{}{}
	}

	return s
}

// ParseSet builds a Set from role table strings. Unknown strings are skipped and returned so the
// caller can log them.
func ParseSet(permissions []string) (Set, []string) {
	var (
		caps    []Capability
		unknown []string
	)

	for _, p := range permissions {
		c, err := Parse(p)
		if err != nil {
			unknown = append(unknown, p)
			continue
		}
		caps = append(caps, c)
	}

	return NewSet(caps...), unknown
}

func (s Set) Can(c Capability) bool {
	_, ok := s.caps[c]
	return ok
}

// CanDo is shorthand for Can(For(a, e)).
func (s Set) CanDo(a Action, e Entity) bool {
	return s.Can(For(a, e))
}

func (s Set) Len() int {
	return len(s.caps)
}

func (s Set) Strings() []string {
	out := make([]string, 0, len(s.caps))
	for c := range s.caps {
		out = append(out, c.String())
	}
	sort.Strings(out)

	return out
}
