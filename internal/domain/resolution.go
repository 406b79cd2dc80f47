package domain

import "fmt"

// Resolution is a width/height pair in pixels. Comparison is exact
// pairwise equality.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ResolutionSet is an immutable snapshot of acceptable resolutions,
// obtained once at startup and threaded through calls.
type ResolutionSet map[Resolution]struct{}

func NewResolutionSet(rezzes ...Resolution) ResolutionSet {
	set := make(ResolutionSet, len(rezzes))
	for _, r := range rezzes {
		set[r] = struct{}{}
	}
	return set
}

func (s ResolutionSet) Contains(r Resolution) bool {
	_, ok := s[r]
	return ok
}

func (s ResolutionSet) Add(r Resolution) {
	s[r] = struct{}{}
}

func (s ResolutionSet) Len() int {
	return len(s)
}
