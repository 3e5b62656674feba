package harvest

// LetterSet holds the accepted first characters for anchor-text filtering.
type LetterSet map[rune]struct{}

// NewLetterSet builds a LetterSet from the first rune of each entry.
// Empty entries are ignored.
func NewLetterSet(letters []string) LetterSet {
	set := make(LetterSet, len(letters))
	for _, l := range letters {
		for _, r := range l {
			set[r] = struct{}{}
			break
		}
	}
	return set
}

// Has reports whether r is an accepted first character.
func (s LetterSet) Has(r rune) bool {
	_, ok := s[r]
	return ok
}
