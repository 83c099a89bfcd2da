package eval

// MatchPattern implements SQL LIKE matching: '%' matches any sequence of
// characters including the empty one, '_' matches exactly one character, and
// everything else matches literally. Matching is case-sensitive and anchored
// at both ends.
func MatchPattern(s, pattern string) bool {
	sr := []rune(s)
	pr := []rune(pattern)

	si, pi := 0, 0
	starPi, starSi := -1, -1

	for si < len(sr) {
		switch {
		case pi < len(pr) && (pr[pi] == '_' || pr[pi] == sr[si]):
			si++
			pi++
		case pi < len(pr) && pr[pi] == '%':
			// Remember the wildcard position; try matching it empty first.
			starPi = pi
			starSi = si
			pi++
		case starPi >= 0:
			// Backtrack: let the last '%' swallow one more character.
			starSi++
			si = starSi
			pi = starPi + 1
		default:
			return false
		}
	}

	for pi < len(pr) && pr[pi] == '%' {
		pi++
	}
	return pi == len(pr)
}
