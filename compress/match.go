package compress

// match is a candidate back-reference: the source starts distance bytes
// before the current position and covers length bytes.
type match struct {
	distance int
	length   int
}

// findLongestMatch returns the longest match for data[pos:] starting within
// the window bytes before pos.
//
// Candidates are scanned nearest first and only a strictly longer match
// replaces the current best, so among equally long matches the smallest
// distance wins. A match may run past pos (self-overlap). Lengths are capped
// at limit; the scan stops early once a candidate reaches it.
func findLongestMatch(data []byte, pos, window, limit int) match {
	var best match

	maxLen := min(limit, len(data)-pos)
	if maxLen <= 0 {
		return best
	}

	lowest := max(0, pos-window)
	for j := pos - 1; j >= lowest; j-- {
		length := 0
		for length < maxLen && data[j+length] == data[pos+length] {
			length++
		}

		if length > best.length {
			best = match{distance: pos - j, length: length}
			if length == maxLen {
				break
			}
		}
	}

	return best
}
