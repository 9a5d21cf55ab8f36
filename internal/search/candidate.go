package search

// Candidate is one selectable line. Width is measured once when the source
// list is loaded; Index is the line's position in that list.
type Candidate struct {
	Text  string
	Out   bool
	Width int
	Index int
}

// NewCandidates wraps source lines, measuring each one with width.
func NewCandidates(lines []string, width func(string) int) []Candidate {
	cands := make([]Candidate, len(lines))
	for i, line := range lines {
		cands[i] = Candidate{Text: line, Index: i}
		if width != nil {
			cands[i].Width = width(line)
		}
	}
	return cands
}

// MarkOut returns a copy of cands where the candidate with the given source
// index is flagged as already emitted.
func MarkOut(cands []Candidate, index int) []Candidate {
	out := make([]Candidate, len(cands))
	copy(out, cands)
	for i := range out {
		if out[i].Index == index {
			out[i].Out = true
		}
	}
	return out
}

// Texts extracts the candidate strings.
func Texts(cands []Candidate) []string {
	texts := make([]string, len(cands))
	for i, c := range cands {
		texts[i] = c.Text
	}
	return texts
}
