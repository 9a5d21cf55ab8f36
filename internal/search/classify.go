package search

// MatchClass ranks how a query matched a candidate.
type MatchClass int

const (
	None MatchClass = iota
	Exact
	Prefix
	Substring
)

func (c MatchClass) String() string {
	switch c {
	case Exact:
		return "exact"
	case Prefix:
		return "prefix"
	case Substring:
		return "substring"
	default:
		return "none"
	}
}

// Classify maps the first match span of a query inside text to a class. A nil
// span means the query did not match.
func Classify(text string, span []int) MatchClass {
	if len(span) < 2 {
		return None
	}
	start, end := span[0], span[1]
	switch {
	case start == 0 && end == len(text):
		return Exact
	case start == 0:
		return Prefix
	default:
		return Substring
	}
}

// Partition groups candidates by class, keeping input order inside each
// group. Candidates classified None are dropped.
func Partition(cands []Candidate, classify func(Candidate) MatchClass) []Candidate {
	var exact, prefix, substring []Candidate
	for _, c := range cands {
		switch classify(c) {
		case Exact:
			exact = append(exact, c)
		case Prefix:
			prefix = append(prefix, c)
		case Substring:
			substring = append(substring, c)
		}
	}
	out := make([]Candidate, 0, len(exact)+len(prefix)+len(substring))
	out = append(out, exact...)
	out = append(out, prefix...)
	return append(out, substring...)
}
