package sjson

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// A LineCol describes the line number and column of a location in source
// text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // character offset of column in line, 1-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%s-%d", loc.First, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// locate computes the location of the span from pos to end in src.
func locate(src []rune, pos, end int) Location {
	return Location{
		Span:  Span{Pos: pos, End: end},
		First: lineCol(src, pos),
		Last:  lineCol(src, end),
	}
}

// lineCol computes the line and column of offset pos in src by counting the
// newlines that precede it.
func lineCol(src []rune, pos int) LineCol {
	pos = min(pos, len(src))
	line, last := 1, -1
	for i, r := range src[:pos] {
		if r == '\n' {
			line++
			last = i
		}
	}
	return LineCol{Line: line, Column: pos - last}
}
