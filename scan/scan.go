// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package scan implements a lexical scanner driven by an ordered table of
// pattern rules.
//
// A Scanner is built once from a list of rules, each pairing a regular
// expression with a handler. At each offset of the input the rules are tried
// in list order and the first rule whose pattern matches wins, even if a
// later rule would match more of the input. The matching rule's handler turns
// the match into a value and may move the scan position past the text its
// pattern matched, for example to consume a nested structure.
//
//	s := scan.MustNew(
//	   scan.Rule[string, any]{Pattern: `[a-z]+`, Handler: word},
//	   scan.Rule[string, any]{Pattern: `\s+`}, // skip
//	)
//	it := s.Scan([]rune(input), 0, nil)
//	for it.Next() {
//	   log.Printf("Value %v ends at %d", it.Value(), it.End())
//	}
//	if err := it.Err(); err != nil {
//	   log.Fatalf("Scan failed: %v", err)
//	}
//
// Offsets are indexes into the rune slice being scanned, so they count
// Unicode code points rather than bytes.
//
// A Scanner holds no per-scan state and may be shared by concurrent callers.
package scan

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// A Handler converts a match into a value. It returns the value and the
// offset at which scanning should resume. A negative offset resumes at the
// end of the match. If a handler reports an error, scanning stops and the
// error is reported by the iterator.
//
// The ctx argument is the value passed to [Scanner.Scan].
type Handler[T, C any] func(m *Match, ctx C) (T, int, error)

// A Rule pairs a regular expression with a handler.
// A rule with a nil Handler is a skip rule: its matches are consumed without
// producing a value.
type Rule[T, C any] struct {
	Pattern string
	Handler Handler[T, C]
}

// A Scanner matches an ordered set of rules against input text.
type Scanner[T, C any] struct {
	re    *regexp2.Regexp // all rules, as one anchored alternation
	rules []rule[T, C]
}

type rule[T, C any] struct {
	group  string          // name of the rule's group in the alternation
	re     *regexp2.Regexp // the rule pattern alone, for capture groups
	handle Handler[T, C]
}

// New constructs a Scanner from the given rules. The rules are tried in the
// order given. It reports an error if no rules are given or if any pattern
// is not a valid regular expression.
func New[T, C any](rules ...Rule[T, C]) (*Scanner[T, C], error) {
	if len(rules) == 0 {
		return nil, errors.New("no rules")
	}
	s := &Scanner[T, C]{rules: make([]rule[T, C], len(rules))}
	alts := make([]string, len(rules))
	for i, r := range rules {
		own, err := regexp2.Compile(`\G(?:`+r.Pattern+`)`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		name := "r" + strconv.Itoa(i)
		s.rules[i] = rule[T, C]{group: name, re: own, handle: r.Handler}
		alts[i] = "(?<" + name + ">" + r.Pattern + ")"
	}

	// Only the named per-rule groups capture in the combined pattern, so the
	// groups of the individual patterns cannot collide with each other.
	re, err := regexp2.Compile(`\G(?:`+strings.Join(alts, "|")+`)`, regexp2.ExplicitCapture)
	if err != nil {
		return nil, fmt.Errorf("combining rules: %w", err)
	}
	s.re = re
	return s, nil
}

// MustNew is as New, but panics if the scanner cannot be constructed.
func MustNew[T, C any](rules ...Rule[T, C]) *Scanner[T, C] {
	s, err := New(rules...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len reports the number of rules in s.
func (s *Scanner[T, C]) Len() int { return len(s.rules) }

// Scan returns an iterator over the values matched in text beginning at
// offset pos. The ctx value is passed to each handler.
func (s *Scanner[T, C]) Scan(text []rune, pos int, ctx C) *Iter[T, C] {
	return &Iter[T, C]{s: s, text: text, pos: pos, end: pos, ctx: ctx}
}

// match reports the first rule matching text at pos, or nil if none does.
func (s *Scanner[T, C]) match(text []rune, pos int) (*Match, error) {
	if pos >= len(text) {
		return nil, nil // any match here would be empty
	}
	m, err := s.re.FindRunesMatchStartingAt(text, pos)
	if err != nil || m == nil {
		return nil, err
	}
	for i, r := range s.rules {
		if g := m.GroupByName(r.group); g != nil && len(g.Captures) != 0 {
			return &Match{
				rule: i,
				pos:  m.Index,
				end:  m.Index + m.Length,
				src:  text,
				re:   r.re,
			}, nil
		}
	}
	return nil, fmt.Errorf("match at %d has no rule", pos)
}

// An Iter is an iterator over the values produced by a scan.
//
// Call Next to advance to the next value; Next reports false when no rule
// matches at the current offset, when a match does not advance the offset,
// or when a handler fails. Err reports the error from a failed handler.
type Iter[T, C any] struct {
	s    *Scanner[T, C]
	text []rune
	ctx  C

	pos  int // offset of the next match
	end  int // end offset of the current value
	val  T
	err  error
	done bool
}

// Next advances it to the next value, and reports whether one was found.
func (it *Iter[T, C]) Next() bool {
	var zero T
	it.val = zero
	for !it.done {
		m, err := it.s.match(it.text, it.pos)
		if err != nil {
			it.err, it.done = err, true
			break
		} else if m == nil || m.end == it.pos {
			it.done = true
			break
		}

		r := it.s.rules[m.rule]
		if r.handle == nil {
			it.pos = m.end
			continue // skip rule
		}
		v, next, err := r.handle(m, it.ctx)
		if err != nil {
			it.err, it.done = err, true
			break
		}
		if next < 0 {
			next = m.end
		}
		it.val, it.end, it.pos = v, next, next
		return true
	}
	return false
}

// Value returns the current value. It is the zero value of T if Next has not
// been called or reported false.
func (it *Iter[T, C]) Value() T { return it.val }

// End returns the offset immediately after the current value.
func (it *Iter[T, C]) End() int { return it.end }

// Pos returns the offset at which the next match will be attempted.
func (it *Iter[T, C]) Pos() int { return it.pos }

// Err returns the error that stopped the iterator, if any.
func (it *Iter[T, C]) Err() error { return it.err }

// All returns a sequence of value and end-offset pairs for the remaining
// values of it. After the sequence ends, check Err for a handler error.
func (it *Iter[T, C]) All() iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		for it.Next() {
			if !yield(it.Value(), it.End()) {
				return
			}
		}
	}
}

// A Match records the match of a rule at a location in the input.
// A Match is only valid for the duration of the handler call that receives it.
type Match struct {
	rule     int
	pos, end int
	src      []rune
	re       *regexp2.Regexp

	groups []*regexp2.Group // populated on demand
}

// Rule reports the index of the rule that matched.
func (m *Match) Rule() int { return m.rule }

// Pos reports the offset of the start of the match.
func (m *Match) Pos() int { return m.pos }

// End reports the offset immediately after the match.
func (m *Match) End() int { return m.end }

// Source returns the complete input being scanned. Handlers that consume
// nested structure read from here past the end of the match.
func (m *Match) Source() []rune { return m.src }

// Text returns the matched text.
func (m *Match) Text() []rune { return m.src[m.pos:m.end] }

// String returns the matched text as a string.
func (m *Match) String() string { return string(m.Text()) }

// Group reports the text of capture group i of the matching rule's pattern,
// where group 0 is the entire match. It reports false if the group did not
// participate in the match or does not exist.
func (m *Match) Group(i int) (string, bool) {
	if m.groups == nil {
		gm, err := m.re.FindRunesMatchStartingAt(m.src, m.pos)
		if err != nil || gm == nil {
			return "", false
		}
		gs := gm.Groups()
		m.groups = make([]*regexp2.Group, len(gs))
		for j := range gs {
			m.groups[j] = &gs[j]
		}
	}
	if i < 0 || i >= len(m.groups) || len(m.groups[i].Captures) == 0 {
		return "", false
	}
	return m.groups[i].String(), true
}
