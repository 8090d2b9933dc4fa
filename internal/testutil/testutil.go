// Package testutil defines support code for unit tests.
package testutil

import (
	"math"

	"github.com/creachadair/sjson"
	"github.com/google/go-cmp/cmp"
)

// ValueOpts are options for cmp.Diff and cmp.Equal on sjson values. A NaN
// Float compares equal to another NaN, so that decoded NaN constants can be
// checked with the rest of a value.
var ValueOpts = cmp.Options{
	cmp.Comparer(func(a, b sjson.Float) bool {
		if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
			return math.IsNaN(float64(a)) && math.IsNaN(float64(b))
		}
		return a == b
	}),
}
