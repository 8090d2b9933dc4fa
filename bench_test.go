package sjson_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/sjson"
)

// benchInput returns a document of n payload-like records.
func benchInput(n int) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := range n {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, `{"user": "user-%d", "message": "hello\tworld é %d", "n": %d, "f": %d.5, "ok": true}`, i, i, i, i)
	}
	sb.WriteString("]")
	return sb.String()
}

func BenchmarkDecode(b *testing.B) {
	input := benchInput(500)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Std", func(b *testing.B) {
		for b.Loop() {
			var v any
			if err := json.Unmarshal([]byte(input), &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Decode", func(b *testing.B) {
		for b.Loop() {
			if _, err := sjson.Decode(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	v, err := sjson.Decode(benchInput(500))
	if err != nil {
		b.Fatalf("Decode: %v", err)
	}
	var enc sjson.Encoder

	b.Run("Encode", func(b *testing.B) {
		for b.Loop() {
			if _, err := enc.Encode(v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Chunks", func(b *testing.B) {
		for b.Loop() {
			n := 0
			for chunk, err := range enc.Chunks(v) {
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
				n += len(chunk)
			}
			if n == 0 {
				b.Fatal("No output")
			}
		}
	})
}
