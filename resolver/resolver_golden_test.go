package resolver

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/lexer"
	"github.com/amoghasbhardwaj/slang/parser"
)

// TestResolverGoldenLabels snapshots the function/class label table produced
// for a small program exercising nested functions and a subclass, so a
// regression in label generation or ordering shows up as a snapshot diff.
func TestResolverGoldenLabels(t *testing.T) {
	src := `
class Shape {
  area() {
    return 0;
  }
}
class Circle < Shape {
  init(radius) {
    this.radius = radius;
  }
  area() {
    fun square(x) {
      return x * x;
    }
    return 3 * square(this.radius);
  }
}
`
	accum := errors.NewAccumulator()
	tokens := lexer.New(src, accum).ScanTokens()
	statements := parser.New(tokens, accum).Parse()
	if accum.HadCompileError() {
		t.Fatalf("unexpected compile error")
	}

	r := New(accum)
	r.Resolve(statements)
	if accum.HadCompileError() {
		t.Fatalf("unexpected resolve error")
	}

	names := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		names = append(names, l.Name)
	}
	snaps.MatchSnapshot(t, "label_names", names)
}
