package conformance

import (
	"fmt"
	"strings"

	"dmasm/asm"
	"dmasm/compiler"
)

// Result is the outcome of one case.
type Result struct {
	Case   Case
	Passed bool
	Detail string
}

// Run compiles a case and checks it against its expectation. Assembly is
// compared per line with surrounding whitespace ignored, so suite files can
// indent their expected streams freely.
func Run(c Case) Result {
	nodes, err := compiler.CompileSource(c.Code, c.Params)

	if c.Expect.Error != "" {
		if err == nil {
			return Result{Case: c, Detail: "expected an error, compilation succeeded"}
		}
		if !strings.Contains(err.Error(), c.Expect.Error) {
			return Result{Case: c, Detail: fmt.Sprintf("error %q does not contain %q", err, c.Expect.Error)}
		}
		return Result{Case: c, Passed: true}
	}

	if err != nil {
		return Result{Case: c, Detail: fmt.Sprintf("compile: %v", err)}
	}

	got := normalize(asm.Format(nodes))
	want := normalize(c.Expect.Asm)
	if got != want {
		return Result{Case: c, Detail: fmt.Sprintf("got:\n%s\nwant:\n%s", got, want)}
	}
	return Result{Case: c, Passed: true}
}

func normalize(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
