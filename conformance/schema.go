// Package conformance runs YAML-defined compilation suites against the
// compiler. Each suite file pairs source expressions with the assembly they
// must produce, or with the error they must fail with.
package conformance

// Suite is one YAML suite file.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Tests       []Case `yaml:"tests"`
}

// Case is a single compilation check.
type Case struct {
	Name   string      `yaml:"name"`
	Code   string      `yaml:"code"`
	Params []string    `yaml:"params,omitempty"`
	Skip   string      `yaml:"skip,omitempty"`
	Expect Expectation `yaml:"expect"`
}

// Expectation holds exactly one of Asm and Error. Asm is the full expected
// stream; Error is a substring of the expected failure message.
type Expectation struct {
	Asm   string `yaml:"asm,omitempty"`
	Error string `yaml:"error,omitempty"`
}
