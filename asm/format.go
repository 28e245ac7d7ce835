package asm

import "strings"

// Format renders a node stream as assembly text: labels flush left with a
// trailing colon, instructions indented by two spaces, one node per line.
func Format(nodes []Node) string {
	var b strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case Label:
			b.WriteString(string(n.Name))
			b.WriteString(":\n")
		case Instruction:
			b.WriteString("  ")
			b.WriteString(n.String())
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Labels returns the names of all label nodes in the stream, in order.
func Labels(nodes []Node) []string {
	var labels []string
	for _, node := range nodes {
		if l, ok := node.(Label); ok {
			labels = append(labels, string(l.Name))
		}
	}
	return labels
}
