package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"dmasm/asm"
	"dmasm/compiler"
)

func main() {
	expr := flag.String("e", "", "Expression to compile (e.g., \"a?.b + 1\")")
	params := flag.String("params", "", "Comma-separated parameter names the expression may reference")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-params a,b] -e EXPRESSION\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-params a,b] EXPRESSION\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	code := *expr
	if code == "" && flag.NArg() > 0 {
		code = strings.Join(flag.Args(), " ")
	}
	if code == "" {
		flag.Usage()
		os.Exit(2)
	}

	var names []string
	if *params != "" {
		for _, name := range strings.Split(*params, ",") {
			names = append(names, strings.TrimSpace(name))
		}
	}

	nodes, err := compiler.CompileSource(code, names)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmasm: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(asm.Format(nodes))
}
