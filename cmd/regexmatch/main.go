// Command regexmatch compiles a pattern into a DFA and matches inputs with it.
package main

import (
	"flag"
	"os"

	"automata/internal/cli"
	"automata/internal/config"
)

func main() {
	cfg, err := cli.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := cli.Run(cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("regexmatch: %v", err)
	}
}
