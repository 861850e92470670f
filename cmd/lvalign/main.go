// Command lvalign aligns token sequences with an all-paths Viterbi grid.
package main

import "github.com/katalvlaran/lvalign/internal/cli"

func main() {
	cli.Execute()
}
