// Command slider presents slide decks in the terminal.
package main

import "github.com/jwulff/slider/internal/cli"

func main() {
	cli.Execute()
}
