// Command sweeper plays minesweeper in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-sweeper/console"
)

func main() {
	c := console.New(console.Config{
		In:  os.Stdin,
		Out: os.Stdout,
	})

	if err := c.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
