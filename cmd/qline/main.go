package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/kobzarvs/qline/internal/app"
)

func main() {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "qline: stdin is not a terminal")
		os.Exit(1)
	}
	if err := app.New(os.Args[1:]).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "qline:", err)
		os.Exit(1)
	}
}
