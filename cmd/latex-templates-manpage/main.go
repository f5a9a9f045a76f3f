package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	latextemplates "github.com/arthur-debert/latex-templates/cmd/latex-templates"
	"github.com/arthur-debert/latex-templates/internal/version"
)

func main() {
	rootCmd := latextemplates.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "LATEX-TEMPLATES",
		Section: "1",
		Source:  "latex-templates " + version.Version,
		Manual:  "latex-templates manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
