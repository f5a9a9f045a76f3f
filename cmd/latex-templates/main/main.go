package main

import (
	"context"
	"os"
	"os/signal"

	latextemplates "github.com/arthur-debert/latex-templates/cmd/latex-templates"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := latextemplates.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
