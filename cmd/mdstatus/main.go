package main

import (
	"context"

	"github.com/faizmokh/mdstatus/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
