// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command hortus is the entry point of the botanical garden front-end.
//
// It runs either the local web shell (hortus serve) or one-shot commands
// against the garden API. Both share the persisted session.
//
// No business logic lives here. All wiring happens in internal/app.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/taibuivan/hortus/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
