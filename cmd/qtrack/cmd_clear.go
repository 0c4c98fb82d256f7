package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sadopc/qtrack/internal/query"
)

func clearCmd(args []string) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	sf := addStoreFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qtrack clear [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Empty the captured log.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	ctx := context.Background()
	store := mustOpenStore(ctx, sf.load())
	defer store.Close()

	if err := store.Clear(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(query.ClearedMessage)
}
