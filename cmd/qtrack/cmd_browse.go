package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sadopc/qtrack/internal/ui/browse"
	"github.com/sadopc/qtrack/internal/ui/theme"
)

func browseCmd(args []string) {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	sf := addStoreFlags(fs)
	themeFlag := fs.String("theme", "", "Theme name (default from config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qtrack browse [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Browse the captured log in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Keys: enter detail, r reload, y copy as cURL, q quit\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg := sf.load()
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	store := mustOpenStore(context.Background(), cfg)
	defer store.Close()

	if err := browse.Run(store, theme.Resolve(cfg.Theme)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
