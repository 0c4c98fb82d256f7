package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/qtrack/internal/core/record"
	"github.com/sadopc/qtrack/internal/ui/theme"
)

func listCmd(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	sf := addStoreFlags(fs)
	outputFlag := fs.String("output", "text", "Output format: text, json")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qtrack list [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Print the captured log, oldest first.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	switch *outputFlag {
	case "text", "json":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid output format %q (must be text or json)\n", *outputFlag)
		os.Exit(2)
	}

	cfg := sf.load()
	ctx := context.Background()
	store := mustOpenStore(ctx, cfg)
	defer store.Close()

	records, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if *outputFlag == "json" {
		err = writeListJSON(os.Stdout, records)
	} else {
		writeListText(os.Stdout, records, theme.NewStyles(theme.Resolve(cfg.Theme)), time.Now())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func writeListJSON(w io.Writer, records []record.QueryRecord) error {
	if records == nil {
		records = []record.QueryRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Queries []record.QueryRecord `json:"queries"`
		Count   int                  `json:"count"`
	}{records, len(records)})
}

func writeListText(w io.Writer, records []record.QueryRecord, styles theme.Styles, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(w, styles.Hint.Render("No queries tracked."))
		return
	}
	for _, rec := range records {
		when := rec.Timestamp
		if t, ok := rec.Time(); ok {
			when = humanize.RelTime(t, now, "ago", "from now")
		}
		client := rec.ClientIPString()
		if client == "" {
			client = "-"
		}
		method := styles.MethodStyle(rec.Method).Render(fmt.Sprintf("%-7s", rec.Method))
		fmt.Fprintf(w, "%s %s %s %s %s\n",
			styles.Muted.Render(fmt.Sprintf("%-16s", when)),
			method,
			rec.URL,
			styles.Muted.Render(client),
			styles.Hint.Render(rec.QueryID),
		)
	}
	fmt.Fprintf(w, "\n%d queries\n", len(records))
}
