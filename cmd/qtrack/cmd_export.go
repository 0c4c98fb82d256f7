package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sadopc/qtrack/internal/core/record"
	"github.com/sadopc/qtrack/internal/export"
	harexport "github.com/sadopc/qtrack/internal/export/har"
	"github.com/sadopc/qtrack/pkg/version"
)

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	sf := addStoreFlags(fs)
	formatFlag := fs.String("format", "har", "Export format: har, curl")
	outputFlag := fs.String("output", "", "Output file path (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qtrack export [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Export the captured log.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  qtrack export --output queries.har\n")
		fmt.Fprintf(os.Stderr, "  qtrack export --format curl\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	switch *formatFlag {
	case "har", "curl":
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format %q (use har or curl)\n", *formatFlag)
		os.Exit(2)
	}

	ctx := context.Background()
	store := mustOpenStore(ctx, sf.load())
	defer store.Close()

	records, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	var out io.Writer = os.Stdout
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := writeExport(out, records, *formatFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFlag != "" {
		fmt.Fprintf(os.Stderr, "Exported %d queries to %s\n", len(records), *outputFlag)
	}
}

func writeExport(w io.Writer, records []record.QueryRecord, format string) error {
	switch format {
	case "curl":
		for i, rec := range records {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "# %s %s %s\n", rec.Timestamp, rec.Method, rec.QueryID)
			fmt.Fprintln(w, export.AsCurl(rec))
		}
		return nil
	case "har":
		data, err := harexport.Export(records, version.Version)
		if err != nil {
			return fmt.Errorf("exporting har: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
