package main

import (
	"fmt"
	"os"

	"github.com/sadopc/qtrack/pkg/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			serveCmd(os.Args[2:])
			return
		case "list":
			listCmd(os.Args[2:])
			return
		case "clear":
			clearCmd(os.Args[2:])
			return
		case "export":
			exportCmd(os.Args[2:])
			return
		case "browse":
			browseCmd(os.Args[2:])
			return
		case "completion":
			completionCmd(os.Args[2:])
			return
		case "version", "--version":
			fmt.Printf("qtrack %s (%s) built %s\n", version.Version, version.Commit, version.Date)
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}
	serveCmd(os.Args[1:])
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `qtrack - capture and inspect HTTP requests

Usage:
  qtrack [flags]                   Run the server (same as 'qtrack serve')
  qtrack <command> [flags]         Run a subcommand

Commands:
  serve       Capture requests on /track-query and serve the views
  list        Print the captured log
  clear       Empty the captured log
  export      Export the log as HAR or cURL commands
  browse      Browse the log in the terminal
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

Run 'qtrack <command> --help' for more information about a command.
`)
}
