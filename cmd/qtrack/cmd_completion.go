package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd(args []string) {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qtrack completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  qtrack completion bash > /usr/local/etc/bash_completion.d/qtrack\n")
		fmt.Fprintf(os.Stderr, "  qtrack completion zsh > \"${fpath[1]}/_qtrack\"\n")
		fmt.Fprintf(os.Stderr, "  qtrack completion fish > ~/.config/fish/completions/qtrack.fish\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(2)
	}

	script, ok := completionScript(fs.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (use bash, zsh, or fish)\n", fs.Arg(0))
		os.Exit(2)
	}
	fmt.Print(script)
}

func completionScript(shell string) (string, bool) {
	switch shell {
	case "bash":
		return generateBashCompletion(), true
	case "zsh":
		return generateZshCompletion(), true
	case "fish":
		return generateFishCompletion(), true
	default:
		return "", false
	}
}

func generateBashCompletion() string {
	return `# bash completion for qtrack                             -*- shell-script -*-

_qtrack() {
    local cur prev words cword
    _init_completion || return

    local commands="serve list clear export browse completion version help"

    local store_flags="--config --backend --data"
    local serve_flags="${store_flags} --port --host"
    local list_flags="${store_flags} --output"
    local export_flags="${store_flags} --format --output"
    local browse_flags="${store_flags} --theme"

    local backends="file sqlite redis memory"
    local list_formats="text json"
    local export_formats="har curl"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        return
    fi

    local command="${words[1]}"

    case "${prev}" in
        --backend)
            COMPREPLY=($(compgen -W "${backends}" -- "${cur}"))
            return
            ;;
        --output)
            case "${command}" in
                list)
                    COMPREPLY=($(compgen -W "${list_formats}" -- "${cur}"))
                    return
                    ;;
                *)
                    _filedir
                    return
                    ;;
            esac
            ;;
        --format)
            COMPREPLY=($(compgen -W "${export_formats}" -- "${cur}"))
            return
            ;;
        --config|--data)
            _filedir
            return
            ;;
        --port|--host|--theme)
            return
            ;;
    esac

    case "${command}" in
        serve)
            COMPREPLY=($(compgen -W "${serve_flags}" -- "${cur}"))
            ;;
        list)
            COMPREPLY=($(compgen -W "${list_flags}" -- "${cur}"))
            ;;
        clear)
            COMPREPLY=($(compgen -W "${store_flags}" -- "${cur}"))
            ;;
        export)
            COMPREPLY=($(compgen -W "${export_flags}" -- "${cur}"))
            ;;
        browse)
            COMPREPLY=($(compgen -W "${browse_flags}" -- "${cur}"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
    esac
}

complete -F _qtrack qtrack
`
}

func generateZshCompletion() string {
	return `#compdef qtrack

# zsh completion for qtrack

_qtrack() {
    local -a commands
    commands=(
        'serve:Capture requests on /track-query and serve the views'
        'list:Print the captured log'
        'clear:Empty the captured log'
        'export:Export the log as HAR or cURL commands'
        'browse:Browse the log in the terminal'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    local -a store_args
    store_args=(
        '--config[Config file]:config file:_files'
        '--backend[Store backend]:backend:(file sqlite redis memory)'
        '--data[Log file or database path]:path:_files'
    )

    _arguments -C \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'qtrack commands' commands
            ;;
        args)
            case $words[1] in
                serve)
                    _arguments $store_args \
                        '--port[Port to listen on]:port:' \
                        '--host[Interface to bind]:host:'
                    ;;
                list)
                    _arguments $store_args \
                        '--output[Output format]:format:(text json)'
                    ;;
                clear)
                    _arguments $store_args
                    ;;
                export)
                    _arguments $store_args \
                        '--format[Export format]:format:(har curl)' \
                        '--output[Output file path]:output file:_files'
                    ;;
                browse)
                    _arguments $store_args \
                        '--theme[Theme name]:theme:'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_qtrack "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for qtrack

# Disable file completions by default
complete -c qtrack -f

# Subcommands
complete -c qtrack -n '__fish_use_subcommand' -a serve -d 'Capture requests on /track-query and serve the views'
complete -c qtrack -n '__fish_use_subcommand' -a list -d 'Print the captured log'
complete -c qtrack -n '__fish_use_subcommand' -a clear -d 'Empty the captured log'
complete -c qtrack -n '__fish_use_subcommand' -a export -d 'Export the log as HAR or cURL commands'
complete -c qtrack -n '__fish_use_subcommand' -a browse -d 'Browse the log in the terminal'
complete -c qtrack -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c qtrack -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c qtrack -n '__fish_use_subcommand' -a help -d 'Show help message'

# store flags
complete -c qtrack -n '__fish_seen_subcommand_from serve list clear export browse' -l config -d 'Config file' -rF
complete -c qtrack -n '__fish_seen_subcommand_from serve list clear export browse' -l backend -d 'Store backend' -ra 'file sqlite redis memory'
complete -c qtrack -n '__fish_seen_subcommand_from serve list clear export browse' -l data -d 'Log file or database path' -rF

# serve flags
complete -c qtrack -n '__fish_seen_subcommand_from serve' -l port -d 'Port to listen on' -r
complete -c qtrack -n '__fish_seen_subcommand_from serve' -l host -d 'Interface to bind' -r

# list flags
complete -c qtrack -n '__fish_seen_subcommand_from list' -l output -d 'Output format' -ra 'text json'

# export flags
complete -c qtrack -n '__fish_seen_subcommand_from export' -l format -d 'Export format' -ra 'har curl'
complete -c qtrack -n '__fish_seen_subcommand_from export' -l output -d 'Output file path' -rF

# browse flags
complete -c qtrack -n '__fish_seen_subcommand_from browse' -l theme -d 'Theme name' -r

# completion - shell names
complete -c qtrack -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
