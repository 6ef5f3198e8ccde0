// Command nnscan finds the most cosine-similar vector for every vector of
// a batch.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env carries what every subcommand needs.
type env struct {
	configPath string
	stdout     io.Writer
	stderr     io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	e := &env{stdout: stdout, stderr: stderr}

	// Global flags come before the subcommand.
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-h", "-help", "--help":
			printUsage(stdout)
			return flag.ErrHelp
		case "-v", "-version", "--version":
			fmt.Fprintf(stdout, "nnscan version %s\n", version)
			return nil
		case "-config", "--config":
			if len(args) < 2 {
				return errors.New("-config requires a path")
			}
			e.configPath = args[1]
			args = args[2:]
		default:
			printUsage(stderr)
			return fmt.Errorf("unknown global flag: %s", args[0])
		}
	}

	if len(args) == 0 {
		printUsage(stderr)
		return errors.New("no subcommand specified")
	}

	switch args[0] {
	case "scan":
		return cmdScan(ctx, e, args[1:])
	case "gen":
		return cmdGen(ctx, e, args[1:])
	case "info":
		return cmdInfo(e, args[1:])
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: nnscan [-config <path>] <command> [flags]

Commands:
  scan   Find the most similar vector for every vector of a batch
  gen    Write a random batch
  info   Print platform and kernel information

Run 'nnscan <command> -h' for command flags.
`)
}
