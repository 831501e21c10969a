// nbt inspects NBT files.
//
//	nbt dump [--raw] [--codec NAME] FILE
//	nbt export [--format json|yaml] [--codec NAME] FILE
//	nbt hash [--algo sha256|sha512|blake2b|blake3] [--codec NAME] FILE
//
// Compression is detected from the file. --codec selects the codec of
// Serializable payloads and defaults to msgpack.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// command is one subcommand of the CLI.
type command struct {
	name    string
	summary string
	flags   func(*pflag.FlagSet) func(ctx context.Context, path string, out io.Writer) error
}

var commands = []command{
	{"dump", "print the tag tree", dumpCommand},
	{"export", "convert the root compound to JSON or YAML", exportCommand},
	{"hash", "print a fingerprint of the tag tree", hashCommand},
}

var errUsage = errors.New("usage: nbt <dump|export|hash> [flags] FILE")

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(out)
		return nil
	}

	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}

		flagSet := pflag.NewFlagSet("nbt "+cmd.name, pflag.ContinueOnError)
		flagSet.SetOutput(out)
		exec := cmd.flags(flagSet)

		if err := flagSet.Parse(args[1:]); err != nil {
			if err == pflag.ErrHelp {
				return nil
			}
			return err
		}
		if flagSet.NArg() != 1 {
			return fmt.Errorf("nbt %s: expected exactly one FILE argument, got %d", cmd.name, flagSet.NArg())
		}
		return exec(ctx, flagSet.Arg(0), out)
	}
	return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, errUsage.Error())
	fmt.Fprintln(out)
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", cmd.name, cmd.summary)
	}
}
