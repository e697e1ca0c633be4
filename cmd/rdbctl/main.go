// Command rdbctl is a small command-line client for exercising a store
// directly from the shell: put, get, delete, link, and gc against a
// data directory.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iamNilotpal/rdb/pkg/options"
	"github.com/iamNilotpal/rdb/pkg/rdb"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	command, rest := args[0], args[1:]

	flagSet := flag.NewFlagSet(command, flag.ContinueOnError)
	dataDir := flagSet.StringP("dir", "d", "", "data directory (required)")

	if err := flagSet.Parse(rest); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	if *dataDir == "" {
		fmt.Fprintln(os.Stderr, "error: --dir is required")
		return 1
	}

	db, err := rdb.Open(
		"rdbctl",
		options.WithDataDir(*dataDir),
		options.WithCreateIfMissing(true),
		options.WithIndexType(options.IndexTypeHashMap),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer db.Close()

	positional := flagSet.Args()

	switch command {
	case "get":
		return cmdGet(db, positional)
	case "put":
		return cmdPut(db, positional)
	case "delete":
		return cmdDelete(db, positional)
	case "link":
		return cmdLink(db, positional)
	case "gc":
		return cmdGc(db)
	default:
		fmt.Fprintln(os.Stderr, "error: unknown command", command)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: rdbctl <get|put|delete|link|gc> --dir <path> [args...]")
}

func cmdGet(db *rdb.DB, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: rdbctl get --dir <path> <key>")
		return 1
	}

	value, err := db.Get(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	if value == nil {
		fmt.Fprintln(os.Stderr, "key not found")
		return 1
	}

	os.Stdout.Write(value)
	fmt.Println()
	return 0
}

func cmdPut(db *rdb.DB, args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rdbctl put --dir <path> <key> <value>")
		return 1
	}
	if err := db.Put(args[0], []byte(args[1])); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func cmdDelete(db *rdb.DB, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: rdbctl delete --dir <path> <key>")
		return 1
	}
	if err := db.Delete(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func cmdLink(db *rdb.DB, args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rdbctl link --dir <path> <existing> <alias>")
		return 1
	}
	if err := db.Link(args[0], args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func cmdGc(db *rdb.DB) int {
	if err := db.Gc(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
