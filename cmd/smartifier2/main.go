// Command smartifier2 rewrites the smart graph attribute and sharded
// _key of ArangoDB vertex and edge data, either in CSV or JSONL form, so
// the data can be imported into a smart graph collection (spec §1).
package main

import (
	"fmt"
	"os"

	"github.com/arangodb-helper/graphutils/internal/cliopts"
	"github.com/arangodb-helper/graphutils/internal/driver"
	"github.com/arangodb-helper/graphutils/internal/exitcode"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/arangodb-helper/graphutils/internal/selftest"
	"github.com/arangodb-helper/graphutils/internal/version"
	flags "github.com/jessevdk/go-flags"
)

const usage = `smartifier2 rewrites vertex and edge data for ArangoDB smart graphs.

Usage:
  smartifier2 vertices [options]
  smartifier2 edges [options]
  smartifier2 --version
  smartifier2 --test
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := logging.NewCLI()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return exitcode.BadUsage
	}

	switch args[0] {
	case "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return exitcode.OK
	case "-v", "--version":
		fmt.Println(version.Banner())
		return exitcode.OK
	case "--test":
		fmt.Println("Running unit tests...")
		if err := selftest.Run(logger); err != nil {
			return exitcode.BadOptions
		}
		fmt.Println("Done.")
		return exitcode.OK
	case "vertices":
		return runVertices(args[1:], logger)
	case "edges":
		return runEdges(args[1:], logger)
	default:
		fmt.Fprintf(os.Stderr, "Need exactly one subcommand 'vertices' or 'edges', got %q.\n", args[0])
		fmt.Fprint(os.Stderr, usage)
		return exitcode.BadSubcmd
	}
}

func runVertices(args []string, logger logging.Logger) int {
	var opts cliopts.VerticesOptions
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			return exitcode.OK
		}
		return exitcode.BadOptions
	}
	if cliopts.ParseBool(opts.RandomizeSmart) {
		logger.Errorf("--randomize-smart is not yet implemented, giving up.")
		return exitcode.Unsupported
	}
	if err := driver.RunVertices(opts, logger); err != nil {
		logger.Errorf("%v", err)
		return exitcode.MissingInput
	}
	return exitcode.OK
}

func runEdges(args []string, logger logging.Logger) int {
	var opts cliopts.EdgesOptions
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			return exitcode.OK
		}
		return exitcode.BadOptions
	}
	if err := driver.RunEdges(opts, logger); err != nil {
		logger.Errorf("%v", err)
		return exitcode.WorkerFailed
	}
	return exitcode.OK
}
