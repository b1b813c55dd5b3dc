// main.go - ff entry point: flag parsing, filter-chain assembly, and
// wiring the three search-pipeline stages.
//
// Grounded on _examples/original_source/src/main.rs (positional
// DIRECTORY/PATTERN handling, the --color auto tty probe, the single
// "--exec PROG ARG... [;]" terminator convention) and
// _examples/opencoff-go-fio/testsuite/main.go for the
// opencoff/pflag.NewFlagSet/BoolVarP/Parse/PrintDefaults idiom this
// CLI follows.

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/opencoff/ff/internal/app"
	"github.com/opencoff/ff/internal/cancel"
	"github.com/opencoff/ff/internal/exec"
	"github.com/opencoff/ff/internal/filter"
	"github.com/opencoff/ff/internal/output"
	"github.com/opencoff/ff/internal/pathutil"
	"github.com/opencoff/ff/internal/pipeline"
	"github.com/opencoff/ff/internal/sorter"
	"github.com/opencoff/ff/internal/walk"
)

const z = "ff"

func main() {
	cli := parseArgs(os.Args[1:])

	fc, err := app.LoadFileConfig(cli.configFile)
	if err != nil {
		die("%s", err)
	}
	cli.applyFileDefaults(fc)

	diag, err := app.Install(cli.logFile, cli.verbose)
	if err != nil {
		die("%s", err)
	}
	defer diag.Close()

	root, err := resolveRoot(cli.root, cli.absolutePath)
	if err != nil {
		die("%s", err)
	}

	chain, err := buildChain(cli)
	if err != nil {
		die("%s", err)
	}
	if cli.verbose {
		fmt.Fprintln(os.Stderr, chain.Tree())
	}

	threads := cli.threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	tProducer, tConsumer := pipeline.Budget(threads, cli.sortPath)

	walkCfg := walk.Config{
		Roots:          []string{root},
		AllowHidden:    cli.all,
		ReadIgnore:     !cli.noIgnore,
		FollowSymlink:  cli.follow,
		SameFilesystem: cli.mount,
		MaxDepth:       cli.maxDepth,
		Threads:        tProducer,
		Chain:          chain,
		FilterConfig: filter.Config{
			MatchFullPath:  cli.absolutePath,
			NullTerminator: cli.print0,
		},
	}

	// Installed here (rather than left to pipeline.Run) so the
	// --multiplex stdin read below can be cancel-aware too: a slow or
	// interactive stdin must not stall shutdown on SIGINT.
	cf := &cancel.Flag{}
	stopSignals := pipeline.InstallSignalHandler(cf)
	defer stopSignals()

	pcfg := pipeline.Config{
		Walk:    walkCfg,
		Threads: threads,
		Sorter: sorter.Config{
			SortPath:       cli.sortPath,
			IsTTY:          isStdoutTTY(),
			MaxBufferTime:  cli.maxBufferTime,
			SingleConsumer: len(cli.execArgv) == 0 || tConsumer == 1,
		},
		PrintWarn: filter.Warn,
		Cancel:    cf,
	}

	if len(cli.execArgv) > 0 {
		var broadcast []byte
		if cli.multiplex {
			data, err := readStdinCancelAware(cf)
			if err != nil {
				die("reading stdin for --multiplex: %s", err)
			}
			broadcast = data
		}
		pcfg.ExecConfig = &exec.Config{
			Template:      exec.NewTemplate(cli.execArgv),
			Threads:       tConsumer,
			BroadcastData: broadcast,
			Warn:          filter.Warn,
		}
	} else {
		useColor := app.ResolveColor(cli.colorMode, os.Stdout.Fd())
		w := app.OutputWriter(os.Stdout, useColor)
		pcfg.Printer = output.NewPrinter(w, useColor, app.Palette(), nil)
		pcfg.Printer.Unicode = cli.unicode
	}

	result := pipeline.Run(pcfg)
	for _, e := range result.Errors {
		filter.Warn("%s", e)
	}
	os.Exit(result.ExitCode)
}

func resolveRoot(root string, absolute bool) (string, error) {
	if root == "" {
		root = "."
	}
	fi, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%s: %w", root, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s: not a directory", root)
	}
	if absolute {
		return pathutil.ToAbsolutePath(root)
	}
	return root, nil
}
