package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/errors"
	"github.com/lumen-lang/lumen/internal/pipeline"
	"github.com/lumen-lang/lumen/internal/prelude"
	"github.com/lumen-lang/lumen/internal/repl"
)

var (
	// Version info - set by ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	// Color output
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		jsonFlag    = flag.Bool("json", false, "Emit diagnostics as JSON")
		noPrelude   = flag.Bool("no-prelude", false, "Check without the prelude in scope")
		elaborated  = flag.Bool("elaborated", false, "Print the elaborated module after checking")
	)

	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)

	switch command {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file or directory argument\n", red("Error"))
			fmt.Println("Usage: lumen check <file.lum | project-dir>")
			os.Exit(1)
		}
		checkPath(flag.Arg(1), *jsonFlag, *noPrelude, *elaborated)

	case "repl":
		repl.New(Version).Run()

	case "version":
		printVersion()

	case "help":
		printHelp()

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func checkPath(path string, asJSON, noPrelude, printElaborated bool) {
	ctx := core.NewContext()
	if !noPrelude {
		var err error
		if _, ctx, err = prelude.Load(); err != nil {
			fail(err, asJSON)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		fail(err, asJSON)
	}

	var modules []*core.Module
	if info.IsDir() {
		modules, _, err = pipeline.CheckProject(ctx, path)
	} else {
		var module *core.Module
		module, _, err = pipeline.CheckFile(ctx, path)
		modules = []*core.Module{module}
	}
	if err != nil {
		fail(err, asJSON)
	}

	for _, module := range modules {
		fmt.Printf("%s %s (%d definitions)\n", green("ok"), bold(module.Name), len(module.Definitions))
		if printElaborated {
			fmt.Println(dim(module.String()))
		}
	}
}

func fail(err error, asJSON bool) {
	if d, ok := errors.Find(err); ok {
		if asJSON {
			out, jerr := d.JSON(false)
			if jerr != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), jerr)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, out)
			os.Exit(1)
		}
		loc := ""
		if !d.Span.IsZero() {
			loc = fmt.Sprintf(" at %s", d.Span.Start)
		}
		fmt.Fprintf(os.Stderr, "%s [%s]%s: %s\n", red("Error"), d.Code, loc, d.Message)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("Lumen %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("Lumen - a small dependently typed language"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lumen <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check <path>   Typecheck a module file or a project directory")
	fmt.Println("  repl           Start an interactive session")
	fmt.Println("  version        Print version information")
	fmt.Println("  help           Show this help")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
