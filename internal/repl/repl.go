// Package repl implements the interactive read-type-normalize-print loop.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/errors"
	"github.com/lumen-lang/lumen/internal/pipeline"
	"github.com/lumen-lang/lumen/internal/prelude"
)

// Color functions for pretty output
var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

const prompt = "λ> "

// REPL holds the interactive session state.
type REPL struct {
	ctx     *core.Context
	history []string
	version string
}

// New creates a REPL with the prelude in scope. A broken prelude is a build
// defect, so it is reported and the session starts with an empty context.
func New(version string) *REPL {
	r := &REPL{version: version}

	_, ctx, err := prelude.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("warning"), err)
		ctx = core.NewContext()
	}
	r.ctx = ctx
	return r
}

// Run drives the interactive loop until :quit or EOF.
func (r *REPL) Run() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	r.loadHistory(line)
	defer r.saveHistory(line)

	fmt.Printf("%s %s\n", bold("Lumen"), r.version)
	fmt.Printf("Type %s for help, %s to exit\n\n", cyan(":help"), cyan(":quit"))

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if quit := r.command(input); quit {
				return
			}
			continue
		}

		r.eval(input)
	}
}

// eval handles an ordinary term: infer its type, normalize, print both.
func (r *REPL) eval(input string) {
	value, ty, err := pipeline.NormalizeTerm(r.ctx, []byte(input), "repl")
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Printf("%s %s %s\n", value, dim(":"), green(ty.String()))
}

// command dispatches a `:command`. Returns true to quit.
func (r *REPL) command(input string) bool {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":quit", ":q":
		return true

	case ":help", ":h":
		r.printHelp()

	case ":type", ":t":
		if arg == "" {
			fmt.Printf("usage: %s\n", cyan(":type <expr>"))
			return false
		}
		_, ty, err := pipeline.InferTerm(r.ctx, []byte(arg), "repl")
		if err != nil {
			r.printError(err)
			return false
		}
		fmt.Printf("%s %s %s\n", arg, dim(":"), green(ty.String()))

	case ":norm", ":n":
		if arg == "" {
			fmt.Printf("usage: %s\n", cyan(":norm <expr>"))
			return false
		}
		value, _, err := pipeline.NormalizeTerm(r.ctx, []byte(arg), "repl")
		if err != nil {
			r.printError(err)
			return false
		}
		fmt.Println(value)

	case ":history":
		for i, entry := range r.history {
			fmt.Printf("%s %s\n", dim(fmt.Sprintf("%3d", i+1)), entry)
		}

	default:
		fmt.Printf("%s: unknown command %s\n", red("error"), cmd)
		r.printHelp()
	}
	return false
}

func (r *REPL) printHelp() {
	fmt.Println(bold("Commands:"))
	fmt.Printf("  %s        show this help\n", cyan(":help"))
	fmt.Printf("  %s <expr> infer the type of an expression\n", cyan(":type"))
	fmt.Printf("  %s <expr> normalize an expression\n", cyan(":norm"))
	fmt.Printf("  %s     show session history\n", cyan(":history"))
	fmt.Printf("  %s        exit\n", cyan(":quit"))
	fmt.Println()
	fmt.Println("Anything else is typechecked, normalized and printed.")
}

func (r *REPL) printError(err error) {
	if d, ok := errors.Find(err); ok {
		loc := ""
		if !d.Span.IsZero() {
			loc = dim(fmt.Sprintf(" at %s", d.Span.Start))
		}
		code := red(d.Code)
		if d.Severity == errors.SeverityBug {
			code = red(d.Code + " (elaborator bug)")
		}
		fmt.Printf("%s %s%s\n", code, d.Message, loc)
		return
	}
	fmt.Printf("%s: %v\n", red("error"), err)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lumen_history")
}

func (r *REPL) loadHistory(line *liner.State) {
	path := historyPath()
	if path == "" {
		return
	}
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		_, _ = line.ReadHistory(f)
	}
}

func (r *REPL) saveHistory(line *liner.State) {
	path := historyPath()
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}
