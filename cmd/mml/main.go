package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	miniml "github.com/zishkaz/fp2021"
)

const (
	appName     = "mml"
	historyFile = ".miniml_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("MiniML %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", miniml.Version)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(miniml.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`MiniML %s (built %s)

Usage:
  %s run <file.mml>   Run a program and print its final environment.
  %s repl             Start the REPL.
  %s version          Print the compiled version.

`, miniml.Version, miniml.BuildDate, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.mml>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	out, err := miniml.RunSource(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, red(miniml.WrapErrorWithSource(err, string(src)).Error()))
		return 1
	}
	fmt.Println(out)
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	var env *miniml.Env

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			case ":env":
				printEnv(env)
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		env = evalInput(env, code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// evalInput tries the input as a declaration sequence first, falling back
// to a single expression. Declarations update the persistent environment
// and echo it; expressions print their value.
func evalInput(env *miniml.Env, code string) *miniml.Env {
	decls, derr := miniml.ParseProgram(code)
	if derr == nil {
		cur := env
		for _, d := range decls {
			next, err := miniml.EvalDeclaration(cur, d)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(err.Error()))
				return env
			}
			cur = next
		}
		printEnv(cur)
		return cur
	}

	expr, perr := miniml.ParseExpression(code)
	if perr != nil {
		fmt.Fprintln(os.Stderr, red(miniml.WrapErrorWithSource(derr, code).Error()))
		return env
	}
	v, err := miniml.EvalExpression(env, expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return env
	}
	fmt.Println(blue(miniml.FormatValue(&v)))
	return env
}

func printEnv(env *miniml.Env) {
	out, err := miniml.RenderEnvironment(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return
	}
	fmt.Println(green(out))
}

// readByParseProbe accumulates lines until the buffer parses, or fails with
// an error that is not plain end-of-input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, derr := miniml.ParseProgram(src)
		if derr == nil {
			return src, true
		}
		if miniml.IsIncomplete(derr) {
			continue
		}
		// Not a declaration sequence; keep reading only while the input
		// is an unfinished expression.
		if _, perr := miniml.ParseExpression(src); perr != nil && miniml.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
