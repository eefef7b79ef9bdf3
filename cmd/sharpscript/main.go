// Command sharpscript is the SharpScript CLI: script runner and REPL.
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

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"

	sharpscript "github.com/Hrpavi7/SharpScript"
)

const (
	appName     = "sharpscript"
	version     = "0.3.0"
	historyFile = ".sharpscript_history"
	promptMain  = ">>> "
)

var (
	errColor   = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	valColor   = color.New(color.FgBlue)
	helpBanner = fmt.Sprintf("SharpScript %s REPL\nCtrl+D exits. Type :help for REPL commands.", version)
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl())
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		usage()
	default:
		// `sharpscript file.sharp` runs the file, matching the original CLI.
		if strings.HasSuffix(cmd, ".sharp") {
			os.Exit(cmdRun(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`SharpScript %s

Usage:
  %s                     Start the interactive REPL.
  %s <file.sharp>        Execute a script.
  %s run <file.sharp>    Execute a script.
  %s repl                Start the REPL.
  %s version             Print the version.

Language overview:
  Declaration:  &insert x = 10;
  Constant:     const PI = 3.14159;
  Functions:    function name(a, b = 1) { ... }
  Control:      if / else, while, for, for-in, match, try/catch/finally
  Output:       system.output(expr);
  Comments:     # like this
`, version, appName, appName, appName, appName, appName)
}

func newInterpreter() *sharpscript.Interpreter {
	ip := sharpscript.NewInterpreter()
	ip.SetDiagnosticHandler(func(msg string) {
		warnColor.Fprintln(os.Stderr, msg)
	})
	return ip
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.sharp>\n", appName)
		return 2
	}
	file := args[0]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	prog, perrs := parseWithDir(string(src), filepath.Dir(file))
	for _, pe := range perrs {
		errColor.Fprintln(os.Stderr, sharpscript.WrapErrorWithSource(pe, string(src)).Error())
	}

	ip := newInterpreter()
	if _, err := ip.EvalProgram(prog); err != nil {
		// An uncaught throw aborts the script in file mode.
		errColor.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func parseWithDir(src, dir string) (*sharpscript.Block, []*sharpscript.ParseError) {
	p := sharpscript.NewParser(src)
	p.Dir = dir
	return p.Parse(), p.Errors()
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
	fmt.Println(helpBanner)

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

	ip := newInterpreter()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}
		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}

		if strings.HasPrefix(code, ":") {
			if done := replCommand(ip, code); done {
				return 0
			}
			ln.AppendHistory(line)
			continue
		}

		v, err := ip.EvalSource(line)
		if err != nil {
			// Uncaught throw: print and keep the session alive.
			errColor.Fprintln(os.Stderr, err.Error())
			ln.AppendHistory(line)
			continue
		}
		if v.Kind != sharpscript.VNull {
			valColor.Println(sharpscript.DisplayString(v))
		}
		ln.AppendHistory(line)
	}
}

// replCommand handles the ":" commands; it reports true when the session
// should end.
func replCommand(ip *sharpscript.Interpreter, code string) bool {
	switch strings.ToLower(code) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(`REPL commands:
  :quit    Exit the REPL
  :reset   Discard all variables, memory and history
  :env     List global variables
  :mem     List calculator memory
  :help    Show this help
`)
	case ":reset":
		ip.Reset()
		fmt.Println("session reset")
	case ":env":
		printEnvTable("NAME", ip.Globals)
	case ":mem":
		printEnvTable("SLOT", ip.Memory)
	default:
		fmt.Println("unknown command. Type :help for REPL commands.")
	}
	return false
}

func printEnvTable(nameHeader string, env *sharpscript.Environment) {
	if env.Len() == 0 {
		fmt.Println("(empty)")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{nameHeader, "TYPE", "VALUE"})
	table.SetBorder(false)
	env.Each(func(name string, v sharpscript.Value, isConst bool) {
		display := sharpscript.DisplayString(v)
		if len(display) > 48 {
			display = display[:45] + "..."
		}
		if isConst {
			name = name + " (const)"
		}
		table.Append([]string{name, v.TypeName(), display})
	})
	table.Render()
}
