package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minilang/minic/internal/ast"
	"github.com/minilang/minic/internal/binder"
	"github.com/minilang/minic/internal/bytecode"
	"github.com/minilang/minic/internal/diag"
	"github.com/minilang/minic/internal/lexer"
	"github.com/minilang/minic/internal/parser"
	"github.com/minilang/minic/internal/vm"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	dumpAST      bool
	dumpAssembly bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:     "minic <file>",
	Short:   "Lex, parse, bind, compile, and run a minilang source file",
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE:    runFile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "echo pipeline-stage diagnostics to stderr")
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed and bound AST and exit")
	rootCmd.Flags().BoolVar(&dumpAssembly, "dump-assembly", false, "print a disassembly of the compiled bytecode and exit")
}

func runFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		return err
	}
	source := string(content)

	if verbose {
		fmt.Fprintf(os.Stderr, "lexing %s\n", filename)
	}
	l := lexer.New(source)

	if verbose {
		fmt.Fprintln(os.Stderr, "parsing")
	}
	p := parser.New(l)
	prog := p.ParseProgram()
	if lexErrs := l.Errors(); len(lexErrs) != 0 {
		diags := diag.FromLexErrors(lexErrs, source, filename)
		fmt.Fprint(os.Stderr, diag.FormatAll(diags, isTerminal(os.Stderr)))
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}
	if parseErrs := p.Errors(); len(parseErrs) != 0 {
		diags := diag.FromParseErrors(parseErrs, source, filename)
		fmt.Fprint(os.Stderr, diag.FormatAll(diags, isTerminal(os.Stderr)))
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "binding")
	}
	b := binder.New()
	b.Bind(prog)
	if bindErrs := b.Errors(); len(bindErrs) != 0 {
		diags := diag.FromBindErrors(bindErrs, source, filename)
		fmt.Fprint(os.Stderr, diag.FormatAll(diags, isTerminal(os.Stderr)))
		return fmt.Errorf("binding failed with %d error(s)", len(bindErrs))
	}

	if dumpAST {
		fmt.Println(ast.Dump(prog))
		return nil
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "compiling")
	}
	chunk := bytecode.Compile(prog)

	if dumpAssembly {
		fmt.Println(bytecode.Disassemble(chunk))
		return nil
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "running")
	}
	machine := vm.New(chunk, os.Stdin, os.Stdout)
	result, err := machine.Run()
	if err != nil {
		if rerr, ok := err.(*vm.RuntimeError); ok {
			d := diag.FromRuntimeError(rerr, filename)
			fmt.Fprint(os.Stderr, d.Format(isTerminal(os.Stderr)))
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		}
		return err
	}

	os.Exit(int(result.Int64() & 0xff))
	return nil
}

// isTerminal reports whether f looks like an interactive terminal rather
// than a redirected file or pipe, so error output only gets ANSI color
// when a human is likely to see it.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
