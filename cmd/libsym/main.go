// libsym lists the contents of a Windows .lib static library: the
// cataloged members, the symbol index, or both. Non-fatal archive
// anomalies are logged to stderr as they are found.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/please-build/winlib"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var listMembers, listSymbols bool

	flags := pflag.NewFlagSet("libsym", pflag.ContinueOnError)
	flags.BoolVarP(&listMembers, "members", "m", false, "list archive members")
	flags.BoolVarP(&listSymbols, "symbols", "s", false, "list the symbol index")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: libsym [--members] [--symbols] <file.lib>")
	}
	if !listMembers && !listSymbols {
		listMembers, listSymbols = true, true
	}

	data, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	reader := winlib.NewReader(winlib.WithDiagnosticHandler(func(d winlib.Diagnostic) {
		logger.Warn("archive anomaly", "kind", d.Kind.String(), "offset", d.Offset, "got", fmt.Sprintf("%q", d.Got))
	}))
	if err := reader.Load(data); err != nil {
		return err
	}

	if listMembers {
		names := make([]string, 0, len(reader.Members()))
		for name := range reader.Members() {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			m := reader.Members()[name]
			fmt.Printf("%-48s %10d %s\n", name, m.Size, m.ModTime().UTC().Format("2006-01-02 15:04:05"))
		}
	}

	if listSymbols {
		symbols := make([]string, 0, len(reader.Symbols()))
		for symbol := range reader.Symbols() {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			fmt.Printf("%-48s %s\n", symbol, reader.Symbols()[symbol])
		}
	}
	return nil
}
