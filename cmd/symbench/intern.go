package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sympool/internal/pool"
	"sympool/internal/short"
	"sympool/internal/symbol"
)

var internCmd = &cobra.Command{
	Use:   "intern [flags] values...",
	Short: "Intern values and print their symbols",
	Long: `Intern each argument into a fresh pool and print the symbol next to the
resolved value. Repeated values share a symbol; with --strategy short,
values within the inline budget are encoded in the symbol itself.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIntern,
}

func init() {
	internCmd.Flags().String("strategy", "short", "pool kind (basic|short)")
	internCmd.Flags().Int("width", 32, "identifier width in bits (8|16|32|64)")
}

func runIntern(cmd *cobra.Command, args []string) error {
	strategy, err := cmd.Flags().GetString("strategy")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch width {
	case 8:
		return internWidth[uint8](out, strategy, args)
	case 16:
		return internWidth[uint16](out, strategy, args)
	case 32:
		return internWidth[uint32](out, strategy, args)
	case 64:
		return internWidth[uint64](out, strategy, args)
	default:
		return fmt.Errorf("invalid --width %d (expected 8|16|32|64)", width)
	}
}

func internWidth[I symbol.ID](out io.Writer, strategy string, values []string) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	var entries int
	switch strings.ToLower(strategy) {
	case "basic":
		p := pool.NewStrings[I]()
		fmt.Fprintln(tw, "symbol\tvalue")
		for _, v := range values {
			sym, err := p.Intern(v)
			if err != nil {
				return fmt.Errorf("intern %q: %w", v, err)
			}
			fmt.Fprintf(tw, "%s\t%q\n", sym, p.MustResolve(sym))
		}
		entries = p.Len()
	case "short":
		p := short.New[I]()
		fmt.Fprintf(tw, "symbol\tbits\tkind\tvalue\n")
		hexDigits := symbol.Bits[I]() / 4
		for _, v := range values {
			sym, err := p.Intern(v)
			if err != nil {
				return fmt.Errorf("intern %q: %w", v, err)
			}
			resolved, err := p.Resolve(sym)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", sym, err)
			}
			kind := "fallback"
			if sym.IsInline() {
				kind = "inline"
			}
			fmt.Fprintf(tw, "%s\t0x%0*x\t%s\t%q\n", sym, hexDigits, uint64(sym.Bits()), kind, resolved)
		}
		entries = p.Len()
	default:
		return fmt.Errorf("invalid --strategy %q (expected basic|short)", strategy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d values, %d pool entries, %d-bit symbols\n", len(values), entries, symbol.Bits[I]())
	return err
}
