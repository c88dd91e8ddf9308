package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sympool/internal/bench"
)

var showCmd = &cobra.Command{
	Use:   "show report.mp",
	Short: "Render a msgpack bench report",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := bench.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if format == bench.FormatMsgpack {
		return fmt.Errorf("show renders msgpack, pick pretty or json")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	rep, err := bench.ReadMsgpack(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	color, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format == bench.FormatPretty {
		fmt.Fprintf(out, "%s (created %s)\n", args[0], rep.Created.Format("2006-01-02 15:04:05 MST"))
	}
	return rep.Write(out, format, color)
}
