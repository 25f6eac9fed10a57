package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/panyam/designboard/diagram"
	"github.com/panyam/designboard/editor"
)

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Lists the editor keyboard shortcuts",
	Run: func(cmd *cobra.Command, args []string) {
		printShortcuts(cmd.OutOrStdout())
	},
}

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Lists the component kinds that can be dropped on a board",
	Run: func(cmd *cobra.Command, args []string) {
		printPalette(cmd.OutOrStdout())
	},
}

func printShortcuts(w io.Writer) {
	keys := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	fmt.Fprintln(w, color.New(color.Bold).Sprint("Keyboard Shortcuts"))
	for _, s := range editor.Shortcuts() {
		desc := s.Description
		if s.Reserved {
			desc = dim.Sprint(desc + " (coming soon)")
		}
		fmt.Fprintf(w, "  %s  %s\n", keys.Sprintf("%-16s", s.Keys), desc)
	}
}

func printPalette(w io.Writer) {
	name := color.New(color.FgGreen, color.Bold)
	for _, k := range diagram.Palette() {
		fmt.Fprintf(w, "  %s  %s\n", name.Sprintf("%-16s", k.DisplayName), k.Kind)
	}
}

func init() {
	rootCmd.AddCommand(shortcutsCmd)
	rootCmd.AddCommand(paletteCmd)
}
