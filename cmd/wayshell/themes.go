package main

import (
	"fmt"
	"os"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/wayshell/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the bundled themes and the user themes in
~/.config/wayshell/themes. The active theme is marked with *.

User theme files named after a bundled theme replace it. Files starting with
an underscore are partials for @import and are not listed.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

var themeShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a theme's CSS with imports resolved",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.Theme.Name
		if len(args) > 0 {
			name = args[0]
		}
		dir, err := theme.ThemesDir()
		if err != nil {
			return err
		}
		t, err := theme.Resolve(dir, name)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), t.CSS)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themeShowCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	dir, err := theme.ThemesDir()
	if err != nil {
		return err
	}
	names, err := theme.List(dir)
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	active := cfg.Theme.Name
	if active == "" {
		active = theme.DefaultThemeName
	}

	tbl := table.New("", "NAME", "SOURCE").WithWriter(os.Stdout)
	for _, name := range names {
		mark := ""
		if name == active {
			mark = "*"
		}
		source := "bundled"
		if t, err := theme.Resolve(dir, name); err == nil && !t.Bundled {
			source = t.Path
		}
		tbl.AddRow(mark, name, source)
	}
	tbl.Print()
	return nil
}
