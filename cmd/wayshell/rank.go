package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wayshell/internal/core"
	"github.com/jmylchreest/wayshell/internal/daemon"
	"github.com/jmylchreest/wayshell/internal/launcher"
	"github.com/jmylchreest/wayshell/internal/output"
)

var rankOpts struct {
	format   string
	template string
	matcher  string
	exec     bool
}

var rankCmd = &cobra.Command{
	Use:   "rank <query>",
	Short: "Rank applications against a query",
	Long: `Rank the launcher index against a query exactly as the launcher overlay
does and print the top results with their scores.

Examples:
  wayshell rank fire
  wayshell rank --matcher subsequence ffx
  wayshell rank --format json term

  # Print the command the launcher would run for the best match
  wayshell rank --exec fire`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

var expandCmd = &cobra.Command{
	Use:   "expand <exec template>",
	Short: "Expand desktop entry field codes",
	Long: `Print the command line the launcher would run for an Exec template:
field codes are removed and %% becomes a literal percent sign.

Example:
  wayshell expand 'firefox %u'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), launcher.ExpandFieldCodes(strings.Join(args, " ")))
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(expandCmd)

	rankCmd.Flags().StringVarP(&rankOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, table)")
	rankCmd.Flags().StringVar(&rankOpts.template, "template", "",
		"Custom Go template for plain output")
	rankCmd.Flags().StringVarP(&rankOpts.matcher, "matcher", "m", "",
		fmt.Sprintf("Matcher to use (%s; default from config)", strings.Join(core.ValidMatchers(), ", ")))
	rankCmd.Flags().BoolVar(&rankOpts.exec, "exec", false,
		"Print the expanded command of the best match instead of the ranking")
}

func runRank(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	launcherCfg := cfg.Launcher
	if rankOpts.matcher != "" {
		launcherCfg.Matcher = rankOpts.matcher
	}
	rank, err := daemon.NewRanker(launcherCfg)
	if err != nil {
		return err
	}

	results := rank(query, buildIndex())

	if rankOpts.exec {
		if len(results) == 0 {
			return fmt.Errorf("no application matches %q", query)
		}
		command, ok := launcher.Command(results[0].Entry)
		if !ok {
			return fmt.Errorf("%s has no command", results[0].Entry.Name)
		}
		fmt.Fprintln(os.Stdout, command)
		return nil
	}

	format, err := output.ParseFormat(rankOpts.format)
	if err != nil {
		return err
	}
	formatter := output.NewFormatter(format, output.FormatterOptions{
		Template:  rankOpts.template,
		ShowIndex: true,
	})
	return formatter.Ranked(os.Stdout, query, results)
}
