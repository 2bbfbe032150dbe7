package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wayshell/internal/output"
)

var appsOpts struct {
	format   string
	template string
	index    bool
	path     bool
	search   string
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the applications in the launcher index",
	Long: `List every visible application found under the XDG application
directories, in the order the launcher indexes them.

Examples:
  # Plain listing
  wayshell apps

  # Table with source paths
  wayshell apps --format table --path

  # Names only, for dmenu-style pickers
  wayshell apps --template '{{.App.Name}}'

  # Everything as JSON
  wayshell apps --format json`,
	Args: cobra.NoArgs,
	RunE: runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)

	appsCmd.Flags().StringVarP(&appsOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, table)")
	appsCmd.Flags().StringVar(&appsOpts.template, "template", "",
		"Custom Go template for plain output")
	appsCmd.Flags().BoolVar(&appsOpts.index, "index", true,
		"Prefix plain output with a 1-based index")
	appsCmd.Flags().BoolVar(&appsOpts.path, "path", false,
		"Include source desktop file path")
	appsCmd.Flags().StringVarP(&appsOpts.search, "search", "s", "",
		"Only list applications whose name contains this text")
}

func runApps(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(appsOpts.format)
	if err != nil {
		return err
	}

	idx := buildIndex()
	if appsOpts.search != "" {
		needle := strings.ToLower(appsOpts.search)
		filtered := idx[:0:0]
		for _, e := range idx {
			if strings.Contains(strings.ToLower(e.Name), needle) {
				filtered = append(filtered, e)
			}
		}
		idx = filtered
	}

	formatter := output.NewFormatter(format, output.FormatterOptions{
		Template:  appsOpts.template,
		ShowIndex: appsOpts.index,
		ShowPath:  appsOpts.path,
	})
	return formatter.Apps(os.Stdout, output.NewApps(idx))
}
