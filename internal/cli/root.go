package cli

import (
	"fmt"
	"strconv"

	"github.com/Makepad-fr/impact/internal/model"
	"github.com/Makepad-fr/impact/internal/view"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "impact" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "impact",
		Short: "A weighted todo list: progress counts impact, not items",
		Example: `  impact add "Write report" -w 5
  impact ls
  impact done 2
  impact edit 1 --weight 8
  impact reset`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.bootstrap(cmd.Context(), opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (YAML or TOML; env IMPACT_CONFIG)")
	pf.StringVar(&opts.backend, "backend", "", "Storage backend: jsonfile, sqlite or memory")
	pf.StringVar(&opts.path, "path", "", "Data directory")
	pf.StringVar(&opts.theme, "theme", "", "Theme: classic, neon or mono")

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newDoneCmd(app),
		newEditCmd(app),
		newResetCmd(app),
		newTUICmd(app),
	)
	return root
}

// resolveIndex maps a 1-based position in display order to an action.
func resolveIndex(actions []model.Action, arg string) (model.Action, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.Action{}, fmt.Errorf("not a number: %s", arg)
	}
	ordered := view.DisplayOrder(actions)
	if n < 1 || n > len(ordered) {
		return model.Action{}, fmt.Errorf("index out of range: have %d, got %d (run `impact ls` to see valid indexes)", len(ordered), n)
	}
	return ordered[n-1], nil
}
