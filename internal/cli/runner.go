package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/impact/internal/model"
	"github.com/Makepad-fr/impact/internal/ui"
	"github.com/spf13/cobra"
)

// -------------- subcommand impls ----------------

func newAddCmd(app *App) *cobra.Command {
	var weight int

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Add an action with an impact weight (1-10)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			if (text == "" || !cmd.Flags().Changed("weight")) && app.interactive() && app.AskAction != nil {
				var err error
				if text, weight, err = app.AskAction(text); err != nil {
					return fmt.Errorf("prompt: %w", err)
				}
			} else if text == "" {
				return errors.New("usage: impact add <text...> -w <1-10>")
			}

			before := len(app.Store.Actions())
			after := app.Store.Add(text, weight)
			out := cmd.OutOrStdout()
			if len(after) == before {
				fmt.Fprintln(out, ui.Current().Muted.Render("nothing added: an action needs text and an impact of 1-10"))
				return nil
			}
			ui.OK(out, fmt.Sprintf("added (impact %d)", after[len(after)-1].Weight))
			return nil
		},
	}

	cmd.Flags().IntVarP(&weight, "weight", "w", 0, "Impact weight, 1-10")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var group, plain bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show actions and weighted progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !plain && app.interactive() && app.RunTUI != nil {
				return runTUI(app)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(listLines(app.Store.Actions(), group)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print instead of opening the interactive list")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle completion of the action at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolveIndex(app.Store.Actions(), args[0])
			if err != nil {
				return err
			}
			app.Store.ToggleComplete(a.ID)
			now, ok := app.Store.Get(a.ID)
			switch {
			case !ok:
				return fmt.Errorf("action %d vanished", a.ID)
			case now.Completed:
				ui.OK(cmd.OutOrStdout(), "completed: "+now.Text)
			default:
				ui.OK(cmd.OutOrStdout(), "reopened: "+now.Text)
			}
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var text string
	var weight int

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change the text and/or weight of an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			textSet, weightSet := cmd.Flags().Changed("text"), cmd.Flags().Changed("weight")
			if !textSet && !weightSet {
				return errors.New("edit: pass --text and/or --weight")
			}
			a, err := resolveIndex(app.Store.Actions(), args[0])
			if err != nil {
				return err
			}

			newText, newWeight := a.Text, a.Weight
			if textSet {
				newText = strings.TrimSpace(text)
				if newText == "" {
					return errors.New("edit: empty text")
				}
			}
			if weightSet {
				if !model.ValidWeight(weight) {
					return fmt.Errorf("edit: weight must be %d-%d, got %d", model.MinWeight, model.MaxWeight, weight)
				}
				newWeight = weight
			}

			app.Store.EditSave(a.ID, newText, newWeight)
			ui.OK(cmd.OutOrStdout(), "updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "New text")
	cmd.Flags().IntVarP(&weight, "weight", "w", 0, "New impact weight, 1-10")
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Store.Reset()
			ui.OK(cmd.OutOrStdout(), "list reset")
			return nil
		},
	}
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.RunTUI == nil {
				return errors.New("interactive list unavailable")
			}
			return runTUI(app)
		},
	}
}

func runTUI(app *App) error {
	app.muteStderrLogs()
	if err := app.RunTUI(app.Store); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
