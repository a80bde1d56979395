package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/ui"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/views"
)

var viewsCmd = &cobra.Command{
	Use:     "views",
	GroupID: "views",
	Short:   "Manage saved filter views",
}

// viewJSON is the --json shape of a saved view.
type viewJSON struct {
	Name        string `json:"name"`
	Default     bool   `json:"default"`
	Description string `json:"description,omitempty"`
	Query       string `json:"query"`
	UpdatedAt   string `json:"updated_at"`
}

var viewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved views",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := views.NewStore(cfg.ViewsFile).List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			rows := make([]viewJSON, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, viewJSON{
					Name:        e.Name,
					Default:     e.Default,
					Description: e.Description,
					Query:       e.Query(),
					UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
				})
			}
			return printJSON(out, rows)
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No saved views.")
			return nil
		}
		st := styles(out)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, e := range entries {
			marker := " "
			if e.Default {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s %s\t%s\t%s\n", marker, e.Name, ui.FilterSummary(e.Filter), st.Muted(e.Description))
		}
		return tw.Flush()
	},
}

var viewsSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save a filter as a named view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := filterQuery(cmd.Context(), cmd, 1)
		if err != nil {
			return err
		}
		desc, _ := cmd.Flags().GetString("description")
		store := views.NewStore(cfg.ViewsFile)
		if err := store.Put(args[0], desc, q.Filter, q.Known); err != nil {
			return err
		}
		if def, _ := cmd.Flags().GetBool("default"); def {
			if err := store.SetDefault(args[0]); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved view %s: %s\n", args[0], ui.FilterSummary(q.Filter))
		return nil
	},
}

var viewsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a saved view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := views.NewStore(cfg.ViewsFile).Get(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, viewJSON{
				Name:        args[0],
				Description: v.Description,
				Query:       v.Query(),
				UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
			})
		}
		fmt.Fprintf(out, "%s\n", ui.FilterSummary(v.Filter))
		if v.Description != "" {
			fmt.Fprintf(out, "%s\n", v.Description)
		}
		fmt.Fprintf(out, "query: ?%s\n", v.Query())
		return nil
	},
}

var viewsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := views.NewStore(cfg.ViewsFile).Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted view %s\n", args[0])
		return nil
	},
}

var viewsDefaultCmd = &cobra.Command{
	Use:   "default [NAME]",
	Short: "Show or set the view used when no filter is given",
	Long: `Show or set the view used when no filter is given.

With NAME, make it the default. With --unset, clear the default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := views.NewStore(cfg.ViewsFile)
		out := cmd.OutOrStdout()

		if unset, _ := cmd.Flags().GetBool("unset"); unset {
			if err := store.SetDefault(""); err != nil {
				return err
			}
			fmt.Fprintln(out, "Default view cleared")
			return nil
		}
		if len(args) == 1 {
			if err := store.SetDefault(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Default view is now %s\n", args[0])
			return nil
		}

		name, _, ok, err := store.Default()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "No default view")
			return nil
		}
		fmt.Fprintln(out, name)
		return nil
	},
}

func init() {
	addFilterFlags(viewsSaveCmd)
	viewsSaveCmd.Flags().String("description", "", "short description")
	viewsSaveCmd.Flags().Bool("default", false, "also make this the default view")
	viewsDefaultCmd.Flags().Bool("unset", false, "clear the default view")

	viewsCmd.AddCommand(viewsListCmd, viewsSaveCmd, viewsShowCmd, viewsDeleteCmd, viewsDefaultCmd)
}
