package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/ui"
)

var orgsCmd = &cobra.Command{
	Use:     "orgs",
	GroupID: "listing",
	Short:   "List rescue organizations (ids for --org)",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orgs, err := gateway.ListOrganizations(cmd.Context())
		if err != nil {
			return err
		}
		sort.Slice(orgs, func(i, j int) bool { return orgs[i].ID < orgs[j].ID })

		out := cmd.OutOrStdout()
		if jsonOutput {
			if orgs == nil {
				orgs = []model.Organization{}
			}
			return printJSON(out, orgs)
		}
		ui.RenderOrganizations(out, orgs, styles(out))
		return nil
	},
}
