package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/listing"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/views"
)

var listCmd = &cobra.Command{
	Use:     "list",
	GroupID: "listing",
	Short:   "Print dogs matching a filter",
	Long: `Print dogs matching a filter and exit.

--page N loads pages one through N and prints all of them, the same way a
shared deep link is restored. Without filter flags the default saved view
is used, if one is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			return fmt.Errorf("--page must be at least 1")
		}
		q, err := startQuery(cmd, page)
		if err != nil {
			return err
		}

		ctrl := listing.New(gateway,
			listing.WithPageSize(cfg.PageSize),
			listing.WithLogger(logger.Named("listing")),
			listing.WithOrganizations(q.Known),
		)
		defer ctrl.Close()

		ctrl.Mount(q.Query, nil)
		snap, err := waitSettled(cmd.Context(), ctrl)
		if err != nil {
			return err
		}
		if err := printSnapshot(cmd.OutOrStdout(), snap); err != nil {
			return err
		}
		if snap.Err != nil {
			return fmt.Errorf("fetching dogs: %s", snap.Err.Message)
		}
		return nil
	},
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().Int("page", 1, "load pages 1..N")
}

// startQuery resolves the flags, falling back to the default saved view when
// no filter flag was given.
func startQuery(cmd *cobra.Command, page int) (*resolvedQuery, error) {
	if !hasFilterFlags(cmd) {
		name, _, ok, err := views.NewStore(cfg.ViewsFile).Default()
		if err != nil {
			return nil, err
		}
		if ok {
			logger.Debug("using default view")
			if err := cmd.Flags().Set("view", name); err != nil {
				return nil, err
			}
		}
	}
	return filterQuery(cmd.Context(), cmd, page)
}

// waitSettled blocks until the controller has no request in flight.
func waitSettled(ctx context.Context, ctrl *listing.Controller) (listing.Snapshot, error) {
	for {
		s := ctrl.Snapshot()
		if !s.IsLoading && !s.IsLoadingMore {
			return s, nil
		}
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case _, ok := <-ctrl.Changes():
			if !ok {
				return ctrl.Snapshot(), nil
			}
		}
	}
}
