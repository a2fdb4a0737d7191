package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQueryCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the feed query and url for the filter flags without fetching",
		Args:  cobra.NoArgs,
	}

	ff := bindFilters(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, err := opts.build()
		if err != nil {
			return err
		}

		res, err := a.Service.Query(ff.filters())
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", res.Query, res.URL)
		return err
	}

	return cmd
}
