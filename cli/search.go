package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/prognoshealth/fpdsproxy/fpds"
	"github.com/prognoshealth/fpdsproxy/logging"
	"github.com/prognoshealth/fpdsproxy/search"
	"github.com/spf13/cobra"
)

// filterFlags binds one flag per filter.
type filterFlags map[string]*string

func bindFilters(cmd *cobra.Command) filterFlags {
	ff := filterFlags{}

	bind := func(filter, flag, usage string) {
		ff[filter] = cmd.Flags().String(flag, "", usage)
	}

	bind(fpds.FilterNAICS, "naics", "principal NAICS code")
	bind(fpds.FilterPSC, "psc", "product or service code")
	bind(fpds.FilterAgency, "agency", "contracting agency id")
	bind(fpds.FilterSetAside, "set-aside", "type of set aside")
	bind(fpds.FilterVendor, "vendor", "vendor name")
	bind(fpds.FilterStartDate, "start-date", "first signed date, YYYY-MM-DD")
	bind(fpds.FilterEndDate, "end-date", "last signed date, YYYY-MM-DD")
	bind(fpds.FilterMinValue, "min-value", "lowest obligated amount")
	bind(fpds.FilterMaxValue, "max-value", "highest obligated amount")
	bind(fpds.FilterKeywords, "keywords", "free text appended to the query")

	return ff
}

func (ff filterFlags) filters() fpds.Filters {
	params := map[string]string{}
	for name, v := range ff {
		params[name] = *v
	}

	return fpds.FiltersFromParams(params)
}

func newSearchCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search contract awards",
		Long: `Builds the feed query from the filter flags, requests the feed once and
prints the result envelope. The command fails when the search fails.`,
		Args: cobra.NoArgs,
	}

	ff := bindFilters(cmd)
	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json or table")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if format != "json" && format != "table" {
			return errors.Errorf("unknown format '%s'", format)
		}

		a, err := opts.build()
		if err != nil {
			return err
		}
		defer func() { _ = a.Logger.Sync() }()

		ctx := logging.WithLogger(cmd.Context(), a.Logger)

		var env search.Envelope
		res, err := a.Service.Search(ctx, ff.filters())
		if err != nil {
			env = search.Failure(res.Query, err)
		} else {
			env = search.Success(res.Query, res.Records)
		}

		if format == "table" {
			writeTable(cmd.OutOrStdout(), env)
		} else if err := writeJSON(cmd.OutOrStdout(), env); err != nil {
			return err
		}

		if !env.Success {
			return errors.Errorf("search failed: %s: %s", env.Type, env.Error)
		}

		return nil
	}

	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed encoding output")
	}

	return nil
}

func writeTable(w io.Writer, env search.Envelope) {
	if !env.Success {
		fmt.Fprintf(w, "%s: %s\n", env.Type, env.Error)
		if env.Details != "" {
			fmt.Fprintln(w, env.Details)
		}
		return
	}

	fmt.Fprintf(w, "query: %s\n", env.Query)

	if env.Count == 0 {
		fmt.Fprintln(w, "No contracts found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIID\tSIGNED\tVENDOR\tAGENCY\tOBLIGATED")
	for _, r := range env.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n", str(r.PIID), str(r.SignedDate), str(r.VendorName), str(r.AgencyName), r.ObligatedAmount)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "%d contracts\n", env.Count)
}

func str(s *string) string {
	if s == nil {
		return "-"
	}

	return *s
}
