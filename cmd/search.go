package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/search"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

type searchFlags struct {
	age         float64
	grade       string
	types       []string
	categories  []string
	days        []string
	from        string
	to          string
	address     string
	maxDistance float64
	asJSON      bool
}

var searchOpts searchFlags

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog",
	Example: `  afterschool-finder search --day Monday --day Wed --age 7 --category STEM
  afterschool-finder search --from "3:00 PM" --to "6:00 PM" --address "10 Main St, Springfield" --max-distance 5`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.Float64Var(&searchOpts.age, "age", 0, "child age in years")
	f.StringVar(&searchOpts.grade, "grade", "", "grade level, applied to on-site programs")
	f.StringSliceVar(&searchOpts.types, "type", nil, "program type (On-site, Off-site)")
	f.StringSliceVar(&searchOpts.categories, "category", nil, "interest category; any listed category matches")
	f.StringSliceVar(&searchOpts.days, "day", nil, "day of the week")
	f.StringVar(&searchOpts.from, "from", "", "earliest start time")
	f.StringVar(&searchOpts.to, "to", "", "latest end time")
	f.StringVar(&searchOpts.address, "address", "", "home address for distances")
	f.Float64Var(&searchOpts.maxDistance, "max-distance", 0, "maximum distance in miles")
	f.BoolVar(&searchOpts.asJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// criteria converts the flags to filter criteria. Unset flags leave their
// predicate disabled.
func (o searchFlags) criteria(cmd *cobra.Command) (model.FilterCriteria, error) {
	c := model.FilterCriteria{
		GradeLevel:  strings.TrimSpace(o.grade),
		Categories:  o.categories,
		HomeAddress: strings.TrimSpace(o.address),
	}
	if cmd.Flags().Changed("age") {
		c.ChildAge = model.Float(o.age)
	}
	if cmd.Flags().Changed("max-distance") {
		if o.maxDistance <= 0 {
			return c, fmt.Errorf("--max-distance must be positive")
		}
		c.MaxDistanceMiles = model.Float(o.maxDistance)
	}
	for _, s := range o.types {
		t, err := model.ParseProgramType(s)
		if err != nil {
			return c, err
		}
		c.ProgramTypes = append(c.ProgramTypes, t)
	}
	for _, s := range o.days {
		d, err := model.ParseWeekday(s)
		if err != nil {
			return c, err
		}
		c.Days = append(c.Days, d)
	}
	if o.from != "" || o.to != "" {
		w := &model.TimeWindow{EarliestStart: timeofday.Unknown, LatestEnd: timeofday.Unknown}
		var err error
		if o.from != "" {
			if w.EarliestStart, err = timeofday.ParseStrict(o.from); err != nil {
				return c, fmt.Errorf("--from: %w", err)
			}
		}
		if o.to != "" {
			if w.LatestEnd, err = timeofday.ParseStrict(o.to); err != nil {
				return c, fmt.Errorf("--to: %w", err)
			}
		}
		c.TimeWindow = w
	}
	return c, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, err := searchOpts.criteria(cmd)
	if err != nil {
		return err
	}
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	res, err := svc.Search.Search(cmd.Context(), c)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if searchOpts.asJSON {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}
	return printResult(out, c, res)
}

func printResult(w io.Writer, c model.FilterCriteria, res search.Result) error {
	if c.HomeAddress != "" && !res.HomeResolved {
		if _, err := fmt.Fprintln(w, warnStyle.Render("Could not locate the home address; results are not sorted by distance.")); err != nil {
			return err
		}
	}
	if len(res.Matches) == 0 {
		_, err := fmt.Fprintln(w, "No programs match your filters. Try widening the time window or adding more days.")
		return err
	}
	if _, err := fmt.Fprintf(w, "%d of %d programs match\n\n", len(res.Matches), res.Candidates); err != nil {
		return err
	}
	for _, m := range res.Matches {
		if _, err := fmt.Fprintln(w, renderMatch(m)); err != nil {
			return err
		}
	}
	return nil
}
