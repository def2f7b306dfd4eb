package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/schedule"
	"github.com/MakerMama/afterschool-finder/pkg/export"
)

var (
	planAdds   []string
	planFormat string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build weekly schedules from catalog programs and check for conflicts",
	Example: `  afterschool-finder plan \
    --add "Emma=Wheel Basics|Clay Studio|Monday|3:00 PM" \
    --add "Leo=Robotics|Robo Lab|Tuesday|3:30 PM"`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringArrayVar(&planAdds, "add", nil, "schedule=program-id pair; repeat for more programs")
	planCmd.Flags().StringVar(&planFormat, "format", "text", "output format: text, csv or json")
	rootCmd.AddCommand(planCmd)
}

func parseAdd(s string) (string, string, error) {
	name, id, ok := strings.Cut(s, "=")
	name, id = strings.TrimSpace(name), strings.TrimSpace(id)
	if !ok || name == "" || id == "" {
		return "", "", fmt.Errorf("invalid --add %q: want schedule=program-id", s)
	}
	return name, id, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	if len(planAdds) == 0 {
		return fmt.Errorf("nothing to plan: pass at least one --add")
	}
	switch planFormat {
	case "text", "csv", "json":
	default:
		return fmt.Errorf("unknown format %q", planFormat)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Planning needs the catalog only; skip the geocoder and search log.
	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	store := schedule.NewStore()
	out := cmd.OutOrStdout()
	for _, a := range planAdds {
		name, id, err := parseAdd(a)
		if err != nil {
			return err
		}
		p, ok := cat.Program(id)
		if !ok {
			return fmt.Errorf("unknown program %q", id)
		}
		if !store.Add(name, model.NewScheduleEntry(p)) && planFormat == "text" {
			fmt.Fprintf(out, "%s is already in %s\n", p.Name, name)
		}
	}
	switch planFormat {
	case "csv":
		return export.WriteCSV(out, store.Aggregate())
	case "json":
		return export.WriteJSON(out, store.Aggregate())
	}
	for _, name := range store.Names() {
		entries, _ := store.Get(name)
		fmt.Fprintln(out, renderSchedule(name, entries, store.Conflicts(name), schedule.Validate(name)))
	}
	if len(store.Names()) > 1 {
		fmt.Fprint(out, renderFamily(store.Aggregate()))
	}
	return nil
}
