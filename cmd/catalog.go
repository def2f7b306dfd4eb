package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MakerMama/afterschool-finder/core/catalog"
)

var catalogCategoriesOnly bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Summarize the program catalog",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogCategoriesOnly, "categories", false, "list interest categories only")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if catalogCategoriesOnly {
		_, err = fmt.Fprintln(out, strings.Join(catalog.UniqueCategories(c.Programs()), "\n"))
		return err
	}
	_, err = fmt.Fprint(out, renderSummary(catalog.Summarize(c.Programs())))
	return err
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}
