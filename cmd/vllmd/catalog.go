package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the configuration catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if f, _ := cmd.Flags().GetString("file"); f != "" {
				cfg.CatalogFile = f
			}
			cat, err := loadCatalog(cfg.CatalogFile)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), cat.List())
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMODEL\tVRAM\tSPEED\tMAX LEN")
			for _, m := range cat.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", m.ID, m.Name, m.VRAM, m.Speed, m.MaxModelLen)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("file", "", "catalog file to read instead of the configured one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d configurations OK\n", args[0], cat.Len())
			return nil
		},
	})
	return cmd
}
