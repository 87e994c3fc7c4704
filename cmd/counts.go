package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Report record counts for every registered entity (read-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := newGate()

		handle, err := openDB()
		if err != nil {
			return err
		}
		if err := handle.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}
		if err := g.Registry.InitAssociations(); err != nil {
			return err
		}

		fmt.Println("📊 Entity Counts:")
		total := 0
		for i, e := range g.Registry.Ordered() {
			var n int
			err := handle.QueryRow(dia.CountQuery(e.Table)).Scan(&n)
			if err != nil {
				fmt.Printf("[!] [%02d/%02d] %-12s : %v\n", i+1, len(g.Registry.Entities()), e.Name, err)
				continue
			}
			fmt.Printf("[✓] [%02d/%02d] %-12s : %d records\n", i+1, len(g.Registry.Entities()), e.Name, n)
			total += n
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Records: %d\n", total)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(countsCmd)
}
