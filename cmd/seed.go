package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"schema-gate/internal/gate"
	"schema-gate/internal/seed"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate demo data for all entities (insert-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Env == "production" {
			return fmt.Errorf("refusing to seed demo data with APP_ENV=production")
		}

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

		// Make sure the tables exist before inserting; same
		// non-destructive sync the gate runs.
		out := &gate.Outcome{}
		if err := g.Synchronize(handle, out, gate.SyncOptions{}); err != nil {
			return err
		}

		log.Printf("Seeding %d rows per entity...", seedCount)
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(seedCount * len(g.Registry.Entities())).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Seeding: "
		})

		results, err := seed.Run(handle, dia, g.Registry, seedCount, func() {
			bar.Incr()
		})
		uiprogress.Stop()
		if err != nil {
			return err
		}

		fmt.Println("\n📊 Seed Report (Dependency Order):")
		total := 0
		for i, r := range results {
			icon := "✓"
			if r.Inserted < r.Target {
				icon = "!"
			}
			fmt.Printf("[%s] [%02d/%02d] %-12s : %d/%d inserted\n", icon, i+1, len(results), r.Entity, r.Inserted, r.Target)
			if r.ErrorMsg != "" {
				fmt.Printf("    └ Last error: %s\n", r.ErrorMsg)
			}
			total += r.Inserted
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Inserted: %d\n", total)
		log.Printf("Seed Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedCount, "count", 25, "Number of rows to insert per entity")
}
