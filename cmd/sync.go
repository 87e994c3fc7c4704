package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"schema-gate/internal/gate"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Create missing schema objects without verifying entities",
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

		log.Println("Synchronizing schema (create missing objects only)...")
		out := &gate.Outcome{}
		if err := g.Synchronize(handle, out, gate.SyncOptions{AllowAlter: false, AllowDrop: false}); err != nil {
			return err
		}

		for _, w := range out.Warnings {
			log.Printf("Warning: %s: %s", w.Subject, w.Reason)
		}
		fmt.Println("Schema synchronized. Existing objects were not modified.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
