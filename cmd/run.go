package cmd

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"schema-gate/internal/gate"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full schema gate (sync + verify) and gate the deployment",
	RunE:  runGate,
}

// runGate is the deployment entrypoint; the pipeline invokes the binary
// with no arguments, so the root command runs the gate too.
func runGate(cmd *cobra.Command, args []string) error {
	g := newGate()
	fmt.Printf("🛡  schema-gate: %s @ %s:%d/%s (env: %s)\n",
		cfg.Dialect, cfg.Conn.Host, cfg.Conn.Port, cfg.Conn.Database, cfg.Env)

	uiprogress.Start()
	bar := uiprogress.AddBar(len(g.Registry.Entities())).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return "Verifying: "
	})
	g.OnEntity = func() { bar.Incr() }

	out := g.Run()
	uiprogress.Stop()

	printReport(out)

	if out.Status == gate.StatusFatal {
		return fmt.Errorf("schema gate failed at %s stage: %v", out.Stage, out.Err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(runCmd)
}

// printReport renders the per-entity results and warnings for the
// deployment log.
func printReport(out *gate.Outcome) {
	fmt.Println("\n📊 Verification Report (Dependency Order):")
	for i, r := range out.Results {
		icon := "✓"
		status := fmt.Sprintf("%d records", r.Count)
		if r.Skipped {
			icon = "!"
			status = "SKIPPED - " + r.Reason
		}
		fmt.Printf("[%s] [%02d/%02d] %-12s : %s\n", icon, i+1, len(out.Results), r.Entity, status)
	}

	if len(out.Warnings) > 0 {
		fmt.Println("\n⚠  Warnings:")
		for _, w := range out.Warnings {
			subject := w.Subject
			if subject == "" {
				subject = "-"
			}
			fmt.Printf("  [%s] %s: %s\n", w.Stage, subject, w.Reason)
		}
	}

	fmt.Println("--------------------------------------------------")
	fmt.Printf("Gate result: %s\n", out.Status)
	if out.Hint != "" {
		fmt.Printf("Hint: %s\n", out.Hint)
	}
}
