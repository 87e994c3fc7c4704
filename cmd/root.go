package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-gate/internal/dialect"
	"schema-gate/internal/gate"
	"schema-gate/internal/schema"
)

var (
	cfgFile string
	cfg     *AppConfig
	dia     dialect.Dialect

	// db is the process-lifetime connection handle; openDB memoizes it so
	// every command in a run shares one connection instead of re-dialing.
	db *sql.DB
)

var RootCmd = &cobra.Command{
	Use:   "schema-gate",
	Short: "Deployment-time database schema gate",
	Long: `
  ____   ____ _   _ _____ __  __    _         ____    _  _____ _____
 / ___| / ___| | | | ____|  \/  |  / \       / ___|  / \|_   _| ____|
 \___ \| |   | |_| |  _| | |\/| | / _ \ ____| |  _  / _ \ | | |  _|
  ___) | |___|  _  | |___| |  | |/ ___ \____| |_| |/ ___ \| | | |___
 |____/ \____|_| |_|_____|_|  |_/_/   \_\    \____/_/   \_\_| |_____|

SCHEMA-GATE - Database readiness gate for fan-out deployments

Verifies the target database non-destructively before a deployment is
allowed to proceed: creates missing schema objects, tolerates parallel
build workers racing the same creations, and counts every registered
entity. Exit status 0 means proceed (warnings included), non-zero means
abort the deployment.
`,
	SilenceUsage: true,
	// Deployment pipelines invoke the binary with no arguments; that is
	// the full gate.
	RunE: runGate,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		dia = dialect.GetDialect(cfg.Dialect)
		return nil
	},
	// Fatal paths leave release to process exit; this covers the rest.
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
			db = nil
		}
	},
}

// openDB is the injected connection provider: it opens the handle on
// first use and memoizes it for the process lifetime. Deliberately lazy
// so connection failures surface inside the gate, where they are
// classified, not in command plumbing.
func openDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}
	handle, err := sql.Open(dia.Driver(), dia.DSN(cfg.Conn))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	db = handle
	return db, nil
}

// newGate wires a gate for the resolved configuration.
func newGate() *gate.Gate {
	return &gate.Gate{
		Connect:  openDB,
		Dialect:  dia,
		Schema:   dia.DefaultSchema(cfg.Conn),
		Registry: schema.Default(),
	}
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schema-gate.yaml)")
	RootCmd.PersistentFlags().String("host", "", "database host (DB_HOST)")
	RootCmd.PersistentFlags().Int("port", 5432, "database port (DB_PORT)")
	RootCmd.PersistentFlags().String("name", "", "database name (DB_NAME)")
	RootCmd.PersistentFlags().String("user", "", "database user (DB_USER)")
	RootCmd.PersistentFlags().String("dialect", "postgres", "database dialect: postgres, mysql, mssql, oracle (DB_DIALECT)")

	viper.BindPFlag("db.host", RootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("db.port", RootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("db.name", RootCmd.PersistentFlags().Lookup("name"))
	viper.BindPFlag("db.user", RootCmd.PersistentFlags().Lookup("user"))
	viper.BindPFlag("db.dialect", RootCmd.PersistentFlags().Lookup("dialect"))
}

// initConfig reads the .env file, config file and environment variables.
func initConfig() {
	// Serverless build workers get config injected as env; local runs can
	// keep a .env alongside the checkout.
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("schema-gate")
		viper.SetConfigType("yaml")
	}

	bindEnv()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
