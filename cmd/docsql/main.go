package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docsql"
	"docsql/internal"
	"docsql/server/docsqlwire"
)

func main() {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:   "docsql",
		Short: "SQL engine over JSON document files",
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")

	var serveAddr string
	var serveDataDir string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the TCP SQL server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := internal.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if serveAddr != "" {
				cfg.Server.Addr = serveAddr
			}
			if serveDataDir != "" {
				cfg.Storage.Dir = serveDataDir
			}
			return docsqlwire.Run(docsqlwire.ServerConfig{
				Addr:        cfg.Server.Addr,
				DataDir:     cfg.Storage.Dir,
				PrettyPrint: cfg.Storage.PrettyPrint,
			})
		},
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "data directory (overrides config)")

	var execDataDir string
	execCmd := &cobra.Command{
		Use:   "exec <sql>",
		Short: "Execute one statement against a local data directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := openLocal(cfgPath, execDataDir)
			if err != nil {
				return err
			}
			res, err := ex.Execute(args[0])
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
	execCmd.Flags().StringVar(&execDataDir, "data-dir", "", "data directory (overrides config)")

	var replAddr string
	var replTimeout time.Duration
	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL console against a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(replAddr, replTimeout)
		},
	}
	replCmd.Flags().StringVar(&replAddr, "addr", "127.0.0.1:8866", "server address")
	replCmd.Flags().DurationVar(&replTimeout, "timeout", 3*time.Second, "dial timeout")

	var tablesDataDir string
	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "List all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := openLocal(cfgPath, tablesDataDir)
			if err != nil {
				return err
			}
			for _, name := range ex.ListTables() {
				fmt.Println(name)
			}
			return nil
		},
	}
	tablesCmd.Flags().StringVar(&tablesDataDir, "data-dir", "", "data directory (overrides config)")

	var describeDataDir string
	describeCmd := &cobra.Command{
		Use:   "describe <table>",
		Short: "Show a table's schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := openLocal(cfgPath, describeDataDir)
			if err != nil {
				return err
			}
			sc, err := ex.DescribeTable(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Table: %s\n", sc.TableName)
			for _, col := range sc.Columns {
				fmt.Printf("  %s\n", col.String())
			}
			if sc.PrimaryKey != "" {
				fmt.Printf("Primary key: %s\n", sc.PrimaryKey)
			}
			if len(sc.UniqueColumns) > 0 {
				fmt.Printf("Unique: %v\n", sc.UniqueColumns)
			}
			fmt.Printf("Created: %s\n", sc.CreatedAt.Format(time.RFC3339))
			return nil
		},
	}
	describeCmd.Flags().StringVar(&describeDataDir, "data-dir", "", "data directory (overrides config)")

	var dropDataDir string
	dropCmd := &cobra.Command{
		Use:   "drop <table>",
		Short: "Drop a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := openLocal(cfgPath, dropDataDir)
			if err != nil {
				return err
			}
			if err := ex.DropTable(args[0]); err != nil {
				return err
			}
			fmt.Printf("table '%s' dropped\n", args[0])
			return nil
		},
	}
	dropCmd.Flags().StringVar(&dropDataDir, "data-dir", "", "data directory (overrides config)")

	rootCmd.AddCommand(serveCmd, execCmd, replCmd, tablesCmd, describeCmd, dropCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openLocal(cfgPath, dataDir string) (*docsql.Executor, error) {
	cfg, err := internal.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Storage.Dir = dataDir
	}
	return docsql.Open(cfg.Storage.Dir, cfg.Storage.PrettyPrint)
}
