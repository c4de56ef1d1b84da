// dlq runs ad hoc datalog queries against a Postgres-backed engine. Query
// text is validated structurally before it is sent; arguments are parsed
// heuristically from the command line.
//
//	dlq query --config dlq.yaml '[ :find ?e :in $ ?name :where [ ?e :person/name ?name ] ]' alice
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/peergraph/datalog-client-go/datalog"
	"github.com/peergraph/datalog-client-go/datalog/oteladapters"
	"github.com/peergraph/datalog-client-go/datalog/postgresengine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "dlq",
		Short:         "Run datalog queries against a Postgres-backed engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "dlq.yaml", "path to the yaml config file")

	root.AddCommand(newQueryCmd(&configPath))
	root.AddCommand(newValidateCmd())

	return root
}

func newQueryCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "query <query-text> [arg...]",
		Short: "Validate, execute, and print a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			src, err := datalog.NewStructuralValidator().Validate(args[0])
			if err != nil {
				return err
			}

			return runQuery(cmd.Context(), cmd, cfg, src, parseArgs(args[1:]))
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <query-text>",
		Short: "Check query text structurally without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := datalog.NewStructuralValidator().Validate(args[0])
			if err != nil {
				return err
			}

			cmd.Println(src.Render())

			return nil
		},
	}
}

func runQuery(ctx context.Context, cmd *cobra.Command, cfg Config, src datalog.Source, args []datalog.Value) error {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.DSN, err)
	}
	defer pool.Close()

	logger := newLogger(cfg.Verbose)

	engineOptions := []postgresengine.Option{postgresengine.WithContextualLogger(logger)}
	if cfg.FunctionName != "" {
		engineOptions = append(engineOptions, postgresengine.WithFunctionName(cfg.FunctionName))
	}

	engine, err := postgresengine.NewEngineFromPGXPool(pool, engineOptions...)
	if err != nil {
		return err
	}

	executor, err := datalog.NewExecutor(engine, datalog.WithContextualLogger(logger))
	if err != nil {
		return err
	}

	seq, err := executor.Execute(ctx, src, args...)
	if err != nil {
		return err
	}
	defer seq.Close()

	count := 0
	for seq.Next() {
		cmd.Println(renderRow(seq.Row()))
		count++
	}

	if err := seq.Err(); err != nil {
		return err
	}

	cmd.Printf("%d row(s)\n", count)

	return nil
}

func newLogger(verbose bool) datalog.ContextualLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	return oteladapters.NewSlogBridgeLoggerWithHandler(handler)
}

func renderRow(row datalog.Row) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = v.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}
