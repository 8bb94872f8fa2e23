// gridserver runs the collaborative spreadsheet-grid server and offers
// workbook import/export from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/deep-bhut-zeuslearning/excel/config"
	"github.com/deep-bhut-zeuslearning/excel/formula"
	"github.com/deep-bhut-zeuslearning/excel/server"
	"github.com/deep-bhut-zeuslearning/excel/sheet"
	"github.com/deep-bhut-zeuslearning/excel/xlsx"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "gridserver",
		Short: "Collaborative spreadsheet grid server",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP/websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			manager := sheet.NewManager(cfg.DataDir, sheet.Options{
				Rows:         cfg.Rows,
				Cols:         cfg.Cols,
				MaxRows:      cfg.MaxRows,
				MaxCols:      cfg.MaxCols,
				HistoryLimit: cfg.HistoryLimit,
				Evaluator:    formula.New(),
			})
			users := server.NewUserManager(cfg.DataDir)
			return server.New(cfg.Addr, manager, users).Run()
		},
	}

	var exportSheet string
	export := &cobra.Command{
		Use:   "export <sheet-id> <output.xlsx>",
		Short: "Export a persisted sheet to an Excel workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			manager := sheet.NewManager(cfg.DataDir, sheet.Options{
				MaxRows:   cfg.MaxRows,
				MaxCols:   cfg.MaxCols,
				Evaluator: formula.New(),
			})
			manager.Load()
			sh := manager.Get(args[0])
			if sh == nil {
				return fmt.Errorf("sheet %q not found", args[0])
			}
			name := exportSheet
			if name == "" {
				name = sh.Name
			}
			return xlsx.Export(sh.Store, args[1], name)
		},
	}
	export.Flags().StringVar(&exportSheet, "sheet-name", "", "worksheet name in the output file")

	root.AddCommand(serve, export)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})))
}
