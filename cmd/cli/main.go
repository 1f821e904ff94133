package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"liftdash/internal"
	"liftdash/internal/config"
	"liftdash/internal/container"
	"liftdash/internal/filter"
	"liftdash/internal/plot"
	"liftdash/internal/report"
	"liftdash/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// sourceFlags are shared by every command that reads the survey
type sourceFlags struct {
	file    string
	faculty string
	program string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "survey file (.csv or .xlsx); defaults to DATA_FILE")
	cmd.Flags().StringVar(&f.faculty, "fakultas", "", "faculty filter (empty for all)")
	cmd.Flags().StringVar(&f.program, "prodi", "", "program filter (empty for all)")
}

// build loads the survey and builds the dashboard model for the flags
func (f *sourceFlags) build(ctx context.Context) (*report.Dashboard, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f.file != "" {
		cfg.Data.File = f.file
		cfg.Database.URL = ""
	}

	deps, err := container.New(cfg, internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level)))
	if err != nil {
		return nil, err
	}
	if err := deps.Init(ctx); err != nil {
		return nil, err
	}
	defer deps.Close()

	table, err := deps.Tables.Load(ctx)
	if err != nil {
		return nil, err
	}
	return report.Build(table, filter.NewSelection(f.faculty, f.program)), nil
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "liftdash-cli",
		Short: "Lift survey dashboard from the terminal",
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newChartsCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSummaryCmd() *cobra.Command {
	var flags sourceFlags
	var detail bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary (and optionally the detail) section as tables",
		Long: `Print the dashboard for a faculty/program selection.

Example: liftdash-cli summary --fakultas "Fakultas Teknik" --detail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.build(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDashboard(d, detail))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&detail, "detail", false, "also print the detail section")
	return cmd
}

func newChartsCmd() *cobra.Command {
	var flags sourceFlags
	var outDir string

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Write the dashboard charts as PNG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.build(cmd.Context())
			if err != nil {
				return err
			}
			if d.NoData {
				return fmt.Errorf("%s", d.Message)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			paths, err := plot.WriteDashboard(outDir, d)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "charts", "output directory")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	cfg := testkit.DefaultGeneratorConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic survey file for demos and local runs",
		Long: `Generate a deterministic synthetic survey. The extension of --out picks the format.

Example: liftdash-cli generate --rows 300 --seed 7 --out data_final_bersih.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := testkit.Generate(cfg)
			if err != nil {
				return err
			}
			switch strings.ToLower(filepath.Ext(out)) {
			case ".xlsx":
				err = testkit.WriteXLSX(out, raw)
			case ".csv":
				err = testkit.WriteCSV(out, raw)
			default:
				return fmt.Errorf("unsupported output extension %q (use .csv or .xlsx)", filepath.Ext(out))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d responses to %s\n", len(raw.Rows), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "number of responses")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	cmd.Flags().IntVar(&cfg.NumericColumns, "numeric", cfg.NumericColumns, "number of num_* columns")
	cmd.Flags().Float64Var(&cfg.MissingProgramRate, "missing-prodi", cfg.MissingProgramRate, "share of rows without Prodi")
	cmd.Flags().StringVar(&out, "out", config.DefaultDataFile, "output path (.csv or .xlsx)")
	return cmd
}
