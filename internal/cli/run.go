package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	metawizard "github.com/goliatone/go-metawizard"
	"github.com/goliatone/go-metawizard/pkg/config"
	"github.com/goliatone/go-metawizard/pkg/export"
	"github.com/goliatone/go-metawizard/pkg/prompt"
	"github.com/goliatone/go-metawizard/pkg/report"
	"github.com/goliatone/go-metawizard/pkg/schema"
)

type runFlags struct {
	data          string
	configPath    string
	outDir        string
	format        string
	decisionsFile string
	algorithm     bool
	summary       bool
}

func newRunCmd(app *App) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Walk the dataset columns and write decisions and hyperparameters",
		Long: `Load a CSV dataset, choose the outcome, grouping and panel columns, then
record per column decisions. The decision table is written in the selected
format and the hyperparameters to setup_hyper.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd, app, flags)
		},
	}
	cmd.Flags().StringVar(&flags.data, "data", "", "CSV dataset to process")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "JSON or YAML config file")
	cmd.Flags().StringVar(&flags.outDir, "out", "", "output directory")
	cmd.Flags().StringVar(&flags.format, "format", "", "decision table format (csv, json, html, txt)")
	cmd.Flags().StringVar(&flags.decisionsFile, "decisions-file", "", "decision table file name")
	cmd.Flags().BoolVar(&flags.algorithm, "algorithm", false, "also collect search algorithm parameters")
	cmd.Flags().BoolVar(&flags.summary, "summary", true, "print a text summary when done")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func runWizard(cmd *cobra.Command, app *App, flags *runFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.outDir != "" {
		cfg.Output.Dir = flags.outDir
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.decisionsFile != "" {
		cfg.Output.DecisionsFile = flags.decisionsFile
	}
	if cmd.Flags().Changed("algorithm") {
		cfg.AlgorithmWizard = flags.algorithm
	}

	engine, err := report.New()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	runner, err := metawizard.NewRunner(cfg, app.Driver(out))
	if err != nil {
		return err
	}

	res, err := runner.Run(cmd.Context(), flags.data)
	if errors.Is(err, prompt.ErrAborted) {
		printWarning(out, "aborted, nothing was saved past the last confirmation")
		return err
	}
	if err != nil {
		return err
	}

	for _, rec := range res.Records {
		if err := schema.ValidateDecision(rec); err != nil {
			printWarning(out, err.Error())
		}
	}
	if err := schema.ValidateHyper(res.Hyper); err != nil {
		printWarning(out, err.Error())
	}
	if res.Algorithm != nil {
		if err := schema.ValidateAlgorithm(*res.Algorithm); err != nil {
			printWarning(out, err.Error())
		}
	}

	printSection(out, "Run "+res.SessionID)
	printLabelValue(out, "Decisions", res.DecisionsPath)
	printLabelValue(out, "Hyperparameters", res.HyperPath)
	if res.AlgorithmPath != "" {
		printLabelValue(out, "Algorithm", res.AlgorithmPath)
	}
	if res.Partial {
		printWarning(out, fmt.Sprintf("saved before the last column: %d decisions", len(res.Records)))
	}

	if flags.summary {
		doc := export.Decisions{SessionID: res.SessionID, Roles: res.Roles, Records: res.Records}
		if err := (report.Text{Engine: engine}).Encode(out, doc); err != nil {
			return err
		}
	}
	printSuccess(out, "done")
	return nil
}
