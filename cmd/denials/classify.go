package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/denials/internal/cli"
	"github.com/Veraticus/denials/internal/common"
	"github.com/Veraticus/denials/internal/config"
	"github.com/Veraticus/denials/internal/engine"
	"github.com/Veraticus/denials/internal/service"
	"github.com/Veraticus/denials/internal/storage"
)

// pacingSleep waits between claims; tests swap it out.
var pacingSleep service.SleepFunc = common.Sleep

type classifyOptions struct {
	inputPath  string
	outputPath string
	pacing     time.Duration
	quiet      bool
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [input.json] [output.json]",
		Short: "Classify every claim in an input file",
		Long: `Classify reads a JSON array of {"id", "denial_note"} objects, classifies each
denial note with the configured LLM and writes the enriched claims, in input order,
to the output file. Claims that fail are kept with an "error" field.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := classifyOptions{
				inputPath:  viper.GetString("classify.input"),
				outputPath: viper.GetString("classify.output"),
				pacing:     viper.GetDuration("classify.pacing"),
				quiet:      viper.GetBool("classify.quiet"),
			}
			if len(args) > 0 {
				opts.inputPath = args[0]
			}
			if len(args) > 1 {
				opts.outputPath = args[1]
			}
			return runClassify(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringP("input", "i", "", "input claims file (.json)")
	cmd.Flags().StringP("output", "o", "", "output results file (.json)")
	cmd.Flags().Duration("pacing", engine.DefaultPacingInterval, "pause between claims (minimum 500ms)")
	cmd.Flags().BoolP("quiet", "q", false, "hide the progress bar")

	_ = viper.BindPFlag("classify.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("classify.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("classify.pacing", cmd.Flags().Lookup("pacing"))
	_ = viper.BindPFlag("classify.quiet", cmd.Flags().Lookup("quiet"))

	return cmd
}

func runClassify(ctx context.Context, opts classifyOptions, stdout, stderr io.Writer) error {
	inputPath, err := config.ResolveJSONPath(opts.inputPath)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	outputPath, err := config.ResolveJSONPath(opts.outputPath)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if opts.pacing == 0 {
		opts.pacing = engine.DefaultPacingInterval
	}
	if opts.pacing < engine.DefaultPacingInterval {
		return common.NewConfigError(
			fmt.Sprintf("pacing %s is below the minimum of %s", opts.pacing, engine.DefaultPacingInterval), nil)
	}

	llmCfg, err := config.LoadLLMConfig(viper.GetViper())
	if err != nil {
		return err
	}

	logger := slog.Default().With("run_id", uuid.NewString())

	claims, err := storage.LoadClaims(inputPath)
	if err != nil {
		return err
	}

	classifier, err := newClassifier(llmCfg, logger)
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(stderr)
	ctx = interrupts.HandleInterrupts(ctx, outputPath)
	defer interrupts.Stop()

	runnerOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithPacing(opts.pacing),
		engine.WithSleep(pacingSleep),
	}
	var bar *cli.ProgressBar
	if !opts.quiet && len(claims) > 0 {
		bar = cli.NewProgressBar(stderr, len(claims))
		runnerOpts = append(runnerOpts, engine.WithProgress(bar))
	}

	logger.Info("Classifying claims",
		"input", inputPath,
		"output", outputPath,
		"model", llmCfg.Model,
		"claims", len(claims))

	start := time.Now()
	results, err := engine.NewBatchRunner(classifier, runnerOpts...).Run(ctx, claims)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("classification interrupted, no output written: %w", err)
		}
		return err
	}
	if bar != nil {
		bar.Finish()
	}

	if err := storage.WriteResults(outputPath, results); err != nil {
		return err
	}

	summary := engine.Summarize(results)
	summary.Duration = time.Since(start)

	logger.Info("Run complete",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)

	if _, err := fmt.Fprintln(stdout, cli.RenderSummary(summary, outputPath)); err != nil {
		slog.Warn("Failed to write summary", "error", err)
	}

	return nil
}
