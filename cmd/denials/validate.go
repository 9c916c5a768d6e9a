package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/denials/internal/cli"
	"github.com/Veraticus/denials/internal/config"
	"github.com/Veraticus/denials/internal/storage"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input.json>",
		Short: "Check an input file without calling the LLM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], cmd.OutOrStdout())
		},
	}
}

func runValidate(path string, out io.Writer) error {
	inputPath, err := config.ResolveJSONPath(path)
	if err != nil {
		return err
	}

	claims, err := storage.LoadClaims(inputPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s: %d claims ready to classify", inputPath, len(claims))))
	if dups := storage.DuplicateIDs(claims); len(dups) > 0 {
		fmt.Fprintln(out, cli.FormatWarning("Duplicate claim ids: "+strings.Join(dups, ", ")))
	}
	return nil
}
