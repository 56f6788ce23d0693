// Package batch handles batch processing of files
package batch

import (
	"fmt"

	"fjacquet/ksef-pdf/cmd/root"
	"fjacquet/ksef-pdf/internal/kseferror"
	"fjacquet/ksef-pdf/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch <invoice|faktura|upo> <inputDir> <outputDir> [additionalDataJson]",
	Short: "Batch process files from a directory",
	Long: `Batch process every XML file in an input directory and write one PDF per
file to another directory.

Files are converted one at a time. A file that fails is recorded and the
remaining files are still processed. A report.csv with the outcome of each
file is written to the output directory. The command exits with status 1 when
any file failed.

Example:
  ksef-pdf batch invoice input_dir/ output_dir/`,
	Args: validateArgs,
	RunE: batchFunc,
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 3 {
		return &kseferror.UsageError{Reason: "usage: ksef-pdf " + cmd.Use}
	}
	if _, err := models.ParseDocumentType(args[0]); err != nil {
		return &kseferror.UsageError{Reason: err.Error()}
	}
	return nil
}

func batchFunc(cmd *cobra.Command, args []string) error {
	docType, err := models.ParseDocumentType(args[0])
	if err != nil {
		return &kseferror.UsageError{Reason: err.Error()}
	}
	var additionalData string
	if len(args) > 3 {
		additionalData = args[3]
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	summary, err := appContainer.GetBatchProcessor().Process(cmd.Context(), args[1], args[2], docType, additionalData)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d file(s), %d failed\n", summary.Processed, summary.Failed)
	fmt.Fprintf(out, "Report: %s\n", summary.ReportPath)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.Failed, summary.Processed)
	}
	return nil
}
