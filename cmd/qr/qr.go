// Package qr prints the KSeF number and verification URL for an invoice.
package qr

import (
	"fmt"

	"fjacquet/ksef-pdf/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the qr command
var Cmd = &cobra.Command{
	Use:   "qr <inputXml> [additionalDataJson]",
	Short: "Print the KSeF number and verification QR code URL of an invoice",
	Long: `Print the KSeF number and the verification QR code URL that would be
placed on the rendered invoice, without producing a PDF. Values supplied in
additionalDataJson are printed unchanged.

Example:
  ksef-pdf qr FA-2024-001.xml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: qrFunc,
}

func qrFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	var additionalData string
	if len(args) == 2 {
		additionalData = args[1]
	}

	meta, err := appContainer.GetGenerator().Describe(args[0], additionalData)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "nrKSeF: %s\n", meta.NrKSeF)
	fmt.Fprintf(out, "qrCode: %s\n", meta.QRCode)
	return nil
}
