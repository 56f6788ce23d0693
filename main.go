package main

import (
	"fmt"
	"os"

	"fjacquet/ksef-pdf/cmd/batch"
	"fjacquet/ksef-pdf/cmd/configcmd"
	"fjacquet/ksef-pdf/cmd/qr"
	"fjacquet/ksef-pdf/cmd/root"
)

func init() {
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(qr.Cmd)
	root.Cmd.AddCommand(configcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
