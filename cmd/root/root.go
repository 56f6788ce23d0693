// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/ksef-pdf/internal/config"
	"fjacquet/ksef-pdf/internal/container"
	"fjacquet/ksef-pdf/internal/generator"
	"fjacquet/ksef-pdf/internal/kseferror"
	"fjacquet/ksef-pdf/internal/logging"
	"fjacquet/ksef-pdf/internal/models"

	"github.com/spf13/cobra"
)

// Usage is the one-line synopsis printed with argument errors.
const Usage = "ksef-pdf <invoice|faktura|upo> <inputXml> <outputPdf> [additionalDataJson]"

// CommonFlags represents the flags shared by every command
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Format     string
}

var (
	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	// AppConfig is the configuration loaded before any command runs
	AppConfig *config.Config

	// AppContainer holds the wired application dependencies
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ksef-pdf <invoice|faktura|upo> <inputXml> <outputPdf> [additionalDataJson]",
		Short: "Render KSeF invoices and UPO confirmations to PDF.",
		Long: `ksef-pdf renders a KSeF FA invoice or a UPO receipt confirmation to PDF.

For invoices, the KSeF number and the verification QR code are derived from
the input when they are not supplied in additionalDataJson:

  nrKSeF  input file name without the .xml extension
  qrCode  https://qr.ksef.mf.gov.pl/invoice/{NIP}/{DD-MM-YYYY}/{SHA-256 hash}

Example:
  ksef-pdf invoice FA-2024-001.xml FA-2024-001.pdf
  ksef-pdf faktura in.xml out.pdf '{"nrKSeF":"5260001246-20240110-ABCDEF-01"}'
  ksef-pdf upo upo.xml upo.pdf`,
		Args:              validateArgs,
		PersistentPreRunE: initialize,
		RunE:              run,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.ksef-pdf, .ksef-pdf and the working directory)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Format, "format", "", "Output encoding (pdf, base64)")
}

// validateArgs runs before any configuration or file access. Arguments after
// additionalDataJson are ignored.
func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 3 {
		return &kseferror.UsageError{Reason: "usage: " + Usage}
	}
	if _, err := models.ParseDocumentType(args[0]); err != nil {
		return &kseferror.UsageError{Reason: err.Error()}
	}
	return nil
}

// initialize loads .env and the configuration, then wires the container.
func initialize(cmd *cobra.Command, args []string) error {
	envFile := config.LoadEnv()

	overrides := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		overrides["log.level"] = SharedFlags.LogLevel
	}
	if flags.Changed("log-format") {
		overrides["log.format"] = SharedFlags.LogFormat
	}
	if flags.Changed("format") {
		overrides["output.format"] = SharedFlags.Format
	}

	cfg, err := config.Load(SharedFlags.ConfigFile, overrides)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	AppConfig = cfg
	AppContainer = c

	if envFile != "" {
		c.GetLogger().Debug("Loaded environment file", logging.F(logging.FieldConfigFile, envFile))
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	docType, err := models.ParseDocumentType(args[0])
	if err != nil {
		return &kseferror.UsageError{Reason: err.Error()}
	}

	req := generator.Request{
		Type:       docType,
		InputPath:  args[1],
		OutputPath: args[2],
		Format:     AppContainer.GetOutputFormat(),
	}
	if len(args) > 3 {
		req.AdditionalData = args[3]
	}

	res, err := AppContainer.GetGenerator().Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "PDF generated: %s\n", res.OutputPath)
	return nil
}

// GetContainer returns the application container, or nil before initialization
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before initialization
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the container logger, or a discarding logger before initialization
func GetLogger() logging.Logger {
	if AppContainer == nil {
		return logging.Discard()
	}
	return AppContainer.GetLogger()
}
