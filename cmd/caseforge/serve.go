package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/caseforge/internal/codec"
	"github.com/jonathan/caseforge/internal/config"
	"github.com/jonathan/caseforge/internal/server"
	"github.com/jonathan/caseforge/internal/service"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the case instruction HTTP server",
	Long: `Loads the master schema and seed corpus, replays persisted campaign state and serves
the instruction API: /health, /dashboard, /next-instruction, /submit-case, /agents/token.

Configuration can be loaded from a JSON file using --config. Command-line flags override
config file values; CASEFORGE_* environment variables override both.`,
	RunE: runServeCmd,
}

var (
	serveConfigPath       string
	serveHost             string
	servePort             int
	serveStateDir         string
	serveCorpusFile       string
	serveSchemaFile       string
	serveTargetTotalCases int
	serveGenerationTarget int
	serveSeed             int64
	serveCodecCommand     []string
	serveVerbose          bool
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCommand.Flags().StringVar(&serveHost, "host", "", "Listen address")
	serveCommand.Flags().IntVar(&servePort, "port", 0, "Listen port")
	serveCommand.Flags().StringVar(&serveStateDir, "state-dir", "", "Campaign state directory")
	serveCommand.Flags().StringVar(&serveCorpusFile, "corpus-file", "", "Seed corpus JSONL file")
	serveCommand.Flags().StringVar(&serveSchemaFile, "master-schema-file", "", "Master schema JSON file")
	serveCommand.Flags().IntVar(&serveTargetTotalCases, "target-total-cases", 0, "Total cases the campaign aims for, seeds included")
	serveCommand.Flags().IntVar(&serveGenerationTarget, "generation-target", 0, "Cases to generate (defaults to total minus seeds)")
	serveCommand.Flags().Int64Var(&serveSeed, "seed", 0, "Deterministic planning seed")
	serveCommand.Flags().StringSliceVar(&serveCodecCommand, "codec-command", nil, "External serializer argv (empty: built-in JSON codec)")
	serveCommand.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Development logging")

	rootCmd.AddCommand(serveCommand)
}

func loadServeConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("state-dir") {
		cfg.StateDir = serveStateDir
	}
	if cmd.Flags().Changed("corpus-file") {
		cfg.CorpusFile = serveCorpusFile
	}
	if cmd.Flags().Changed("master-schema-file") {
		cfg.MasterSchemaFile = serveSchemaFile
	}
	if cmd.Flags().Changed("target-total-cases") {
		cfg.TargetTotalCases = serveTargetTotalCases
	}
	if cmd.Flags().Changed("generation-target") {
		cfg.GenerationTarget = serveGenerationTarget
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = serveSeed
	}
	if cmd.Flags().Changed("codec-command") {
		cfg.CodecCommand = serveCodecCommand
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if serveVerbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newCodec(cfg *config.Configuration) (codec.Codec, error) {
	if len(cfg.CodecCommand) > 0 {
		return codec.NewCLI(cfg.CodecCommand)
	}
	return codec.NewJSON(), nil
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // flush on exit

	cdc, err := newCodec(cfg)
	if err != nil {
		return err
	}
	svc, err := service.New(cfg, cdc, log)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		SigningKey:         cfg.SigningKey,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, svc, log)
	return srv.Start()
}
