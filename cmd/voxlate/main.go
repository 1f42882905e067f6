package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leonardotrapani/voxlate/internal/artifact"
	"github.com/leonardotrapani/voxlate/internal/config"
	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/logging"
	"github.com/leonardotrapani/voxlate/internal/pipeline"
	"github.com/leonardotrapani/voxlate/internal/tui"
)

var (
	configPath string
	logLevel   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "voxlate",
		Short:        "Detect, translate and speak text or recorded speech",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/voxlate/config.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		serveCmd(),
		translateCmd(),
		speakCmd(),
		detectCmd(),
		languagesCmd(),
		interactiveCmd(),
		configureCmd(),
		configCmd(),
	)
	return root
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

// loadConfig reads and validates the config. One-shot commands log at warn
// unless --log-level says otherwise, so their output stays readable.
func loadConfig(oneShot bool) (*config.Config, *logrus.Logger, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch {
	case logLevel != "":
		cfg.General.LogLevel = logLevel
	case oneShot:
		cfg.General.LogLevel = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logger := logging.New(cfg.ToLoggingOptions())
	logrus.SetLevel(logger.GetLevel())
	return cfg, logger, nil
}

// buildPipeline assembles a pipeline for a one-shot command. Audio it writes
// outlives the process and is expired by the next run that opens the store.
func buildPipeline(cfg *config.Config, logger *logrus.Logger) (*pipeline.Pipeline, *artifact.Store, error) {
	store, err := pipeline.OpenStore(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audio store: %w", err)
	}
	p, err := pipeline.Build(cfg, pipeline.NewDetector(cfg, logger), store, logger)
	if err != nil {
		return nil, nil, err
	}
	return p, store, nil
}

func printResult(w io.Writer, r pipeline.Result) error {
	if !r.OK() {
		return errors.New(r.Message())
	}
	if r.Transcript != "" {
		fmt.Fprintf(w, "Heard:       %s\n", r.Transcript)
	}
	fmt.Fprintf(w, "Detected:    %s\n", r.Label())
	fmt.Fprintf(w, "Translation: %s\n", r.Message())
	if path := r.AudioPath(); path != "" {
		fmt.Fprintf(w, "Audio:       %s\n", path)
	}
	return nil
}

func translateCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text and synthesize the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(true)
			if err != nil {
				return err
			}
			p, _, err := buildPipeline(cfg, logger)
			if err != nil {
				return err
			}
			r := p.Translate(cmd.Context(), strings.Join(args, " "), target)
			return printResult(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVar(&target, "to", language.DefaultName, "target language name (see 'voxlate languages')")
	return cmd
}

func speakCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "speak <audio-file>",
		Short: "Transcribe an audio file and translate what was said",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(true)
			if err != nil {
				return err
			}
			if !cfg.SpeechEnabled() {
				return errors.New("speech input is disabled: set [transcription] provider in the config")
			}
			p, _, err := buildPipeline(cfg, logger)
			if err != nil {
				return err
			}
			r := p.TranslateSpeech(cmd.Context(), args[0], target)
			return printResult(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVar(&target, "to", language.DefaultName, "target language name (see 'voxlate languages')")
	return cmd
}

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <text>",
		Short: "Detect the language of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(true)
			if err != nil {
				return err
			}
			r := pipeline.NewDetector(cfg, logger).Detect(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Tag, r.Name)
			return nil
		},
	}
}

// languageRecord is the machine-readable form of a registry entry
type languageRecord struct {
	Name           string `json:"name" yaml:"name"`
	SynthesisCode  string `json:"synthesis_code,omitempty" yaml:"synthesis_code,omitempty"`
	TranslationTag string `json:"translation_tag" yaml:"translation_tag"`
}

func writeLanguages(w io.Writer, format string) error {
	entries := language.List()
	records := make([]languageRecord, len(entries))
	for i, e := range entries {
		records[i] = languageRecord{Name: e.Name, SynthesisCode: e.SynthesisCode, TranslationTag: e.TranslationTag}
	}

	switch format {
	case "", "text":
		_, err := fmt.Fprint(w, tui.RenderLanguages(entries))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %s (supported: text, json, yaml)", format)
	}
}

func languagesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List selectable target languages with their codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeLanguages(cmd.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Translate in an interactive terminal shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(true)
			if err != nil {
				return err
			}
			p, store, err := buildPipeline(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go store.Run(ctx, cfg.Audio.SweepInterval)

			return tui.RunShell(ctx, p)
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration editor for voxlate.
This will guide you through setting up:
- Provider API keys (OpenAI, Groq, ElevenLabs, Hugging Face, LibreTranslate)
- Translation engine
- Speech synthesis
- Speech input (transcription)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			result, err := tui.Configure(cfg)
			if err != nil {
				return fmt.Errorf("configuration editor error: %w", err)
			}
			if result.Cancelled {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration cancelled.")
				return nil
			}

			if err := config.Save(path, result.Config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			if err := config.SaveDefaultConfig(path, force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
