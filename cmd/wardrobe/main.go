package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	version   = "dev"
	settings  config.Settings
	logCloser io.Closer
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "👗 Terminal client for your closet",
		Long: `wardrobe: upload photos of your clothes, confirm what the classifier
sees, and browse, tag and combine the garments in your closet.

All data lives in the closet service; wardrobe is the client.`,
		PersistentPreRunE:  initConfig,
		PersistentPostRunE: closeLog,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/wardrobe/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("format", config.DefaultOutputFormat, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("api-url", config.DefaultBaseURL, "closet service base URL")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))

	// Add commands
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(uploadCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(favoriteCmd())
	rootCmd.AddCommand(archiveCmd())
	rootCmd.AddCommand(wearCmd())
	rootCmd.AddCommand(reclassifyCmd())
	rootCmd.AddCommand(imageCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(filtersCmd())
	rootCmd.AddCommand(outfitCmd())
	rootCmd.AddCommand(colorsCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in standard locations
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables: WARDROBE_API_BASE_URL overrides api.base_url
	viper.SetEnvPrefix("WARDROBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	// The browser owns the screen, so its log always goes to a file.
	logFile := loaded.Logging.File
	if cmd.Name() == "browse" && logFile == "" {
		logFile = config.DefaultLogFile()
	}

	closer, err := common.SetupLogger(common.LogOptions{
		Level:  loaded.Logging.Level,
		Format: loaded.Logging.Format,
		File:   logFile,
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	settings = loaded
	logCloser = closer
	slog.Debug("Configuration loaded", "config_file", viper.ConfigFileUsed(), "base_url", settings.API.BaseURL)
	return nil
}

func closeLog(_ *cobra.Command, _ []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// errorMessage prefers the user-facing text of a UserError.
func errorMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return "Error: " + userErr.UserMessage
	}
	return "Error: " + err.Error()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wardrobe %s\n", version)
		},
	}
}
