package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/metalagman/completest/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "COMPLETEST"

// Execute runs the root command.
func Execute(ctx context.Context) error {
	cmd, err := rootCmd()
	if err != nil {
		return err
	}
	return cmd.ExecuteContext(ctx)
}

func rootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           "completest",
		Short:         "completest sends one test completion to the OpenAI API and prints the text",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initSettings(); err != nil {
				return err
			}
			logging.Init(cmd.ErrOrStderr(), viper.GetBool("debug"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompletion(cmd.Context(), cmd.OutOrStdout())
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file path (default $HOME/.openai/config.ini)")
	flags.Bool("debug", false, "enable debug logging")
	flags.Duration("timeout", 0, "HTTP request timeout (0 keeps the client default)")
	for _, name := range []string{"config", "debug", "timeout"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind %s flag: %w", name, err)
		}
	}

	cmd.AddCommand(versionCmd())
	return cmd, nil
}

// initSettings exposes COMPLETEST_* variables, including ones from ./.env, to viper.
func initSettings() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
