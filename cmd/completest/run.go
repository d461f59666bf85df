package main

import (
	"context"
	"fmt"
	"io"

	"github.com/metalagman/completest/internal/completion"
	"github.com/metalagman/completest/internal/config"
	"github.com/metalagman/completest/internal/openaiapi"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func runCompletion(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := openaiapi.NewClient(openaiapi.Config{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		Organization: cfg.Organization,
		Timeout:      viper.GetDuration("timeout"),
	}, nil)
	if err != nil {
		return fmt.Errorf("create openai client: %w", err)
	}

	return completion.Run(ctx, client, out)
}

func loadConfig() (config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, err
		}
	}
	log.Debug().Str("path", path).Msg("loading config")
	return config.Load(path)
}
