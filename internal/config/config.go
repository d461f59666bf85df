// Package config loads OpenAI client settings from the user's INI file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/ini.v1"
)

const (
	// KeyAPIKey is the default-section key holding the API credential.
	KeyAPIKey       = "OPENAI_API_KEY"
	KeyBaseURL      = "OPENAI_API_BASE"
	KeyOrganization = "OPENAI_ORGANIZATION"

	dirName  = ".openai"
	fileName = "config.ini"
)

var (
	// ErrNotFound is returned when the config file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrMissingAPIKey is returned when the default section has no usable API key.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set in the DEFAULT section")
	// ErrDuplicateKey is returned when a section assigns the same key twice.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Section names stay case-sensitive, so only a literal [DEFAULT] header
// feeds the default section. Quotes are part of the value.
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	IgnoreInlineComment:        true,
	PreserveSurroundedQuote:    true,
	AllowShadows:               true,
	AllowDuplicateShadowValues: true,
}

// Config holds the settings read from the DEFAULT section.
type Config struct {
	APIKey       string `mapstructure:"OPENAI_API_KEY"`
	BaseURL      string `mapstructure:"OPENAI_API_BASE"`
	Organization string `mapstructure:"OPENAI_ORGANIZATION"`
}

// DefaultPath returns <home>/.openai/config.ini for the current user.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads path and decodes its DEFAULT section.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}

	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := checkDuplicates(file); err != nil {
		return Config{}, fmt.Errorf("%w: %s", err, path)
	}

	settings := defaultSettings(file)
	if strings.TrimSpace(settings[KeyAPIKey].(string)) == "" {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingAPIKey, path)
	}
	if err := ValidateSettings(settings); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultSettings flattens the DEFAULT section into a map keyed by the
// upper-cased key names. Unknown keys are kept so the schema can see them.
func defaultSettings(file *ini.File) map[string]any {
	section := file.Section(ini.DefaultSection)
	settings := map[string]any{KeyAPIKey: ""}
	for _, key := range section.Keys() {
		settings[strings.ToUpper(key.Name())] = key.String()
	}
	return settings
}

func checkDuplicates(file *ini.File) error {
	for _, section := range file.Sections() {
		for _, key := range section.Keys() {
			if len(key.ValueWithShadows()) > 1 {
				return fmt.Errorf("%w %q in section [%s]", ErrDuplicateKey, key.Name(), section.Name())
			}
		}
	}
	return nil
}
