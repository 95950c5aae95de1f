package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultPath is where LoadConfig looks for overrides. The file is optional;
// every field has a working default so the program runs without one.
const DefaultPath = "bank.yaml"

type Config struct {
	AccountFilePath   string `yaml:"account_file_path"`
	JournalPath       string `yaml:"journal_path"`
	StatementDir      string `yaml:"statement_dir"`
	LogFilePath       string `yaml:"log_file_path"`
	MaxLoginAttempts  int    `yaml:"max_login_attempts"`
	MinPasswordLength int    `yaml:"min_password_length"`
	BcryptCost        int    `yaml:"bcrypt_cost"`
}

func defaultConfig() *Config {
	return &Config{
		AccountFilePath:   "bank_accounts.dat",
		JournalPath:       "transactions.log",
		StatementDir:      "statements",
		LogFilePath:       "bank.log",
		MaxLoginAttempts:  3,
		MinPasswordLength: 6,
		BcryptCost:        10,
	}
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.MaxLoginAttempts < 1 {
		return nil, fmt.Errorf("max_login_attempts must be at least 1, got %d", cfg.MaxLoginAttempts)
	}
	if cfg.MinPasswordLength < 1 {
		return nil, fmt.Errorf("min_password_length must be at least 1, got %d", cfg.MinPasswordLength)
	}
	return cfg, nil
}
