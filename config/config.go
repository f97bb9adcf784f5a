package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type OpenAIConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type Config struct {
	Addr         string       `yaml:"addr"`
	DatabasePath string       `yaml:"database_path"`
	Admin        AdminConfig  `yaml:"admin"`
	OpenAI       OpenAIConfig `yaml:"openai"`
}

func Default() *Config {
	return &Config{
		Addr:         ":8080",
		DatabasePath: "minerva.db",
		Admin: AdminConfig{
			Username: "admin",
			Password: "minerva",
		},
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-3.5-turbo",
			Temperature: 0.7,
			MaxTokens:   2000,
		},
	}
}

// Load reads the YAML config at path when it exists and applies
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("MINERVA_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MINERVA_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("MINERVA_ADMIN_USER"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("MINERVA_ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("MINERVA_OPENAI_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := os.Getenv("MINERVA_OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}

	return cfg, nil
}
