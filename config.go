package main

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	DEFAULT_TIMEOUT     = 3
	DEFAULT_CONFIG_PATH = "config.yaml"
	CONFIG_PATH_ENV     = "LCD_QUERY_CONFIG"
)

type Chain struct {
	LCDURL  string `yaml:"lcdURL"`
	Timeout int    `yaml:"timeout"`
}

func (c Chain) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DEFAULT_TIMEOUT * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Host string `yaml:"host"`
	} `yaml:"server"`

	Chains map[string]Chain `yaml:"chains"`
}

func (c *Config) getChains() []string {
	var result []string
	for k := range c.Chains {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func (c *Config) chain(name string) (Chain, bool) {
	chain, ok := c.Chains[name]
	return chain, ok
}

func (c *Config) validate() error {
	if len(c.Chains) == 0 {
		return errors.New("at least one chain must be configured")
	}
	for name, chain := range c.Chains {
		if chain.LCDURL == "" {
			return errors.Errorf("chain %s: each chain must have lcdURL", name)
		}
		if !strings.HasPrefix(chain.LCDURL, "http") {
			return errors.Errorf("chain %s: lcdURL must be formatted as http", name)
		}
		chain.LCDURL = strings.TrimRight(chain.LCDURL, "/")
		c.Chains[name] = chain
	}
	return nil
}

func parseConfig(b []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath prefers the flag, then LCD_QUERY_CONFIG (which may come
// from a .env file), then config.yaml.
func resolveConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	_ = godotenv.Load()
	if p := os.Getenv(CONFIG_PATH_ENV); p != "" {
		return p
	}
	return DEFAULT_CONFIG_PATH
}

func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return parseConfig(b)
}
