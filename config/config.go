package config

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"gopkg.in/yaml.v3"

	"github.com/solrealms/proposal-go/pkg/logger"
)

// LogConfig mirrors the logger options in yaml form.
type LogConfig struct {
	Format   string `yaml:"format"`   // "console" or "json"
	LogDir   string `yaml:"log_dir"`  // empty logs to stderr
	Level    string `yaml:"level"`    // debug / info / warn / error
	Compress bool   `yaml:"compress"` // compress rotated files
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RPCConfig selects the cluster endpoint and commitment.
type RPCConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Commitment string `yaml:"commitment"` // processed / confirmed / finalized
}

// ProgramConfig overrides the default on-chain program addresses, mainly for
// devnet deployments.
type ProgramConfig struct {
	Governance string `yaml:"governance"`
	Amm        string `yaml:"amm"`
	AmmConfig  string `yaml:"amm_config"`
	Lockup     string `yaml:"lockup"`
}

// Config is the top-level yaml configuration.
type Config struct {
	RPCConf     RPCConfig     `yaml:"rpc"`
	ProgramConf ProgramConfig `yaml:"programs"`
	LogConf     LogConfig     `yaml:"logger"`
}

// Load reads and validates a yaml config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.RPCConf.Endpoint == "" {
		return fmt.Errorf("rpc.endpoint is required")
	}
	switch c.RPCConf.Commitment {
	case "", string(rpc.CommitmentProcessed), string(rpc.CommitmentConfirmed), string(rpc.CommitmentFinalized):
	default:
		return fmt.Errorf("rpc.commitment %q is not a commitment level", c.RPCConf.Commitment)
	}
	for name, address := range map[string]string{
		"programs.governance": c.ProgramConf.Governance,
		"programs.amm":        c.ProgramConf.Amm,
		"programs.amm_config": c.ProgramConf.AmmConfig,
		"programs.lockup":     c.ProgramConf.Lockup,
	} {
		if address == "" {
			continue
		}
		if _, err := solana.PublicKeyFromBase58(address); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
