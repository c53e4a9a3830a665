package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pricingxol/claimlens/pipeline"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StoreConfig struct {
	MaxDatasets int `yaml:"max_datasets"`
}

// PipelineConfig selects the pipeline variant. Leaving it empty yields the
// richer variant (absent optional columns default to "ALL", underwriting
// year derived); the simpler variant is expressed by overriding these
// fields, not by a separate code path.
type PipelineConfig struct {
	UnderwritingYear *bool                  `yaml:"underwriting_year"`
	OptionalColumns  []OptionalColumnConfig `yaml:"optional_columns"`
}

type OptionalColumnConfig struct {
	Name          string `yaml:"name"`
	AbsentDefault string `yaml:"absent_default"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Store.MaxDatasets == 0 {
		cfg.Store.MaxDatasets = 20
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// PipelineVariant resolves the configured variant against the defaults.
func (c *Config) PipelineVariant() pipeline.Config {
	p := pipeline.DefaultConfig()

	if c.Pipeline.UnderwritingYear != nil {
		p.UnderwritingYear = *c.Pipeline.UnderwritingYear
	}
	if len(c.Pipeline.OptionalColumns) > 0 {
		cols := make([]pipeline.OptionalColumn, 0, len(c.Pipeline.OptionalColumns))
		for _, oc := range c.Pipeline.OptionalColumns {
			col := pipeline.OptionalColumn{Name: oc.Name, AbsentDefault: oc.AbsentDefault}
			if col.AbsentDefault == "" {
				col.AbsentDefault = "UNKNOWN"
			}
			cols = append(cols, col)
		}
		p.OptionalColumns = cols
	}

	return p
}
