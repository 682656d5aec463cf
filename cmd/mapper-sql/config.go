package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/yusiwen/mapper"
)

// Config is the contents of a table declaration file.
type Config struct {
	Dialect    string        `mapstructure:"dialect"`
	Convention string        `mapstructure:"convention"`
	Tables     []TableConfig `mapstructure:"tables"`
}

// TableConfig declares one table.
type TableConfig struct {
	Name       string   `mapstructure:"name"`
	Fields     []string `mapstructure:"fields"`
	PrimaryKey string   `mapstructure:"primary_key"`
	Exclude    []string `mapstructure:"exclude"`
	JSON       []string `mapstructure:"json"`
}

// loadConfig reads the declaration file. The format is chosen from the
// file extension: yaml, json and toml are supported.
func loadConfig(filename string) (*Config, error) {
	v := viper.New()
	v.SetDefault("dialect", "postgres")
	v.SetDefault("convention", "underscore")
	v.SetConfigFile(filename)
	v.SetEnvPrefix("MAPPER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validateConfig(config *Config) error {
	if len(config.Tables) == 0 {
		return fmt.Errorf("no tables declared")
	}
	if _, err := conventionFor(config.Convention); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for i, table := range config.Tables {
		if strings.TrimSpace(table.Name) == "" {
			return fmt.Errorf("table %d: missing name", i+1)
		}
		if seen[table.Name] {
			return fmt.Errorf("table %s: declared more than once", table.Name)
		}
		seen[table.Name] = true
		if len(table.Fields) == 0 {
			return fmt.Errorf("table %s: no fields declared", table.Name)
		}
	}
	return nil
}

func conventionFor(name string) (mapper.Convention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "underscore", "snake":
		return mapper.Underscore, nil
	case "lower":
		return mapper.Lower, nil
	}
	return nil, fmt.Errorf("unknown naming convention %q", name)
}

// registry returns a registry for the dialect and convention of the config.
func (config *Config) registry(opts ...mapper.Option) *mapper.Registry {
	convention, _ := conventionFor(config.Convention)
	opts = append(opts,
		mapper.WithDialect(mapper.DialectFor(config.Dialect)),
		mapper.WithConvention(convention),
	)
	return mapper.NewRegistry(opts...)
}

// declare builds the descriptor for the table.
func (table TableConfig) declare(registry *mapper.Registry) (*mapper.Table, error) {
	return registry.Declare(mapper.TableConfig{
		TableName:  table.Name,
		PrimaryKey: table.PrimaryKey,
		Exclude:    table.Exclude,
		JSON:       table.JSON,
	}, table.Fields...)
}
