package main

import (
	"github.com/spf13/cobra"

	"github.com/kochabx/keysort/config"
	"github.com/kochabx/keysort/log"
)

// Settings is the full configuration of the keysort command.
type Settings struct {
	Seed  uint64        `mapstructure:"seed"`
	Log   log.Config    `mapstructure:"log"`
	Check CheckSettings `mapstructure:"check"`
	Bench BenchSettings `mapstructure:"bench"`
}

// CheckSettings configures the check subcommand.
type CheckSettings struct {
	Size    int `mapstructure:"size" default:"100" validate:"gte=0"`
	Trials  int `mapstructure:"trials" default:"1" validate:"gte=1"`
	Workers int `mapstructure:"workers" default:"1" validate:"gte=1,lte=1024"`
}

// BenchSettings configures the bench subcommand.
type BenchSettings struct {
	Sizes       []int    `mapstructure:"sizes" default:"10,1000,100000" validate:"min=1,dive,gte=0"`
	Strategies  []string `mapstructure:"strategies" validate:"dive,oneof=only_clone sort_by_key sort_by_cached_key parse_then_sort"`
	Verify      bool     `mapstructure:"verify" default:"true"`
	MetricsFile string   `mapstructure:"metrics_file"`
}

// loadSettings reads the config file (optional unless --config is given),
// KEYSORT_* environment variables and the flags bound in binds.
func loadSettings(cmd *cobra.Command, binds map[string]string) (*Settings, error) {
	s := new(Settings)

	opts := []config.Option{config.WithOptionalFile()}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		opts = []config.Option{config.WithFile(path)}
	}
	c := config.New(s, opts...)

	for key, flag := range binds {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := c.Viper().BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	if err := c.Load(); err != nil {
		return nil, err
	}
	return s, nil
}
