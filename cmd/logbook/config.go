package main

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
	"kastelo.dev/logbook"
	"kastelo.dev/logbook/export"
)

type Config struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile is a named column selection for exports.
type Profile struct {
	Fields  []string `yaml:"fields"`
	Skip    []string `yaml:"skip"`
	Restval string   `yaml:"restval"`
	Extras  string   `yaml:"extras"`
	Sheet   string   `yaml:"sheet"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	for name, p := range cfg.Profiles {
		if _, err := export.ParseExtrasPolicy(p.Extras); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
	}

	return &cfg, nil
}

func (c *Config) profile(name string) (Profile, error) {
	if name == "" {
		return Profile{}, nil
	}
	if c != nil {
		if p, ok := c.Profiles[name]; ok {
			return p, nil
		}
	}
	names := c.profileNames()
	if len(names) == 0 {
		return Profile{}, fmt.Errorf("unknown profile %q (no profiles configured)", name)
	}
	return Profile{}, fmt.Errorf("unknown profile %q (have %s)", name, strings.Join(names, ", "))
}

func (c *Config) profileNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveOptions combines the selected profile with the command line, the
// command line winning for every value it sets.
func resolveOptions(cfg *Config, f *exportFlags) (export.Options, error) {
	prof, err := cfg.profile(*f.profile)
	if err != nil {
		return export.Options{}, err
	}

	flagProf := Profile{
		Fields:  splitFields(*f.fields),
		Skip:    splitFields(*f.skip),
		Restval: *f.restval,
		Extras:  *f.extras,
		Sheet:   *f.sheet,
	}
	if err := mergo.Merge(&prof, flagProf, mergo.WithOverride); err != nil {
		return export.Options{}, err
	}

	opts := export.DefaultOptions()
	opts.Parents = *f.parents
	opts.OverwriteOK = *f.overwrite
	opts.WriteHeader = *f.header
	opts.Restval = prof.Restval
	if prof.Sheet != "" {
		opts.Sheet = prof.Sheet
	}
	opts.Extras, err = export.ParseExtrasPolicy(prof.Extras)
	if err != nil {
		return export.Options{}, err
	}

	opts.Fields = prof.Fields
	if len(prof.Skip) > 0 {
		if opts.Fields == nil {
			opts.Fields = flightColumns()
		}
		opts.Fields = slices.DeleteFunc(slices.Clone(opts.Fields), func(s string) bool {
			return slices.Contains(prof.Skip, s)
		})
	}

	return opts, nil
}

// flightColumns lists every column of a flattened flight, in output order.
func flightColumns() []string {
	return export.FromStruct(logbook.FlatFlight{}).Keys()
}
