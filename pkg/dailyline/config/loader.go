// Package config loads dailyline configuration and builds the components
// it describes.
package config

import (
	"fmt"
	"time"

	"github.com/cognicore/dailyline/pkg/dailyline/insights"
	"github.com/cognicore/dailyline/pkg/dailyline/lexicon"
)

// Loader loads configuration files and constructs components.
type Loader struct {
	ConfigPath string
	// LexiconPath overrides the lexicon named in the config file.
	LexiconPath string
}

// Components holds the loaded configuration and what it wires up.
type Components struct {
	Config   Config
	Lexicon  *lexicon.Lexicon
	Builder  *insights.Builder
	Location *time.Location
}

// Load reads the configured files and returns initialized components.
// Empty paths fall back to defaults.
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	lexPath := cfg.Lexicon
	if l.LexiconPath != "" {
		lexPath = l.LexiconPath
	}

	comp := &Components{
		Config:   cfg,
		Lexicon:  lexicon.Default(),
		Location: cfg.Location(),
	}
	if lexPath != "" {
		lex, err := lexicon.LoadFromYAML(lexPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	}

	comp.Builder = insights.NewBuilder(comp.Lexicon)
	comp.Builder.Location = comp.Location
	return comp, nil
}
