package configs

import (
	"reflect"
	"testing"

	"github.com/cognicore/dailyline/pkg/dailyline/config"
	"github.com/cognicore/dailyline/pkg/dailyline/lexicon"
)

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := config.Load("dailyline.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database != "dailyline.db" || cfg.Timezone != "UTC" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestSampleLexiconMatchesBuiltIn(t *testing.T) {
	lex, err := lexicon.LoadFromYAML("lexicon.yaml")
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if !reflect.DeepEqual(lex.Words(), lexicon.Default().Words()) {
		t.Error("configs/lexicon.yaml drifted from the built-in word lists")
	}
}
