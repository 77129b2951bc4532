package conceptmap

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds concept-mapping pipeline settings.
type Config struct {
	VocabPath    string `yaml:"vocab_path"     env:"CONCEPTMAP_VOCAB_PATH"`
	InputPath    string `yaml:"input_path"     env:"CONCEPTMAP_INPUT_PATH"`
	OutputDir    string `yaml:"output_dir"     env:"CONCEPTMAP_OUTPUT_DIR"    env-default:"."`
	NoMatchLabel string `yaml:"no_match_label" env:"CONCEPTMAP_NO_MATCH"      env-default:"kein_Trinken"`
	ParserURL    string `yaml:"parser_url"     env:"CONCEPTMAP_PARSER_URL"    env-default:"http://localhost:8001"`
	ParserModel  string `yaml:"parser_model"   env:"CONCEPTMAP_PARSER_MODEL"`
	Snapshots    bool   `yaml:"snapshots"      env:"CONCEPTMAP_SNAPSHOTS"`
}

// LoadConfig reads pipeline configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("conceptmap config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("conceptmap config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("conceptmap config: read env: %w", err)
	}

	return &cfg, nil
}
