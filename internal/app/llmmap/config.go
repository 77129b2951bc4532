package llmmap

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds LLM mapping settings.
type Config struct {
	VocabPath    string   `yaml:"vocab_path"     env:"LLMMAP_VOCAB_PATH"`
	InputPath    string   `yaml:"input_path"     env:"LLMMAP_INPUT_PATH"`
	OutputDir    string   `yaml:"output_dir"     env:"LLMMAP_OUTPUT_DIR"   env-default:"."`
	PromptPath   string   `yaml:"prompt_path"    env:"LLMMAP_PROMPT_PATH"`
	Model        string   `yaml:"model"          env:"LLMMAP_MODEL"        env-default:"claude-3-5-haiku-latest"`
	Classes      []string `yaml:"classes"        env:"LLMMAP_CLASSES"      env-default:"trinken,Durst,Getränk,other"`
	OtherClass   string   `yaml:"other_class"    env:"LLMMAP_OTHER_CLASS"  env-default:"other"`
	NoMatchLabel string   `yaml:"no_match_label" env:"LLMMAP_NO_MATCH"     env-default:"kein_Trinken"`
}

// LoadConfig reads LLM mapping configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("llmmap config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("llmmap config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("llmmap config: read env: %w", err)
	}

	return &cfg, nil
}
