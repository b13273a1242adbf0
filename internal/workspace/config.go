package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	continuumerrors "github.com/continuum-ml/continuum/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Config is the workspace configuration document.
type Config struct {
	WorkspaceName string `yaml:"workspace_name" validate:"required,min=1,max=100"`
	Stages        Stages `yaml:"stages"`
}

// Stages names the dataset pipeline directories relative to the workspace.
type Stages struct {
	Stage1RawDir       string `yaml:"stage1_raw_dir"`
	Stage2CuratedDir   string `yaml:"stage2_curated_dir"`
	Stage3AnnotatedDir string `yaml:"stage3_annotated_dir"`
}

// LoadConfig reads and validates the workspace configuration document.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, continuumerrors.NewParseError(path, 0, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, continuumerrors.NewParseError(path, extractLine(err), err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return nil, continuumerrors.NewValidationError(first.Field(), fmt.Sprintf("failed %q constraint", first.Tag()), err)
		}
		return nil, continuumerrors.NewValidationError("", err.Error(), err)
	}

	return &cfg, nil
}

// LoadEnv loads the workspace .env file into the process environment so
// settings such as OLLAMA_HOST reach the API client. A missing file is fine.
func LoadEnv(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
