package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"atomcss/common"
	"atomcss/styles"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	RendererConfig struct {
		ClassPrefix  string            `yaml:"class_prefix" validate:"required,max=16"`
		Direction    common.Direction  `yaml:"direction" validate:"oneof=0 1"`
		MediaOrder   common.MediaOrder `yaml:"media_order" validate:"oneof=0 1"`
		BaseFontSize float64           `yaml:"base_font_size" validate:"gt=0"`
		Attributes   map[string]string `yaml:"attributes"`
	}

	ExtractConfig struct {
		Format      common.OutputFormat `yaml:"format" validate:"oneof=0 1 2"`
		Concurrency int                 `yaml:"concurrency" validate:"gte=0"`
		Store       string              `yaml:"store"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Renderer  RendererConfig `yaml:"renderer"`
		Extract   ExtractConfig  `yaml:"extract"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Options converts renderer configuration into renderer options.
func (conf *RendererConfig) Options() []styles.Option {
	opts := []styles.Option{
		styles.WithClassPrefix(conf.ClassPrefix),
		styles.WithAttributes(conf.Attributes),
	}
	switch conf.MediaOrder {
	case common.MediaOrderText:
		opts = append(opts, styles.WithMediaComparator(styles.TextMediaComparator))
	default:
		opts = append(opts, styles.WithMediaComparator(styles.NewMediaComparator(conf.BaseFontSize)))
	}
	return opts
}

// Workers returns number of files to process concurrently.
func (conf *ExtractConfig) Workers() int {
	if conf.Concurrency > 0 {
		return conf.Concurrency
	}
	return runtime.NumCPU()
}

var (
	checksOnce sync.Once
	checks     *validator.Validate
)

// validClassPrefix accepts prefixes producing valid CSS identifiers when
// followed by a base 36 hash.
func validClassPrefix(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || s[0] >= '0' && s[0] <= '9' || s[0] == '-' && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

// additionalChecks validates values the generic struct tags cannot express.
func additionalChecks(cfg *Config) error {
	checksOnce.Do(func() {
		checks = validator.New()
		if err := checks.RegisterValidation("classprefix", validClassPrefix); err != nil {
			panic(err)
		}
	})
	if err := checks.Var(cfg.Renderer.ClassPrefix, "classprefix"); err != nil {
		return fmt.Errorf("invalid renderer class prefix %q: %w", cfg.Renderer.ClassPrefix, err)
	}
	for k := range cfg.Renderer.Attributes {
		if k == styles.BucketAttribute || k == "id" || k == styles.MediaAttribute {
			return fmt.Errorf("renderer attribute %q is reserved", k)
		}
	}
	return nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		if err := additionalChecks(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
