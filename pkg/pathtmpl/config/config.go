package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/internalerr"
)

// DefaultNERTimeout bounds one call to the remote recognizer
const DefaultNERTimeout = 15 * time.Second

// Config is the top-level configuration file
type Config struct {
	NER      NER    `yaml:"ner"`
	Entities string `yaml:"entities"`
	Stoplist string `yaml:"stoplist"`
	DB       string `yaml:"db"`
	Workers  int    `yaml:"workers"`
}

// NER configures the remote named-entity recognizer
type NER struct {
	Endpoint  string  `yaml:"endpoint"`
	APIKeyEnv string  `yaml:"api_key_env"`
	MinScore  float64 `yaml:"min_score"`
	Timeout   string  `yaml:"timeout"`
}

// TimeoutDuration parses Timeout, falling back to DefaultNERTimeout
func (n NER) TimeoutDuration() (time.Duration, error) {
	if n.Timeout == "" {
		return DefaultNERTimeout, nil
	}
	d, err := time.ParseDuration(n.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: ner timeout %q: %v", internalerr.ErrInvalidConfig, n.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: ner timeout must be positive, got %s", internalerr.ErrInvalidConfig, d)
	}
	return d, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.NER.MinScore < 0 || c.NER.MinScore > 1 {
		return fmt.Errorf("%w: ner min_score must be within [0, 1], got %v", internalerr.ErrInvalidConfig, c.NER.MinScore)
	}
	if _, err := c.NER.TimeoutDuration(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", internalerr.ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Load reads a configuration file. Relative file references are resolved
// against the directory of the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	cfg.Entities = resolve(dir, cfg.Entities)
	cfg.Stoplist = resolve(dir, cfg.Stoplist)
	cfg.DB = resolve(dir, cfg.DB)
	return &cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Entities is the entity dictionary file: type → name → variants
type Entities struct {
	Entities map[string]map[string][]string `yaml:"entities"`
}

// LoadEntities loads an entity dictionary from a YAML file
func LoadEntities(path string) (*Entities, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ents Entities
	if err := yaml.Unmarshal(data, &ents); err != nil {
		return nil, err
	}

	return &ents, nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
