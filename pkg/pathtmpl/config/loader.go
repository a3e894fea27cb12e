package config

import (
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/cognicore/pathtmpl/internal/nerclient"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/entity"
)

// Loader loads the configured files and constructs components
type Loader struct {
	EntitiesPath string
	StoplistPath string
	NER          NER

	// Getenv looks up the NER API key; nil uses os.Getenv
	Getenv func(string) string
}

// Components holds all loaded configuration components
type Components struct {
	// Recognizer is nil when neither a dictionary nor an endpoint is configured
	Recognizer entity.Recognizer
	Dictionary *entity.Dictionary
	Stoplist   *entity.Stoplist
}

// LoaderFor builds a Loader from a configuration file
func LoaderFor(cfg *Config) *Loader {
	return &Loader{
		EntitiesPath: cfg.Entities,
		StoplistPath: cfg.Stoplist,
		NER:          cfg.NER,
	}
}

// Load reads all configuration files and returns initialized components.
// The remote recognizer is wrapped in entity.Lazy: its client is only built,
// once, when the first sentence needs it.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load stoplist
	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = entity.NewStoplist(stoplist.Terms)
	} else {
		comp.Stoplist = entity.NewStoplist(nil)
	}

	var chain entity.Chain

	// Load entity dictionary
	if l.EntitiesPath != "" {
		ents, err := LoadEntities(l.EntitiesPath)
		if err != nil {
			return nil, fmt.Errorf("load entities: %w", err)
		}
		comp.Dictionary = entity.NewDictionary()
		for _, typ := range sortedKeys(ents.Entities) {
			for name, variants := range ents.Entities[typ] {
				comp.Dictionary.Add(typ, name, variants)
			}
		}
		chain = append(chain, comp.Dictionary)
	}

	// Remote recognizer
	if l.NER.Endpoint != "" {
		timeout, err := l.NER.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		ner := l.NER
		getenv := l.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		chain = append(chain, entity.Lazy(func() (entity.Recognizer, error) {
			client := &nerclient.Client{
				Endpoint:   ner.Endpoint,
				MinScore:   ner.MinScore,
				HTTPClient: &http.Client{Timeout: timeout},
			}
			if ner.APIKeyEnv != "" {
				client.APIKey = getenv(ner.APIKeyEnv)
				if client.APIKey == "" {
					return nil, fmt.Errorf("ner: environment variable %s is empty", ner.APIKeyEnv)
				}
			}
			return client, nil
		}))
	}

	switch len(chain) {
	case 0:
	case 1:
		comp.Recognizer = chain[0]
	default:
		comp.Recognizer = chain
	}

	return comp, nil
}

func sortedKeys(m map[string]map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
