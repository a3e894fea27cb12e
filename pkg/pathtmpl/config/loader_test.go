package config

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/entity"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/internalerr"
)

func TestLoaderAllEmpty(t *testing.T) {
	comp, err := (&Loader{}).Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}
	if comp.Recognizer != nil {
		t.Error("No recognizer should be configured")
	}
	if comp.Stoplist == nil || comp.Stoplist.Len() != 0 {
		t.Error("Should have an empty stoplist")
	}
	if comp.Dictionary != nil {
		t.Error("Dictionary should be nil")
	}
}

func TestLoaderNonExistentFiles(t *testing.T) {
	if _, err := (&Loader{StoplistPath: "/nonexistent/stoplist.yaml"}).Load(); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
	if _, err := (&Loader{EntitiesPath: "/nonexistent/entities.yaml"}).Load(); err == nil {
		t.Error("Should error on nonexistent entities")
	}
}

func TestLoaderMalformedEntities(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "entities: [unclosed\n")
	if _, err := (&Loader{EntitiesPath: path}).Load(); err == nil {
		t.Error("Should error on malformed entities")
	}
}

func TestLoaderDictionaryOnly(t *testing.T) {
	tmpDir := t.TempDir()
	entPath := writeFile(t, tmpDir, "entities.yaml", "entities:\n  location:\n    London: [ldn]\n")
	slPath := writeFile(t, tmpDir, "stoplist.yaml", "terms:\n  - stripe\n")

	comp, err := (&Loader{EntitiesPath: entPath, StoplistPath: slPath}).Load()
	if err != nil {
		t.Fatalf("Valid files should load: %v", err)
	}
	if comp.Dictionary == nil || comp.Dictionary.Len() != 2 {
		t.Fatalf("expected dictionary with 2 variants")
	}
	if _, ok := comp.Recognizer.(*entity.Dictionary); !ok {
		t.Errorf("a single source should be used directly, got %T", comp.Recognizer)
	}
	if !comp.Stoplist.IsStop("Stripe") {
		t.Error("stoplist should contain stripe")
	}

	words, err := comp.Recognizer.Recognize(context.Background(), " users LDN profile")
	if err != nil || len(words) != 1 || words[0] != "LDN" {
		t.Errorf("Recognize = %v, %v", words, err)
	}
}

func TestLoaderRemoteMissingAPIKeyDegrades(t *testing.T) {
	tmpDir := t.TempDir()
	entPath := writeFile(t, tmpDir, "entities.yaml", "entities:\n  location:\n    London: []\n")

	loader := &Loader{
		EntitiesPath: entPath,
		NER:          NER{Endpoint: "https://ner.test", APIKeyEnv: "PATHTMPL_TEST_KEY"},
		Getenv:       func(string) string { return "" },
	}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := comp.Recognizer.(entity.Chain); !ok {
		t.Fatalf("expected a chain of dictionary and remote, got %T", comp.Recognizer)
	}

	// remote member fails to initialize, dictionary still answers
	words, err := comp.Recognizer.Recognize(context.Background(), "London")
	if err != nil || len(words) != 1 {
		t.Errorf("Recognize = %v, %v", words, err)
	}
}

func TestLoaderRemoteOnlyUnavailable(t *testing.T) {
	loader := &Loader{
		NER:    NER{Endpoint: "https://ner.test", APIKeyEnv: "PATHTMPL_TEST_KEY"},
		Getenv: func(string) string { return "" },
	}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = comp.Recognizer.Recognize(context.Background(), "London")
	if !errors.Is(err, internalerr.ErrRecognizerUnavailable) {
		t.Errorf("expected ErrRecognizerUnavailable, got %v", err)
	}
}

func TestLoaderBadTimeout(t *testing.T) {
	loader := &Loader{NER: NER{Endpoint: "https://ner.test", Timeout: "never"}}
	if _, err := loader.Load(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoaderFor(t *testing.T) {
	cfg := &Config{Entities: "e.yaml", Stoplist: "s.yaml", NER: NER{Endpoint: "x"}}
	l := LoaderFor(cfg)
	if l.EntitiesPath != "e.yaml" || l.StoplistPath != "s.yaml" || l.NER.Endpoint != "x" {
		t.Errorf("unexpected loader %+v", l)
	}
}
