package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"funnypdf/internal/types"
)

func TestNewManager(t *testing.T) {
	t.Run("explicit path is kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.json")
		m, err := NewManager(path)
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		if m.GetConfigPath() != path {
			t.Errorf("config path = %q, want %q", m.GetConfigPath(), path)
		}
	})

	t.Run("empty path falls back to home directory", func(t *testing.T) {
		m, err := NewManager("")
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		if filepath.Base(m.GetConfigPath()) != DefaultConfigFileName {
			t.Errorf("default config path = %q", m.GetConfigPath())
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		m, err := NewManager(filepath.Join(t.TempDir(), "absent.json"))
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		if err := m.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		cfg := m.GetConfig()
		if cfg.OpenAIBaseURL != DefaultBaseURL {
			t.Errorf("base URL = %q, want %q", cfg.OpenAIBaseURL, DefaultBaseURL)
		}
		if cfg.OpenAIModel != DefaultModel {
			t.Errorf("model = %q, want %q", cfg.OpenAIModel, DefaultModel)
		}
		if cfg.CatImageURL != DefaultCatImageURL {
			t.Errorf("cat URL = %q, want %q", cfg.CatImageURL, DefaultCatImageURL)
		}
		if cfg.DefaultStyle != DefaultStyle {
			t.Errorf("style = %q, want %q", cfg.DefaultStyle, DefaultStyle)
		}
	})

	t.Run("invalid JSON falls back to defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatal(err)
		}
		m, err := NewManager(path)
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		if err := m.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if m.GetConfig().OpenAIModel != DefaultModel {
			t.Errorf("expected default model after invalid config, got %q", m.GetConfig().OpenAIModel)
		}
	})

	t.Run("partial file gets empty fields filled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partial.json")
		partial := map[string]string{"openai_api_key": "file-key"}
		data, _ := json.Marshal(partial)
		if err := os.WriteFile(path, data, 0600); err != nil {
			t.Fatal(err)
		}

		m, err := NewManager(path)
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		if err := m.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		cfg := m.GetConfig()
		if cfg.OpenAIAPIKey != "file-key" {
			t.Errorf("api key = %q, want file-key", cfg.OpenAIAPIKey)
		}
		if cfg.OpenAIBaseURL != DefaultBaseURL || cfg.OpenAIModel != DefaultModel {
			t.Errorf("empty fields not defaulted: %+v", cfg)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	m.SetConfig(&types.Config{
		OpenAIAPIKey: "saved-key",
		OpenAIModel:  "gpt-4o",
		CatImageURL:  "https://example.test/cat",
		DefaultStyle: "chaotic",
	})
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	m2, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m2.GetAPIKey() != "saved-key" {
		t.Errorf("api key = %q, want saved-key", m2.GetAPIKey())
	}
	if m2.GetModel() != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", m2.GetModel())
	}
	if m2.GetCatImageURL() != "https://example.test/cat" {
		t.Errorf("cat URL = %q", m2.GetCatImageURL())
	}
	if m2.GetDefaultStyle() != "chaotic" {
		t.Errorf("style = %q, want chaotic", m2.GetDefaultStyle())
	}
}

func TestEnvFallback(t *testing.T) {
	t.Run("API key from environment when config is empty", func(t *testing.T) {
		t.Setenv(EnvOpenAIAPIKey, "env-key")

		m, err := NewManager(filepath.Join(t.TempDir(), "absent.json"))
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		if err := m.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got := m.GetAPIKey(); got != "env-key" {
			t.Errorf("api key = %q, want env-key", got)
		}
	})

	t.Run("config API key wins over environment", func(t *testing.T) {
		t.Setenv(EnvOpenAIAPIKey, "env-key")

		m, err := NewManager(filepath.Join(t.TempDir(), "absent.json"))
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		cfg := m.GetConfig()
		cfg.OpenAIAPIKey = "config-key"
		m.SetConfig(cfg)
		if got := m.GetAPIKey(); got != "config-key" {
			t.Errorf("api key = %q, want config-key", got)
		}
	})
}

func TestSetAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := m.SetAPIKey("persisted-key"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	saved := &types.Config{}
	if err := json.Unmarshal(data, saved); err != nil {
		t.Fatalf("saved config is not valid JSON: %v", err)
	}
	if saved.OpenAIAPIKey != "persisted-key" {
		t.Errorf("persisted key = %q, want persisted-key", saved.OpenAIAPIKey)
	}
}
