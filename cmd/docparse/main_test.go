// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/docparse/pkg/types"
)

// executeRoot runs the root command with the given stdin and arguments and
// returns everything written to stdout.
func executeRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	if args == nil {
		args = []string{}
	}
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func decodeEnvelope(t *testing.T, out string) types.ParseResult {
	t.Helper()
	var result types.ParseResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("stdout is not a valid envelope: %v\noutput: %q", err, out)
	}
	return result
}

func TestRootNoPathExitsNonZero(t *testing.T) {
	out, err := executeRoot(t, "")

	if !errors.Is(err, errNoInput) {
		t.Fatalf("Execute() = %v, want errNoInput", err)
	}

	result := decodeEnvelope(t, out)
	if result.Success {
		t.Error("success = true, want false")
	}
	if result.Markdown != nil {
		t.Errorf("markdown = %q, want null", *result.Markdown)
	}
	if result.Tables == nil || len(result.Tables) != 0 {
		t.Errorf("tables = %v, want []", result.Tables)
	}
	if result.Metadata != (types.Metadata{}) {
		t.Errorf("metadata = %+v, want empty", result.Metadata)
	}
	if result.Error != "No file path provided" {
		t.Errorf("error = %q, want canonical message", result.Error)
	}
}

func TestRootWhitespaceStdinExitsNonZero(t *testing.T) {
	out, err := executeRoot(t, "   \n")

	if !errors.Is(err, errNoInput) {
		t.Fatalf("Execute() = %v, want errNoInput", err)
	}
	result := decodeEnvelope(t, out)
	if result.Success || result.Error != "No file path provided" {
		t.Errorf("envelope = %+v, want the missing-path failure", result)
	}
}

func TestRootConversionFailureExitsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strange.xyz")
	if err := os.WriteFile(path, []byte("?"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeRoot(t, "", path)

	// A resolvable path means exit 0: failures ride inside the envelope.
	if err != nil {
		t.Fatalf("Execute() = %v, want nil for a conversion failure", err)
	}

	result := decodeEnvelope(t, out)
	if result.Success {
		t.Error("success = true, want false")
	}
	if result.Markdown != nil {
		t.Errorf("markdown = %q, want null", *result.Markdown)
	}
	if !strings.Contains(result.Error, "unsupported file type") {
		t.Errorf("error = %q, want the converter message", result.Error)
	}
}

func TestRootBadBackendExitsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeRoot(t, "", path, "--backend", "bogus")
	t.Cleanup(func() { rootCmd.PersistentFlags().Set("backend", "") })

	if err != nil {
		t.Fatalf("Execute() = %v, want nil for a backend construction failure", err)
	}
	result := decodeEnvelope(t, out)
	if result.Success {
		t.Error("success = true, want false")
	}
	if !strings.Contains(result.Error, "unknown backend") {
		t.Errorf("error = %q, want the backend message", result.Error)
	}
}

func TestRootParsesPathFromStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello docparse"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeRoot(t, path+"\n")

	if err != nil {
		t.Fatalf("Execute() = %v, want nil", err)
	}
	result := decodeEnvelope(t, out)
	if !result.Success {
		t.Fatalf("success = false, error = %q", result.Error)
	}
	if result.Markdown == nil || !strings.Contains(*result.Markdown, "hello docparse") {
		t.Errorf("markdown = %v, want file content", result.Markdown)
	}
	if result.Metadata.FileName != "notes.txt" {
		t.Errorf("file_name = %q, want notes.txt", result.Metadata.FileName)
	}
}

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("convert.backend", "remote")
	viper.Set("convert.image", "markitdown:2")
	viper.Set("convert.runtime", "podman")
	viper.Set("convert.remote.url", "https://convert.example")
	viper.Set("convert.remote.api_key", "sk_from_config")
	viper.Set("convert.remote.timeout", "30s")
	viper.Set("history.enabled", true)
	viper.Set("history.path", "/tmp/history.db")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Convert.Backend != types.BackendRemote {
		t.Errorf("backend = %q, want remote", cfg.Convert.Backend)
	}
	if cfg.Convert.Image != "markitdown:2" {
		t.Errorf("image = %q, want markitdown:2", cfg.Convert.Image)
	}
	if cfg.Convert.Runtime != "podman" {
		t.Errorf("runtime = %q, want podman", cfg.Convert.Runtime)
	}
	if cfg.Convert.Remote.URL != "https://convert.example" {
		t.Errorf("remote url = %q", cfg.Convert.Remote.URL)
	}
	if cfg.Convert.Remote.APIKey != "sk_from_config" {
		t.Errorf("remote api_key = %q", cfg.Convert.Remote.APIKey)
	}
	if cfg.Convert.Remote.Timeout != 30*time.Second {
		t.Errorf("remote timeout = %v, want 30s", cfg.Convert.Remote.Timeout)
	}
	if !cfg.History.Enabled {
		t.Error("history.enabled = false, want true")
	}
	if cfg.History.Path != "/tmp/history.db" {
		t.Errorf("history.path = %q", cfg.History.Path)
	}
}

func TestHistoryPathDefault(t *testing.T) {
	explicit, err := historyPath(types.Config{History: types.HistoryConfig{Path: "/data/h.db"}})
	if err != nil || explicit != "/data/h.db" {
		t.Errorf("historyPath = (%q, %v), want the configured path", explicit, err)
	}

	fallback, err := historyPath(types.Config{})
	if err != nil {
		t.Fatalf("historyPath: %v", err)
	}
	if !strings.HasSuffix(fallback, filepath.Join(".docparse", "history.db")) {
		t.Errorf("default path = %q, want ~/.docparse/history.db", fallback)
	}
}
