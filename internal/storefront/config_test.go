package storefront

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBuildGraphQLEndpoint(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"https://1234-whatsappcontact.adobeioruntime.net", "https://1234-whatsappcontact.adobeioruntime.net" + GraphQLPath},
		{" https://app.example.test/// ", "https://app.example.test" + GraphQLPath},
	}
	for _, tt := range tests {
		if got := BuildGraphQLEndpoint(tt.input); got != tt.want {
			t.Errorf("BuildGraphQLEndpoint(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateConfigFileCreatesNesting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"public":{"default":{"commerce-endpoint":"https://shop.test/graphql"}},"other":1}`)

	ok, err := UpdateConfigFile(path, "https://app.test"+GraphQLPath)
	if err != nil || !ok {
		t.Fatalf("UpdateConfigFile = %v, %v", ok, err)
	}

	endpoint, err := ReadEndpoint(path)
	if err != nil {
		t.Fatal(err)
	}
	if endpoint != "https://app.test"+GraphQLPath {
		t.Fatalf("endpoint = %q", endpoint)
	}

	raw, _ := os.ReadFile(path)
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["other"] != float64(1) {
		t.Fatal("unrelated keys were dropped")
	}
	def := doc["public"].(map[string]any)["default"].(map[string]any)
	if def["commerce-endpoint"] != "https://shop.test/graphql" {
		t.Fatal("sibling keys were dropped")
	}
}

func TestUpdateConfigFileReplacesNonObjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo-config.json")
	writeFile(t, path, `{"public":"oops"}`)

	if ok, err := UpdateConfigFile(path, "x"); err != nil || !ok {
		t.Fatalf("UpdateConfigFile = %v, %v", ok, err)
	}
	if endpoint, _ := ReadEndpoint(path); endpoint != "x" {
		t.Fatalf("endpoint = %q", endpoint)
	}
}

func TestUpdateConfigFileMissingAndInvalid(t *testing.T) {
	dir := t.TempDir()

	ok, err := UpdateConfigFile(filepath.Join(dir, "config.json"), "x")
	if ok || err != nil {
		t.Fatalf("missing file: %v, %v", ok, err)
	}

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{not json`)
	ok, err = UpdateConfigFile(bad, "x")
	if ok || err == nil {
		t.Fatalf("invalid file: %v, %v", ok, err)
	}
}

func TestReadEndpointWithoutSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"public":{}}`)
	endpoint, err := ReadEndpoint(path)
	if err != nil || endpoint != "" {
		t.Fatalf("ReadEndpoint = %q, %v", endpoint, err)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{}`)

	changes := make(chan string, 4)
	w := NewWatcher(path, func(endpoint string) { changes <- endpoint })
	w.debounce = 10 * time.Millisecond
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer w.Close()

	if _, err := UpdateConfigFile(path, "https://app.test"+GraphQLPath); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		if got != "https://app.test"+GraphQLPath {
			t.Fatalf("endpoint = %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
