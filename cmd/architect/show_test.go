package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/store"
)

// useShowFlags points the command at a temporary config and store.
func useShowFlags(t *testing.T, format string, verboseOut bool) string {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "deployments.json")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "version: 1\nstorage:\n  backend: file\n  path: " + storePath + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0600); err != nil {
		t.Fatal(err)
	}

	oldPath, oldFormat, oldVerbose := configPath, outputFormat, verbose
	configPath, outputFormat, verbose = cfgPath, format, verboseOut
	t.Cleanup(func() {
		configPath, outputFormat, verbose = oldPath, oldFormat, oldVerbose
	})
	return storePath
}

func runShowCapture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	showCmd.SetOut(&buf)
	showCmd.SetContext(context.Background())
	t.Cleanup(func() { showCmd.SetOut(nil) })

	if err := runShow(showCmd, nil); err != nil {
		t.Fatalf("runShow() error = %v", err)
	}
	return buf.String()
}

func TestShowEmptyStore(t *testing.T) {
	useShowFlags(t, "compact", false)
	if out := runShowCapture(t); !strings.Contains(out, "No blueprint deployed.") {
		t.Errorf("output = %q", out)
	}
}

func TestShowVerboseAppendsAssetData(t *testing.T) {
	storePath := useShowFlags(t, "compact", true)
	kv, err := store.NewFileStore(storePath)
	if err != nil {
		t.Fatal(err)
	}
	bp := &blueprint.Blueprint{
		Keyword:      "Cold Brew",
		ProductTitle: "Brew Ledger",
		Price:        "$49",
	}
	if err := store.SaveLast(context.Background(), kv, bp); err != nil {
		t.Fatal(err)
	}

	out := runShowCapture(t)
	for _, want := range []string{"Brew Ledger", "Asset Data", `"keyword": "Cold Brew"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	verbose = false
	if out := runShowCapture(t); strings.Contains(out, "Asset Data") {
		t.Errorf("non-verbose output should not include the raw box:\n%s", out)
	}
}
