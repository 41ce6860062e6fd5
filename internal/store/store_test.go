package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agolabs/architect/internal/blueprint"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	fs, err := Open(BackendFile, filepath.Join(dir, "state", "deployments.json"))
	if err != nil {
		t.Fatalf("Open(file) error = %v", err)
	}
	sq, err := Open(BackendSQLite, filepath.Join(dir, "state", "architect.db"))
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	t.Cleanup(func() {
		fs.Close()
		sq.Close()
	})
	return map[string]KV{"file": fs, "sqlite": sq}
}

func sample() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Keyword:      "Q1 Product Marketing Lifecycle",
		ProductTitle: "Lifecycle Grid",
		Price:        "$297/mo",
		FlatPayload:  `{"a":"b"}`,
		NotionSchema: &blueprint.Schema{Properties: []blueprint.Property{{Name: "Task", Type: "title"}}},
	}
}

func TestKVContract(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}
			if err := kv.Put(ctx, "k", []byte(`{"quoted":"value"}`)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := kv.Put(ctx, "k", []byte("second")); err != nil {
				t.Fatalf("Put() overwrite error = %v", err)
			}
			got, err := kv.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != "second" {
				t.Errorf("Get() = %q, want second", got)
			}
			if err := kv.Delete(ctx, "k"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if err := kv.Delete(ctx, "k"); err != nil {
				t.Errorf("Delete() of missing key error = %v", err)
			}
			if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete error = %v", err)
			}
		})
	}
}

func TestLastDeploymentLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			bp, err := LoadLast(ctx, kv)
			if err != nil || bp != nil {
				t.Fatalf("LoadLast(empty) = %v, %v; want nil, nil", bp, err)
			}

			want := sample()
			if err := SaveLast(ctx, kv, want); err != nil {
				t.Fatalf("SaveLast() error = %v", err)
			}
			got, err := LoadLast(ctx, kv)
			if err != nil {
				t.Fatalf("LoadLast() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("LoadLast() mismatch (-want +got):\n%s", diff)
			}

			if err := ClearLast(ctx, kv); err != nil {
				t.Fatalf("ClearLast() error = %v", err)
			}
			if bp, _ := LoadLast(ctx, kv); bp != nil {
				t.Error("LoadLast() after ClearLast should be nil")
			}
		})
	}
}

func TestLoadLastCorruptBlob(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Put(ctx, LastDeploymentKey, []byte("{not json")); err != nil {
				t.Fatal(err)
			}
			bp, err := LoadLast(ctx, kv)
			if err != nil || bp != nil {
				t.Errorf("LoadLast(corrupt) = %v, %v; want nil, nil", bp, err)
			}
		})
	}
}

func TestSaveLastNil(t *testing.T) {
	kv, _ := NewFileStore(filepath.Join(t.TempDir(), "s.json"))
	if err := SaveLast(context.Background(), kv, nil); err == nil {
		t.Error("SaveLast(nil) expected error")
	}
}

func TestFileStoreAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	kv, _ := NewFileStore(path)
	if err := kv.Put(context.Background(), "a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "s.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0600); err != nil {
		t.Fatal(err)
	}
	kv, _ := NewFileStore(path)

	if _, err := kv.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on corrupt file error = %v, want ErrNotFound", err)
	}
	if bp, err := LoadLast(ctx, kv); err != nil || bp != nil {
		t.Errorf("LoadLast(corrupt file) = %v, %v; want nil, nil", bp, err)
	}
	if err := ClearLast(ctx, kv); err != nil {
		t.Fatalf("ClearLast(corrupt file) error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "{truncated" {
		t.Error("ClearLast left the corrupt file in place")
	}

	want := sample()
	if err := SaveLast(ctx, kv, want); err != nil {
		t.Fatalf("SaveLast() after recovery error = %v", err)
	}
	got, err := LoadLast(ctx, kv)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadLast() after recovery mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreCorruptFilePut(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "s.json")
	if err := os.WriteFile(path, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	kv, _ := NewFileStore(path)
	if err := kv.Put(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("Put() on corrupt file error = %v", err)
	}
	got, err := kv.Get(ctx, "a")
	if err != nil || string(got) != "1" {
		t.Errorf("Get() = %q, %v; want \"1\"", got, err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", "x"); err == nil {
		t.Error("Open(redis) expected error")
	}
	if _, err := NewFileStore(""); err == nil {
		t.Error("NewFileStore(\"\") expected error")
	}
}

func TestSQLiteInMemory(t *testing.T) {
	kv, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore(:memory:) error = %v", err)
	}
	defer kv.Close()
	if err := SaveLast(context.Background(), kv, sample()); err != nil {
		t.Fatal(err)
	}
}
