package casconfig

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xdao.co/sbom/storage"
	"xdao.co/sbom/storage/casregistry"
	_ "xdao.co/sbom/storage/localfs"
)

func TestLoadFileYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "cas.yaml")
	if err := os.WriteFile(yml, []byte("write_policy: all\nbackends:\n  - name: memory\n  - name: localfs\n    id: disk\n    config:\n      localfs-dir: "+filepath.Join(dir, "blobs")+"\n      localfs-compression: zstd\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(yml)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}
	if cfg.WritePolicy != "all" || len(cfg.Backends) != 2 || cfg.Backends[1].Config["localfs-compression"] != "zstd" {
		t.Fatalf("cfg = %+v", cfg)
	}

	js := filepath.Join(dir, "cas.json")
	if err := os.WriteFile(js, []byte(`{"backends":[{"name":"memory"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(js); err != nil {
		t.Fatalf("LoadFile json: %v", err)
	}
}

func TestOpenReplicates(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{WritePolicy: "all", Backends: []BackendConfig{
		{Name: "memory"},
		{Name: "localfs", ID: "disk", Config: map[string]string{"localfs-dir": dir}},
	}}
	cas, closeFn, err := cfg.Open(casregistry.UsageCLI, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	r, ok := cas.(storage.ReplicatingCAS)
	if !ok {
		t.Fatalf("got %T, want ReplicatingCAS", cas)
	}
	_, per, err := r.PutAll(context.Background(), []byte("x"))
	if err != nil || len(per) != 2 {
		t.Fatalf("PutAll = %v, %v", per, err)
	}
	if _, ok := per["disk"]; !ok {
		t.Fatalf("backend id not used: %v", per)
	}
}

func TestOpenPreferred(t *testing.T) {
	cfg := Config{Backends: []BackendConfig{
		{Name: "memory", ID: "a"},
		{Name: "memory", ID: "b"},
	}}
	cas, _, err := cfg.Open(casregistry.UsageCLI, "b")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := cas.(storage.MultiCAS); !ok {
		t.Fatalf("got %T, want MultiCAS", cas)
	}
	if _, _, err := cfg.Open(casregistry.UsageCLI, "zzz"); err == nil {
		t.Fatalf("unknown preferred backend accepted")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct{ doc, want string }{
		{`{"backends":[]}`, "at least one backend"},
		{`{"backends":[{"name":""}]}`, "name is required"},
		{`{"backends":[{"name":"memory"},{"name":"memory"}]}`, "duplicate backend id"},
		{`{"write_policy":"some","backends":[{"name":"memory"}]}`, "invalid write_policy"},
		{`{"backends":[{"name":"memory"}],"extra":1}`, "unknown field"},
	}
	for _, tc := range cases {
		_, err := ParseJSON([]byte(tc.doc))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: got %v, want %q", tc.doc, err, tc.want)
		}
	}
	if _, err := ParseYAML([]byte("backends:\n  - name: memory\n    colour: red\n")); err == nil {
		t.Fatalf("unknown YAML field accepted")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := Config{Backends: []BackendConfig{{Name: "memory"}, {Name: "nope"}}}
	if _, _, err := cfg.Open(casregistry.UsageCLI, ""); err == nil || !strings.Contains(err.Error(), `"nope"`) {
		t.Fatalf("Open: %v", err)
	}
}
