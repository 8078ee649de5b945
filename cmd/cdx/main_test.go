package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/specversion"
)

func runCmd(t *testing.T, stdin []byte, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, bytes.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeBOM(t *testing.T, dir, name string, b *v16.Bom, f specversion.Format, v specversion.Version) (string, []byte) {
	t.Helper()
	doc, err := convert.Convert(b, v)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	data, err := codec.Marshal(doc, f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path, data
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"frobnicate"},
		{"convert", "--no-such-flag"},
		{"diff", "only-one"},
		{"--log-level", "loud", "versions"},
		{"merge", "--hierarchical", "x.json"},
	} {
		if code, _, _ := runCmd(t, nil, args...); code != 2 {
			t.Fatalf("%q: exit %d, want 2", args, code)
		}
	}
}

func TestConvertXMLToJSON(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeBOM(t, dir, "in.xml", bomtest.Full(), specversion.XML, specversion.V1_4)

	code, out, errOut := runCmd(t, nil, "convert", "--output-format", "json", "--output-version", "1.5", in)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	doc, f, err := codec.DecodeAny([]byte(out))
	if err != nil {
		t.Fatalf("DecodeAny: %v", err)
	}
	if f != specversion.JSON || doc.SchemaVersion() != specversion.V1_5 {
		t.Fatalf("got %s %s", f, doc.SchemaVersion())
	}
}

func TestConvertFromStdinToFile(t *testing.T) {
	data, err := codec.Marshal(bomtest.Full(), specversion.JSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	outPath := filepath.Join(t.TempDir(), "out.cdx")
	code, _, errOut := runCmd(t, data, "convert", "--output-format", "protobuf", "-o", outPath)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if _, f, err := codec.DecodeAny(got); err != nil || f != specversion.Protobuf {
		t.Fatalf("DecodeAny = %s, %v", f, err)
	}
}

func TestConvertMalformedFails(t *testing.T) {
	code, _, errOut := runCmd(t, []byte(`{"bomFormat":`), "convert")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "PARSE") {
		t.Fatalf("stderr %q lacks the error code", errOut)
	}
}

func TestValidateBatch(t *testing.T) {
	dir := t.TempDir()
	good, _ := writeBOM(t, dir, "good.json", bomtest.Full(), specversion.JSON, specversion.V1_6)
	goodXML, _ := writeBOM(t, dir, "good.xml", bomtest.Full(), specversion.XML, specversion.V1_2)
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"bomFormat":"CycloneDX","specVersion":"1.6","version":"one"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCmd(t, nil, "validate", "--jobs", "2", good, goodXML)
	if code != 0 {
		t.Fatalf("exit %d: %s%s", code, out, errOut)
	}
	if strings.Count(out, ": valid") != 2 {
		t.Fatalf("unexpected output %q", out)
	}

	code, out, _ = runCmd(t, nil, "validate", good, bad)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(out, bad+": invalid") {
		t.Fatalf("invalid file not reported: %q", out)
	}
}

func TestMergeThenDiff(t *testing.T) {
	dir := t.TempDir()
	a, _ := writeBOM(t, dir, "a.json", bomtest.Full(), specversion.JSON, specversion.V1_6)
	bumped := bomtest.Full()
	bumped.Components[0].Version = "3.0"
	b, _ := writeBOM(t, dir, "b.xml", bumped, specversion.XML, specversion.V1_6)

	merged := filepath.Join(dir, "merged.json")
	code, _, errOut := runCmd(t, nil, "merge", "--hierarchical", "--group", "org.acme", "--name", "suite", "--version", "1", "-o", merged, a, b)
	if code != 0 {
		t.Fatalf("merge exit %d: %s", code, errOut)
	}
	data, err := os.ReadFile(merged)
	if err != nil {
		t.Fatal(err)
	}
	doc, _, err := codec.DecodeAny(data)
	if err != nil {
		t.Fatalf("DecodeAny: %v", err)
	}
	latest, err := convert.ToLatest(doc)
	if err != nil {
		t.Fatal(err)
	}
	if latest.Metadata.Component.Name != "suite" || len(latest.Components) != 2 {
		t.Fatalf("unexpected merge result: subject %+v, %d components", latest.Metadata.Component, len(latest.Components))
	}

	code, out, errOut := runCmd(t, nil, "diff", "--only-changes", a, b)
	if code != 0 {
		t.Fatalf("diff exit %d: %s", code, errOut)
	}
	want := "org.acme:lib\n  - 2.0\n  + 3.0\n"
	if out != want {
		t.Fatalf("diff output:\n%s\nwant:\n%s", out, want)
	}
}

func TestVersions(t *testing.T) {
	code, out, _ := runCmd(t, nil, "versions")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+len(specversion.Versions()) {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "1.0 ") || !strings.Contains(lines[len(lines)-1], "protobuf") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestSpdxRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeBOM(t, dir, "in.json", bomtest.Full(), specversion.JSON, specversion.V1_6)
	spdxPath := filepath.Join(dir, "doc.spdx.json")
	if code, _, errOut := runCmd(t, nil, "spdx", "to", "-o", spdxPath, in); code != 0 {
		t.Fatalf("spdx to exit %d: %s", code, errOut)
	}
	code, out, errOut := runCmd(t, nil, "spdx", "from", "--output-format", "xml", spdxPath)
	if code != 0 {
		t.Fatalf("spdx from exit %d: %s", code, errOut)
	}
	doc, f, err := codec.DecodeAny([]byte(out))
	if err != nil || f != specversion.XML {
		t.Fatalf("DecodeAny = %s, %v", f, err)
	}
	latest, err := convert.ToLatest(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(latest.Components) == 0 {
		t.Fatalf("no components survived the round trip")
	}
}

func TestCIDAndHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, _ := runCmd(t, nil, "cid", path)
	if code != 0 || strings.TrimSpace(out) != cidutil.String([]byte("hello")) {
		t.Fatalf("cid exit %d output %q", code, out)
	}
	code, out, _ = runCmd(t, nil, "hash", "--alg", "SHA-256", "--alg", "BLAKE3", path)
	if code != 0 {
		t.Fatalf("hash exit %d", code)
	}
	if !strings.HasPrefix(out, "SHA-256  2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824\nBLAKE3  ") {
		t.Fatalf("unexpected hash output %q", out)
	}
	if code, _, _ := runCmd(t, nil, "hash", "--alg", "CRC32", path); code != 2 {
		t.Fatalf("unknown algorithm exit %d, want 2", code)
	}
}

func TestCIDReencodeIgnoresLayout(t *testing.T) {
	doc := bomtest.Full()
	compact, err := codec.Marshal(doc, specversion.JSON, codec.WithIndent(false))
	if err != nil {
		t.Fatal(err)
	}
	pretty, err := codec.Marshal(doc, specversion.JSON, codec.WithIndent(true))
	if err != nil {
		t.Fatal(err)
	}
	_, a, _ := runCmd(t, compact, "cid", "--reencode", "json")
	_, b, _ := runCmd(t, pretty, "cid", "--reencode", "json")
	if a == "" || a != b {
		t.Fatalf("re-encoded CIDs differ: %q vs %q", a, b)
	}
}

func TestStoreLifecycle(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "cas")
	in, data := writeBOM(t, dir, "in.json", bomtest.Full(), specversion.JSON, specversion.V1_6)
	flags := []string{"--backend", "localfs", "--localfs-dir", storeDir, "--localfs-compression", "zstd"}

	code, out, errOut := runCmd(t, nil, append([]string{"store", "put"}, append(flags, in)...)...)
	if code != 0 {
		t.Fatalf("put exit %d: %s", code, errOut)
	}
	id := strings.TrimSpace(out)
	if id != cidutil.String(data) {
		t.Fatalf("put printed %q, want %s", id, cidutil.String(data))
	}
	if _, err := os.Stat(filepath.Join(storeDir, "index.json")); err != nil {
		t.Fatalf("index not written: %v", err)
	}

	code, out, _ = runCmd(t, nil, append([]string{"store", "get"}, append(flags, id)...)...)
	if code != 0 || out != string(data) {
		t.Fatalf("get exit %d returned different bytes", code)
	}

	code, out, errOut = runCmd(t, nil, append([]string{"store", "get", "--output-format", "xml", "--output-version", "1.3"}, append(flags, id)...)...)
	if code != 0 {
		t.Fatalf("get converted exit %d: %s", code, errOut)
	}
	doc, f, err := codec.DecodeAny([]byte(out))
	if err != nil || f != specversion.XML || doc.SchemaVersion() != specversion.V1_3 {
		t.Fatalf("converted get = %s, %v", f, err)
	}

	code, out, _ = runCmd(t, nil, append([]string{"store", "list", "--serial", bomtest.Serial}, flags...)...)
	if code != 0 || !strings.Contains(out, id) {
		t.Fatalf("list exit %d output %q", code, out)
	}

	bundlePath := filepath.Join(dir, "export.tar")
	code, _, errOut = runCmd(t, nil, append([]string{"store", "export", "-o", bundlePath, "--label", "release=" + id}, flags...)...)
	if code != 0 {
		t.Fatalf("export exit %d: %s", code, errOut)
	}

	other := []string{"--backend", "localfs", "--localfs-dir", filepath.Join(dir, "other")}
	code, out, errOut = runCmd(t, nil, append([]string{"store", "import"}, append(other, bundlePath)...)...)
	if code != 0 || !strings.Contains(out, id) {
		t.Fatalf("import exit %d output %q: %s", code, out, errOut)
	}

	if code, _, _ := runCmd(t, nil, append([]string{"store", "get"}, append(flags, "not-a-cid")...)...); code != 2 {
		t.Fatalf("bad cid exit %d, want 2", code)
	}
}

func TestSignAndVerify(t *testing.T) {
	dir := t.TempDir()
	keyDir := filepath.Join(dir, "keys")
	in, _ := writeBOM(t, dir, "in.json", bomtest.Full(), specversion.JSON, specversion.V1_6)
	seed := strings.Repeat("07", 32)

	code, pub, errOut := runCmd(t, nil, "key", "init", "--key-dir", keyDir, "--seed-hex", seed, "--alg", "dilithium3", "acme")
	if code != 0 {
		t.Fatalf("key init exit %d: %s", code, errOut)
	}
	pub = strings.TrimSpace(pub)
	if !strings.HasPrefix(pub, "dilithium3:") {
		t.Fatalf("unexpected public key %q", pub)
	}

	sigPath := filepath.Join(dir, "in.sig.json")
	code, _, errOut = runCmd(t, nil, "sign", "--key-dir", keyDir, "--signer", "acme", "--alg", "dilithium3", "-o", sigPath, in)
	if code != 0 {
		t.Fatalf("sign exit %d: %s", code, errOut)
	}

	code, out, errOut := runCmd(t, nil, "verify", "--signature", sigPath, "--trust", pub, in)
	if code != 0 || !strings.HasPrefix(out, "OK ") {
		t.Fatalf("verify exit %d: %s%s", code, out, errOut)
	}

	other, _ := writeBOM(t, dir, "other.xml", bomtest.Full(), specversion.XML, specversion.V1_6)
	if code, _, _ := runCmd(t, nil, "verify", "--signature", sigPath, other); code != 1 {
		t.Fatalf("verify of other document exit %d, want 1", code)
	}
	if code, _, _ := runCmd(t, nil, "sign", "--seed-hex", seed, "--signer", "acme", in); code != 2 {
		t.Fatalf("conflicting signer flags exit %d, want 2", code)
	}
}
