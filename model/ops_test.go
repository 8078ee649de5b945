package model

import (
	"context"
	"errors"
	"testing"

	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/storage"
)

func encode(t *testing.T, b *v16.Bom, v specversion.Version, f specversion.Format) []byte {
	t.Helper()
	doc, err := convert.Convert(b, v)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	data, err := codec.Marshal(doc, f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

func code(err error) ErrorCode {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func TestConvertStoresResult(t *testing.T) {
	ctx := context.Background()
	cas := &storage.MemCAS{}
	in := encode(t, bomtest.Full(), specversion.V1_2, specversion.XML)

	resp, err := Convert(ctx, ConvertRequest{
		Input:  BlobRef{Bytes: in},
		Output: Output{Format: "json", SpecVersion: "1.5", Store: true},
	}, Options{CAS: cas})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if resp.InputFormat != "xml" || resp.InputSpecVersion != "1.2" {
		t.Fatalf("input detection: %+v", resp)
	}
	out := resp.Output
	if !out.Stored || out.Format != "json" || out.SpecVersion != "1.5" || out.MediaType != "application/vnd.cyclonedx+json; version=1.5" {
		t.Fatalf("output = %+v", out)
	}

	// The stored result is addressable by its CID.
	again, err := Convert(ctx, ConvertRequest{Input: BlobRef{CID: out.CID}}, Options{CAS: cas})
	if err != nil {
		t.Fatalf("Convert by CID: %v", err)
	}
	if again.InputSpecVersion != "1.5" || again.Output.SpecVersion != "1.6" || again.Output.Stored {
		t.Fatalf("second convert = %+v", again)
	}
}

func TestConvertErrors(t *testing.T) {
	ctx := context.Background()
	json := encode(t, bomtest.Full(), specversion.V1_6, specversion.JSON)
	absent := cidutil.String([]byte("absent"))
	cases := []struct {
		req  ConvertRequest
		opts Options
		want ErrorCode
	}{
		{ConvertRequest{}, Options{}, ErrInvalidRequest},
		{ConvertRequest{Input: BlobRef{CID: "x", Bytes: json}}, Options{}, ErrInvalidRequest},
		{ConvertRequest{Input: BlobRef{CID: "nope"}}, Options{}, ErrInvalidCID},
		{ConvertRequest{Input: BlobRef{CID: absent}}, Options{}, ErrMissingCAS},
		{ConvertRequest{Input: BlobRef{CID: absent}}, Options{CAS: &storage.MemCAS{}}, ErrNotFound},
		{ConvertRequest{Input: BlobRef{Bytes: []byte(`{"bomFormat":`)}}, Options{}, ErrParse},
		{ConvertRequest{Input: BlobRef{Bytes: json}, Output: Output{Format: "json", SpecVersion: "1.1"}}, Options{}, ErrUnsupported},
		{ConvertRequest{Input: BlobRef{Bytes: json}, Output: Output{Store: true}}, Options{}, ErrMissingCAS},
	}
	for i, tc := range cases {
		_, err := Convert(ctx, tc.req, tc.opts)
		if got := code(err); got != tc.want {
			t.Fatalf("case %d: code %q (%v), want %q", i, got, err, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	good := encode(t, bomtest.Full(), specversion.V1_4, specversion.XML)
	resp, err := Validate(ctx, ValidateRequest{Input: BlobRef{Bytes: good}, CheckReferences: true}, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !resp.Valid || resp.Format != "xml" || resp.SpecVersion != "1.4" || len(resp.Messages) != 0 {
		t.Fatalf("resp = %+v", resp)
	}

	broken := bomtest.Full()
	broken.Dependencies = append(broken.Dependencies, v16.Dependency{Ref: "ghost"})
	resp, err = Validate(ctx, ValidateRequest{
		Input:           BlobRef{Bytes: encode(t, broken, specversion.V1_6, specversion.JSON)},
		CheckReferences: true,
	}, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if resp.Valid || len(resp.ReferenceProblems) != 1 {
		t.Fatalf("dangling ref not reported: %+v", resp)
	}

	resp, err = Validate(ctx, ValidateRequest{
		Input:       BlobRef{Bytes: []byte(`{"bomFormat":"CycloneDX","specVersion":"1.4","version":1}`)},
		SpecVersion: "1.5",
	}, Options{})
	if err != nil || resp.Valid {
		t.Fatalf("version mismatch: %+v, %v", resp, err)
	}

	_, err = Validate(ctx, ValidateRequest{Input: BlobRef{Bytes: encode(t, bomtest.Full(), specversion.V1_6, specversion.Protobuf)}}, Options{})
	if code(err) != ErrUnsupported {
		t.Fatalf("protobuf: %v", err)
	}
}

func TestMerge(t *testing.T) {
	ctx := context.Background()
	a := bomtest.Full()
	b := bomtest.Full()
	b.Metadata.Component.Name = "other"
	b.Metadata.Component.BomRef = "other"

	resp, err := Merge(ctx, MergeRequest{
		Inputs:       []BlobRef{{Bytes: encode(t, a, specversion.V1_6, specversion.JSON)}, {Bytes: encode(t, b, specversion.V1_3, specversion.XML)}},
		Hierarchical: true,
		Subject:      &Subject{Group: "org.acme", Name: "suite", Version: "3"},
	}, Options{})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	doc, err := codec.Unmarshal(resp.Output.Bytes, specversion.JSON, specversion.V1_6)
	if err != nil {
		t.Fatalf("Unmarshal merged: %v", err)
	}
	merged := doc.(*v16.Bom)
	if merged.Metadata.Component.BomRef != "org.acme.suite@3" || len(merged.Components) != 2 {
		t.Fatalf("merged metadata %+v with %d components", merged.Metadata.Component, len(merged.Components))
	}

	noMeta := bomtest.Full()
	noMeta.Metadata.Component = nil
	_, err = Merge(ctx, MergeRequest{
		Inputs:       []BlobRef{{Bytes: encode(t, noMeta, specversion.V1_6, specversion.JSON)}},
		Hierarchical: true,
	}, Options{})
	if code(err) != ErrMerge {
		t.Fatalf("missing metadata component: %v", err)
	}
	if _, err := Merge(ctx, MergeRequest{}, Options{}); code(err) != ErrInvalidRequest {
		t.Fatalf("empty merge: %v", err)
	}
	var ce *CodedError
	_, err = Merge(ctx, MergeRequest{Inputs: []BlobRef{{Bytes: []byte(`{"bomFormat":`)}}}, Options{})
	if !errors.As(err, &ce) || ce.Code != ErrParse || ce.Message[:9] != "input[0]:" {
		t.Fatalf("bad input: %v", err)
	}
}

func TestDiff(t *testing.T) {
	ctx := context.Background()
	from := bomtest.Full()
	to := bomtest.Full()
	to.Components[0].Version = "2.1"

	resp, err := Diff(ctx, DiffRequest{
		From: BlobRef{Bytes: encode(t, from, specversion.V1_6, specversion.JSON)},
		To:   BlobRef{Bytes: encode(t, to, specversion.V1_6, specversion.Protobuf)},
	}, Options{})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	lib := resp.Components["org.acme:lib"]
	if len(lib.Added) != 1 || lib.Added[0].Version != "2.1" || len(lib.Removed) != 1 || lib.Removed[0].Version != "2.0" {
		t.Fatalf("lib diff = %+v", lib)
	}
}
