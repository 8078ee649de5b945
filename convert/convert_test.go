package convert

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"xdao.co/sbom/bom"
	v10 "xdao.co/sbom/bom/v10"
	v11 "xdao.co/sbom/bom/v11"
	v12 "xdao.co/sbom/bom/v12"
	v13 "xdao.co/sbom/bom/v13"
	v14 "xdao.co/sbom/bom/v14"
	v15 "xdao.co/sbom/bom/v15"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

func ptr[T any](v T) *T { return &v }

func TestConvert_DeviceDroppedWhenDowngradingTo10(t *testing.T) {
	src := &v12.Bom{
		Version: 1,
		Components: []v12.Component{
			{Type: v12.ComponentTypeDevice, Name: "router", Version: "1"},
			{Type: v12.ComponentTypeLibrary, Name: "libc", Version: "2.31"},
		},
	}
	got, err := Convert(src, specversion.V1_0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	out := got.(*v10.Bom)
	if len(out.Components) != 1 || out.Components[0].Name != "libc" {
		t.Fatalf("expected only libc to survive, got %+v", out.Components)
	}
}

func TestConvert_AllComponentsFilteredYieldsNil(t *testing.T) {
	src := &v12.Bom{Components: []v12.Component{{Type: v12.ComponentTypeFirmware, Name: "fw"}}}
	out := Downgrade12To11(src)
	if out.Components != nil {
		t.Fatalf("filtered-out list must be absent, got %#v", out.Components)
	}
}

func TestConvert_HashAlgorithmFiltered(t *testing.T) {
	src := &v16.Bom{Components: []v16.Component{{
		Type: v16.ComponentTypeLibrary,
		Name: "x",
		Hashes: []v16.Hash{
			{Alg: v16.HashSHA256, Content: "aa"},
			{Alg: v16.HashBLAKE3, Content: "bb"},
			{Alg: v16.HashSHA3_384, Content: "cc"},
		},
	}}}
	got, err := Convert(src, specversion.V1_0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	out := got.(*v10.Bom)
	want := []v10.Hash{{Alg: v10.HashSHA256, Content: "aa"}}
	if diff := cmp.Diff(want, out.Components[0].Hashes); diff != "" {
		t.Fatalf("hash filtering mismatch:\n%s", diff)
	}
}

func TestConvert_OptionalEnumCleared(t *testing.T) {
	score := 9.8
	src := &v15.Bom{Vulnerabilities: []v15.Vulnerability{{
		ID:      "CVE-1",
		Ratings: []v15.Rating{{Score: &score, Method: v15.ScoreMethodCVSSv4, Severity: v15.SeverityCritical}},
	}}}
	out := Downgrade15To14(src)
	if len(out.Vulnerabilities) != 1 || len(out.Vulnerabilities[0].Ratings) != 1 {
		t.Fatalf("rating should survive without its method: %+v", out.Vulnerabilities)
	}
	r := out.Vulnerabilities[0].Ratings[0]
	if r.Method != "" || r.Severity != v14.SeverityCritical || *r.Score != score {
		t.Fatalf("unexpected rating %+v", r)
	}
}

func TestConvert_ScopeExcludedClearedIn10(t *testing.T) {
	src := &v11.Bom{Components: []v11.Component{{
		Type:  v11.ComponentTypeLibrary,
		Name:  "x",
		Scope: ptr(v11.ScopeExcluded),
	}}}
	out := Downgrade11To10(src)
	if out.Components[0].Scope != nil {
		t.Fatalf("excluded scope has no 1.0 representation, got %v", *out.Components[0].Scope)
	}
}

func TestConvert_LicensesAcross10And11(t *testing.T) {
	src := &v11.Bom{Components: []v11.Component{{
		Type: v11.ComponentTypeLibrary,
		Name: "x",
		Licenses: v11.Licenses{
			{License: &v11.License{ID: "MIT", URL: "https://opensource.org/licenses/MIT"}},
			{Expression: "MIT OR Apache-2.0"},
		},
	}}}
	down := Downgrade11To10(src)
	if diff := cmp.Diff([]v10.License{{ID: "MIT"}}, down.Components[0].Licenses); diff != "" {
		t.Fatalf("downgrade licenses:\n%s", diff)
	}
	up := Upgrade10To11(down)
	want := v11.Licenses{{License: &v11.License{ID: "MIT"}}}
	if diff := cmp.Diff(want, up.Components[0].Licenses); diff != "" {
		t.Fatalf("upgrade licenses:\n%s", diff)
	}
}

func TestConvert_VersionFilledWhenDowngradingTo13(t *testing.T) {
	src := &v14.Bom{Components: []v14.Component{{
		Type:       v14.ComponentTypeLibrary,
		Name:       "unversioned",
		Components: []v14.Component{{Type: v14.ComponentTypeLibrary, Name: "child", Version: "2"}},
	}}}
	out := Downgrade14To13(src)
	if out.Components[0].Version != "0.0.0" {
		t.Fatalf("expected placeholder version, got %q", out.Components[0].Version)
	}
	if out.Components[0].Components[0].Version != "2" {
		t.Fatalf("explicit version must be kept")
	}
}

func TestConvert_StructuralPromotion(t *testing.T) {
	src := &v11.Bom{SerialNumber: "urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79", Version: 2}
	got, err := Convert(src, specversion.V1_6)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	out := got.(*v16.Bom)
	if out.Metadata != nil || out.Services != nil || out.Dependencies != nil {
		t.Fatalf("fields absent from the source must stay absent: %+v", out)
	}
	if out.SerialNumber != src.SerialNumber || out.Version != 2 {
		t.Fatalf("shared fields not copied: %+v", out)
	}
}

func sample16() *v16.Bom {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &v16.Bom{
		SerialNumber: bom.NewSerialNumber(),
		Version:      1,
		Metadata: &v16.Metadata{
			Timestamp: &ts,
			Tools:     []v16.Tool{{Vendor: "acme", Name: "scanner", Version: "1.0"}},
			Component: &v16.Component{Type: v16.ComponentTypeApplication, Name: "app", Version: "1.0", BomRef: "app"},
		},
		Components: []v16.Component{
			{
				Type:     v16.ComponentTypeLibrary,
				BomRef:   "lib",
				Group:    "org.acme",
				Name:     "lib",
				Version:  "2.0",
				Scope:    ptr(v16.ScopeRequired),
				Hashes:   []v16.Hash{{Alg: v16.HashSHA256, Content: "abcd"}},
				Licenses: v16.Licenses{{License: &v16.License{ID: "MIT"}}},
				Purl:     "pkg:maven/org.acme/lib@2.0",
				Pedigree: &v16.Pedigree{Ancestors: []v16.Component{{Type: v16.ComponentTypeLibrary, Name: "upstream", Version: "1.9"}}},
			},
		},
		Services:     []v16.Service{{BomRef: "svc", Name: "api", Endpoints: []string{"https://api.example.com"}}},
		Dependencies: []v16.Dependency{{Ref: "app", DependsOn: []v16.BomReference{"lib"}}},
		Compositions: []v16.Composition{{Aggregate: v16.AggregateComplete, Assemblies: []v16.BomReference{"app"}}},
		Vulnerabilities: []v16.Vulnerability{{
			BomRef:  "vuln",
			ID:      "CVE-2024-0001",
			Affects: []v16.Affects{{Ref: "lib", Versions: []v16.AffectedVersion{{Version: "2.0", Status: v16.AffectedStatusAffected}}}},
		}},
	}
}

func TestConvert_ForwardThenBackIsLossySafe(t *testing.T) {
	for _, v := range specversion.Versions() {
		down, err := Convert(sample16(), v)
		if err != nil {
			t.Fatalf("down to %s: %v", v, err)
		}
		up, err := Convert(down, specversion.V1_6)
		if err != nil {
			t.Fatalf("up from %s: %v", v, err)
		}
		again, err := Convert(up, v)
		if err != nil {
			t.Fatalf("down again to %s: %v", v, err)
		}
		if diff := cmp.Diff(down, again); diff != "" {
			t.Fatalf("%s -> 1.6 -> %s changed the document:\n%s", v, v, diff)
		}
	}
}

func TestConvert_IdentityIsDeepCopy(t *testing.T) {
	src := sample16()
	got, err := Convert(src, specversion.V1_6)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	out := got.(*v16.Bom)
	if diff := cmp.Diff(src, out); diff != "" {
		t.Fatalf("identity conversion changed content:\n%s", diff)
	}
	out.Components[0].Name = "mutated"
	if src.Components[0].Name == "mutated" {
		t.Fatalf("identity conversion aliases the source")
	}
}

func TestConvert_NoSharedNodes(t *testing.T) {
	src := sample16()
	out := Downgrade16To15(src)
	out.Components[0].Hashes[0].Content = "changed"
	out.Metadata.Component.Name = "changed"
	*out.Components[0].Scope = v15.ScopeExcluded
	if src.Components[0].Hashes[0].Content != "abcd" || src.Metadata.Component.Name != "app" || *src.Components[0].Scope != v16.ScopeRequired {
		t.Fatalf("conversion result shares nodes with its source")
	}
}

func TestConvert_Errors(t *testing.T) {
	if _, err := Convert(nil, specversion.V1_4); !sbomerr.IsKind(err, sbomerr.KindConversion) {
		t.Fatalf("nil source: %v", err)
	}
	var typedNil *v13.Bom
	if _, err := Convert(typedNil, specversion.V1_4); !sbomerr.IsKind(err, sbomerr.KindConversion) {
		t.Fatalf("typed nil source: %v", err)
	}
	if _, err := Convert(&v13.Bom{}, specversion.Version(42)); sbomerr.RuleID(err) != "SBOM-CONV-002" {
		t.Fatalf("bad target: %v", err)
	}
	if Downgrade16To15(nil) != nil {
		t.Fatalf("typed helper must map nil to nil")
	}
}

func TestHopsMapNilToNil(t *testing.T) {
	for name, got := range map[string]bool{
		"Upgrade10To11":   Upgrade10To11(nil) == nil,
		"Upgrade11To12":   Upgrade11To12(nil) == nil,
		"Upgrade12To13":   Upgrade12To13(nil) == nil,
		"Upgrade13To14":   Upgrade13To14(nil) == nil,
		"Upgrade14To15":   Upgrade14To15(nil) == nil,
		"Upgrade15To16":   Upgrade15To16(nil) == nil,
		"Downgrade11To10": Downgrade11To10(nil) == nil,
		"Downgrade12To11": Downgrade12To11(nil) == nil,
		"Downgrade13To12": Downgrade13To12(nil) == nil,
		"Downgrade14To13": Downgrade14To13(nil) == nil,
		"Downgrade15To14": Downgrade15To14(nil) == nil,
		"Downgrade16To15": Downgrade16To15(nil) == nil,
	} {
		if !got {
			t.Errorf("%s(nil) != nil", name)
		}
	}
}

func TestHopsChain(t *testing.T) {
	src := &v10.Bom{Version: 1, Components: []v10.Component{{Type: "library", Name: "lib", Version: "1.0"}}}
	top := Upgrade15To16(Upgrade14To15(Upgrade13To14(Upgrade12To13(Upgrade11To12(Upgrade10To11(src))))))
	if len(top.Components) != 1 || top.Components[0].Name != "lib" || top.Components[0].Version != "1.0" {
		t.Fatalf("upgraded components = %+v", top.Components)
	}
	back := Downgrade11To10(Downgrade12To11(Downgrade13To12(Downgrade14To13(Downgrade15To14(Downgrade16To15(top))))))
	if len(back.Components) != 1 || back.Components[0].Name != "lib" || back.Components[0].Version != "1.0" {
		t.Fatalf("downgraded components = %+v", back.Components)
	}
}
