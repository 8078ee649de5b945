// Package convert migrates BOM documents between schema generations.
//
// Each adjacent pair of generations has an upgrade and a downgrade
// function. Convert composes them along the version chain, so a 1.0
// document reaches 1.6 through every intermediate generation. Conversion is
// a projection: fields the target cannot represent are dropped silently,
// and every result is a freshly allocated graph that shares nothing with
// its source.
package convert

import (
	"fmt"
	"reflect"

	"github.com/mohae/deepcopy"

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

type step func(bom.Document) bom.Document

var upgrades = map[specversion.Version]step{
	specversion.V1_0: func(d bom.Document) bom.Document { return Upgrade10To11(d.(*v10.Bom)) },
	specversion.V1_1: func(d bom.Document) bom.Document { return Upgrade11To12(d.(*v11.Bom)) },
	specversion.V1_2: func(d bom.Document) bom.Document { return Upgrade12To13(d.(*v12.Bom)) },
	specversion.V1_3: func(d bom.Document) bom.Document { return Upgrade13To14(d.(*v13.Bom)) },
	specversion.V1_4: func(d bom.Document) bom.Document { return Upgrade14To15(d.(*v14.Bom)) },
	specversion.V1_5: func(d bom.Document) bom.Document { return Upgrade15To16(d.(*v15.Bom)) },
}

var downgrades = map[specversion.Version]step{
	specversion.V1_1: func(d bom.Document) bom.Document { return Downgrade11To10(d.(*v11.Bom)) },
	specversion.V1_2: func(d bom.Document) bom.Document { return Downgrade12To11(d.(*v12.Bom)) },
	specversion.V1_3: func(d bom.Document) bom.Document { return Downgrade13To12(d.(*v13.Bom)) },
	specversion.V1_4: func(d bom.Document) bom.Document { return Downgrade14To13(d.(*v14.Bom)) },
	specversion.V1_5: func(d bom.Document) bom.Document { return Downgrade15To14(d.(*v15.Bom)) },
	specversion.V1_6: func(d bom.Document) bom.Document { return Downgrade16To15(d.(*v16.Bom)) },
}

// Convert returns src expressed in the target generation. Converting to the
// source's own generation returns a deep copy.
func Convert(src bom.Document, target specversion.Version) (bom.Document, error) {
	if src == nil || reflect.ValueOf(src).IsNil() {
		return nil, sbomerr.New(sbomerr.KindConversion, "SBOM-CONV-001", "source document is nil")
	}
	if !target.Valid() {
		return nil, sbomerr.New(sbomerr.KindConversion, "SBOM-CONV-002", fmt.Sprintf("unknown target version %d", int(target)))
	}
	cur := src.SchemaVersion()
	if cur == target {
		return deepcopy.Copy(src).(bom.Document), nil
	}
	doc := src
	for cur != target {
		var next step
		if cur < target {
			next = upgrades[cur]
		} else {
			next = downgrades[cur]
		}
		if next == nil {
			return nil, sbomerr.New(sbomerr.KindConversion, "SBOM-CONV-003", fmt.Sprintf("no converter from %s towards %s", cur, target))
		}
		doc = next(doc)
		cur = doc.SchemaVersion()
	}
	return doc, nil
}

// ToLatest is Convert(src, specversion.Latest) narrowed to the latest model.
func ToLatest(src bom.Document) (*v16.Bom, error) {
	d, err := Convert(src, specversion.Latest)
	if err != nil {
		return nil, err
	}
	return d.(*v16.Bom), nil
}
