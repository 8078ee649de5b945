package convert

import (
	"reflect"

	v10 "xdao.co/sbom/bom/v10"
	v11 "xdao.co/sbom/bom/v11"
	v12 "xdao.co/sbom/bom/v12"
	v13 "xdao.co/sbom/bom/v13"
	v14 "xdao.co/sbom/bom/v14"
	v15 "xdao.co/sbom/bom/v15"
	v16 "xdao.co/sbom/bom/v16"
)

// placeholderVersion fills the component version when moving to a
// generation where it is mandatory.
const placeholderVersion = "0.0.0"

var (
	up10 = newProjector()
	up11 = newProjector()
	up12 = newProjector()
	up13 = newProjector()
	up14 = newProjector()
	up15 = newProjector()

	down11 = newProjector()
	down12 = newProjector()
	down13 = newProjector()
	down14 = newProjector()
	down15 = newProjector()
	down16 = newProjector()
)

func init() {
	// 1.0 licenses are plain records; 1.1 introduced the license/expression choice.
	up10.on([]v10.License(nil), v11.Licenses(nil), func(_ *projector, dst, src reflect.Value) bool {
		in := src.Interface().([]v10.License)
		var out v11.Licenses
		for _, l := range in {
			out = append(out, v11.LicenseChoice{License: &v11.License{ID: l.ID, Name: l.Name}})
		}
		if len(out) > 0 {
			dst.Set(reflect.ValueOf(out))
		}
		return true
	})
	down11.on(v11.Licenses(nil), []v10.License(nil), func(_ *projector, dst, src reflect.Value) bool {
		in := src.Interface().(v11.Licenses)
		var out []v10.License
		for _, c := range in {
			if c.License == nil {
				continue
			}
			out = append(out, v10.License{ID: c.License.ID, Name: c.License.Name})
		}
		if len(out) > 0 {
			dst.Set(reflect.ValueOf(out))
		}
		return true
	})

	// Component version became optional in 1.4.
	down14.on(v14.Component{}, v13.Component{}, func(p *projector, dst, src reflect.Value) bool {
		if !p.fields(dst, src) {
			return false
		}
		c := dst.Addr().Interface().(*v13.Component)
		if c.Version == "" {
			c.Version = placeholderVersion
		}
		return true
	})
}

func hop[D any](p *projector, src any) *D {
	if reflect.ValueOf(src).IsNil() {
		return nil
	}
	dst := new(D)
	p.project(dst, src)
	return dst
}

// Upgrade10To11 projects b onto the 1.1 model. A nil b yields nil.
func Upgrade10To11(b *v10.Bom) *v11.Bom { return hop[v11.Bom](up10, b) }

// Upgrade11To12 projects b onto the 1.2 model. A nil b yields nil.
func Upgrade11To12(b *v11.Bom) *v12.Bom { return hop[v12.Bom](up11, b) }

// Upgrade12To13 projects b onto the 1.3 model. A nil b yields nil.
func Upgrade12To13(b *v12.Bom) *v13.Bom { return hop[v13.Bom](up12, b) }

// Upgrade13To14 projects b onto the 1.4 model. A nil b yields nil.
func Upgrade13To14(b *v13.Bom) *v14.Bom { return hop[v14.Bom](up13, b) }

// Upgrade14To15 projects b onto the 1.5 model. A nil b yields nil.
func Upgrade14To15(b *v14.Bom) *v15.Bom { return hop[v15.Bom](up14, b) }

// Upgrade15To16 projects b onto the 1.6 model. A nil b yields nil.
func Upgrade15To16(b *v15.Bom) *v16.Bom { return hop[v16.Bom](up15, b) }

// Downgrade11To10 projects b onto the 1.0 model, dropping fields
// 1.0 lacks. A nil b yields nil.
func Downgrade11To10(b *v11.Bom) *v10.Bom { return hop[v10.Bom](down11, b) }

// Downgrade12To11 projects b onto the 1.1 model, dropping fields
// 1.1 lacks. A nil b yields nil.
func Downgrade12To11(b *v12.Bom) *v11.Bom { return hop[v11.Bom](down12, b) }

// Downgrade13To12 projects b onto the 1.2 model, dropping fields
// 1.2 lacks. A nil b yields nil.
func Downgrade13To12(b *v13.Bom) *v12.Bom { return hop[v12.Bom](down13, b) }

// Downgrade14To13 projects b onto the 1.3 model, dropping fields
// 1.3 lacks. A nil b yields nil.
func Downgrade14To13(b *v14.Bom) *v13.Bom { return hop[v13.Bom](down14, b) }

// Downgrade15To14 projects b onto the 1.4 model, dropping fields
// 1.4 lacks. A nil b yields nil.
func Downgrade15To14(b *v15.Bom) *v14.Bom { return hop[v14.Bom](down15, b) }

// Downgrade16To15 projects b onto the 1.5 model, dropping fields
// 1.5 lacks. A nil b yields nil.
func Downgrade16To15(b *v16.Bom) *v15.Bom { return hop[v15.Bom](down16, b) }
