package model

import (
	"context"
	"strconv"

	"github.com/samber/lo"

	"xdao.co/sbom/bom"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/bomutil"
	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/storage"
	"xdao.co/sbom/validate"
)

// Options carries the environment operations run in.
type Options struct {
	// CAS hydrates BlobRefs given by CID and stores results on request.
	CAS storage.CAS
	// Limits bound every decode.
	Limits codec.Limits
}

func (o Options) codecOptions() []codec.Option {
	if o.Limits == (codec.Limits{}) {
		return nil
	}
	return []codec.Option{codec.WithLimits(o.Limits)}
}

// Convert decodes the input and re-encodes it per the output selection.
func Convert(ctx context.Context, req ConvertRequest, opts Options) (*ConvertResponse, error) {
	doc, f, err := load(ctx, req.Input, opts)
	if err != nil {
		return nil, err
	}
	out, err := render(ctx, doc, req.Output, opts)
	if err != nil {
		return nil, err
	}
	return &ConvertResponse{
		InputFormat:      f.String(),
		InputSpecVersion: doc.SchemaVersion().String(),
		Output:           *out,
	}, nil
}

// Validate checks the input against its schema. Schema findings are
// reported in the response; only unusable requests return an error.
func Validate(ctx context.Context, req ValidateRequest, opts Options) (*ValidateResponse, error) {
	data, err := hydrate(ctx, req.Input, opts)
	if err != nil {
		return nil, err
	}
	f := codec.Sniff(data)
	if req.Format != "" {
		if f, err = specversion.ParseFormat(req.Format); err != nil {
			return nil, AsCodedError(err)
		}
	}
	resp := &ValidateResponse{Format: f.String()}

	var res validate.Result
	switch {
	case req.SpecVersion != "":
		v, err := specversion.ParseVersion(req.SpecVersion)
		if err != nil {
			return nil, AsCodedError(err)
		}
		resp.SpecVersion = v.String()
		res, err = validate.Validate(data, v, f)
		if err != nil {
			return nil, AsCodedError(err)
		}
	case f == specversion.JSON:
		res, err = validate.ValidateJSON(data)
	case f == specversion.XML:
		res, err = validate.ValidateXML(data)
	default:
		return nil, NewError(ErrUnsupported, "only XML and JSON documents can be validated")
	}
	if err != nil {
		return nil, AsCodedError(err)
	}
	if resp.SpecVersion == "" {
		if v, err := codec.DetectVersion(data, f); err == nil {
			resp.SpecVersion = v.String()
		}
	}
	resp.Valid = res.Valid
	resp.Messages = append([]string{}, res.Messages...)

	if req.CheckReferences && res.Valid {
		v, err := specversion.ParseVersion(resp.SpecVersion)
		if err != nil {
			return nil, AsCodedError(err)
		}
		doc, err := codec.Unmarshal(data, f, v, opts.codecOptions()...)
		if err != nil {
			return nil, AsCodedError(err)
		}
		resp.ReferenceProblems = validate.CheckReferences(doc)
		resp.Valid = len(resp.ReferenceProblems) == 0
	}
	return resp, nil
}

// Merge combines the inputs flat or hierarchically and encodes the result.
func Merge(ctx context.Context, req MergeRequest, opts Options) (*MergeResponse, error) {
	if len(req.Inputs) == 0 {
		return nil, NewError(ErrInvalidRequest, "merge needs at least one input")
	}
	boms := make([]*v16.Bom, 0, len(req.Inputs))
	for i, in := range req.Inputs {
		doc, _, err := load(ctx, in, opts)
		if err != nil {
			ce := AsCodedError(err)
			return nil, &CodedError{Code: ce.Code, RuleID: ce.RuleID, Message: "input[" + strconv.Itoa(i) + "]: " + ce.Message}
		}
		latest, err := convert.ToLatest(doc)
		if err != nil {
			return nil, AsCodedError(err)
		}
		boms = append(boms, latest)
	}

	var subject *v16.Component
	if s := req.Subject; s != nil {
		if s.Name == "" {
			return nil, NewError(ErrInvalidRequest, "merge subject needs a name")
		}
		subject = &v16.Component{
			Type:    v16.ComponentTypeApplication,
			BomRef:  s.BomRef,
			Group:   s.Group,
			Name:    s.Name,
			Version: s.Version,
		}
	}

	var merged *v16.Bom
	if req.Hierarchical {
		var err error
		if merged, err = bomutil.HierarchicalMerge(boms, subject); err != nil {
			return nil, AsCodedError(err)
		}
	} else {
		merged = bomutil.FlatMergeAll(boms, subject)
	}
	out, err := render(ctx, merged, req.Output, opts)
	if err != nil {
		return nil, err
	}
	return &MergeResponse{Output: *out}, nil
}

// Diff reports, per component identity, which versions were added,
// removed or kept between the two inputs.
func Diff(ctx context.Context, req DiffRequest, opts Options) (*DiffResponse, error) {
	from, err := loadLatest(ctx, req.From, opts)
	if err != nil {
		return nil, err
	}
	to, err := loadLatest(ctx, req.To, opts)
	if err != nil {
		return nil, err
	}
	resp := &DiffResponse{Components: map[string]ComponentDiff{}}
	for key, item := range bomutil.ComponentVersionDiff(from, to) {
		resp.Components[key] = ComponentDiff{
			Added:     refs(item.Added),
			Removed:   refs(item.Removed),
			Unchanged: refs(item.Unchanged),
		}
	}
	return resp, nil
}

func refs(cs []v16.Component) []ComponentRef {
	return lo.Map(cs, func(c v16.Component, _ int) ComponentRef {
		return ComponentRef{BomRef: c.BomRef, Group: c.Group, Name: c.Name, Version: c.Version, Purl: c.Purl}
	})
}

// hydrate returns the bytes a BlobRef stands for.
func hydrate(ctx context.Context, ref BlobRef, opts Options) ([]byte, error) {
	switch {
	case len(ref.Bytes) > 0 && ref.CID != "":
		return nil, NewError(ErrInvalidRequest, "blob ref has both bytes and cid")
	case len(ref.Bytes) > 0:
		return ref.Bytes, nil
	case ref.CID == "":
		return nil, NewError(ErrInvalidRequest, "blob ref missing bytes/cid")
	}
	id, err := cidutil.Parse(ref.CID)
	if err != nil {
		return nil, NewError(ErrInvalidCID, err.Error())
	}
	if opts.CAS == nil {
		return nil, NewError(ErrMissingCAS, "blob ref by cid needs a CAS")
	}
	b, err := opts.CAS.Get(ctx, id)
	if err != nil {
		return nil, AsCodedError(err)
	}
	return b, nil
}

func load(ctx context.Context, ref BlobRef, opts Options) (bom.Document, specversion.Format, error) {
	data, err := hydrate(ctx, ref, opts)
	if err != nil {
		return nil, 0, err
	}
	doc, f, err := codec.DecodeAny(data, opts.codecOptions()...)
	if err != nil {
		return nil, f, AsCodedError(err)
	}
	return doc, f, nil
}

func loadLatest(ctx context.Context, ref BlobRef, opts Options) (*v16.Bom, error) {
	doc, _, err := load(ctx, ref, opts)
	if err != nil {
		return nil, err
	}
	b, err := convert.ToLatest(doc)
	if err != nil {
		return nil, AsCodedError(err)
	}
	return b, nil
}

// render converts doc to the requested generation, encodes it and
// optionally stores the bytes.
func render(ctx context.Context, doc bom.Document, sel Output, opts Options) (*Document, error) {
	f := specversion.JSON
	if sel.Format != "" {
		var err error
		if f, err = specversion.ParseFormat(sel.Format); err != nil {
			return nil, AsCodedError(err)
		}
	}
	v := specversion.Latest
	if sel.SpecVersion != "" {
		var err error
		if v, err = specversion.ParseVersion(sel.SpecVersion); err != nil {
			return nil, AsCodedError(err)
		}
	}
	if err := specversion.Supports(f, v); err != nil {
		return nil, AsCodedError(err)
	}
	target, err := convert.Convert(doc, v)
	if err != nil {
		return nil, AsCodedError(err)
	}
	id, data, err := cidutil.BomCID(target, f, codec.WithIndent(sel.Indent))
	if err != nil {
		return nil, AsCodedError(err)
	}
	mt, err := specversion.VersionedMediaType(f, v)
	if err != nil {
		return nil, AsCodedError(err)
	}
	out := &Document{Bytes: data, CID: id.String(), Format: f.String(), SpecVersion: v.String(), MediaType: mt}
	if sel.Store {
		if opts.CAS == nil {
			return nil, NewError(ErrMissingCAS, "storing a result needs a CAS")
		}
		if _, err := opts.CAS.Put(ctx, data); err != nil {
			return nil, AsCodedError(err)
		}
		out.Stored = true
	}
	return out, nil
}
