package specversion

import (
	"fmt"
	"mime"
	"strings"

	"xdao.co/sbom/sbomerr"
)

// Format is a wire encoding.
type Format int

const (
	XML Format = iota
	JSON
	Protobuf
)

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case JSON:
		return "json"
	case Protobuf:
		return "protobuf"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts xml, json, protobuf (aliases proto, binary).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xml":
		return XML, nil
	case "json":
		return JSON, nil
	case "protobuf", "proto", "binary":
		return Protobuf, nil
	}
	return 0, sbomerr.New(sbomerr.KindUnsupported, "SBOM-FMT-000", fmt.Sprintf("unknown format %q", s))
}

// FirstVersion returns the earliest version a format can carry.
func (f Format) FirstVersion() Version {
	switch f {
	case JSON:
		return V1_2
	case Protobuf:
		return V1_3
	default:
		return V1_0
	}
}

// Supports reports whether f can carry documents of version v.
// Impossible combinations return a KindUnsupported error.
func Supports(f Format, v Version) error {
	if !v.Valid() {
		return sbomerr.New(sbomerr.KindUnsupported, "SBOM-VER-001", fmt.Sprintf("unknown specification version %s", v))
	}
	switch f {
	case XML:
		return nil
	case JSON:
		if v < V1_2 {
			return sbomerr.New(sbomerr.KindUnsupported, "SBOM-FMT-001", "JSON format is only supported from v1.2.")
		}
		return nil
	case Protobuf:
		if v < V1_3 {
			return sbomerr.New(sbomerr.KindUnsupported, "SBOM-FMT-002", "Protocol Buffers format is only supported from v1.3.")
		}
		return nil
	default:
		return sbomerr.New(sbomerr.KindUnsupported, "SBOM-FMT-000", fmt.Sprintf("unknown format %s", f))
	}
}

const (
	MediaTypeXML      = "application/vnd.cyclonedx+xml"
	MediaTypeJSON     = "application/vnd.cyclonedx+json"
	MediaTypeProtobuf = "application/x.vnd.cyclonedx+protobuf"
)

// MediaType returns the unversioned media type, which denotes the latest version.
func MediaType(f Format) string {
	switch f {
	case JSON:
		return MediaTypeJSON
	case Protobuf:
		return MediaTypeProtobuf
	default:
		return MediaTypeXML
	}
}

// VersionedMediaType returns the media type with a version parameter.
func VersionedMediaType(f Format, v Version) (string, error) {
	if err := Supports(f, v); err != nil {
		return "", err
	}
	return MediaType(f) + "; version=" + v.String(), nil
}

// ParseMediaType is the inverse of MediaType/VersionedMediaType. The returned
// version is nil when the media type carries no version parameter.
func ParseMediaType(s string) (Format, *Version, error) {
	base, params, err := mime.ParseMediaType(s)
	if err != nil {
		return 0, nil, sbomerr.Wrap(sbomerr.KindUnsupported, "SBOM-MT-001", "invalid media type", err)
	}
	var f Format
	switch base {
	case MediaTypeXML:
		f = XML
	case MediaTypeJSON:
		f = JSON
	case MediaTypeProtobuf:
		f = Protobuf
	default:
		return 0, nil, sbomerr.New(sbomerr.KindUnsupported, "SBOM-MT-002", fmt.Sprintf("not a CycloneDX media type: %q", base))
	}
	raw, ok := params["version"]
	if !ok {
		return f, nil, nil
	}
	v, err := ParseVersion(raw)
	if err != nil {
		return 0, nil, err
	}
	if err := Supports(f, v); err != nil {
		return 0, nil, err
	}
	return f, &v, nil
}
