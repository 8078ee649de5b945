package bom

import (
	"fmt"

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

// New returns an empty root document of the given generation.
func New(v specversion.Version) (Document, error) {
	switch v {
	case specversion.V1_0:
		return &v10.Bom{}, nil
	case specversion.V1_1:
		return &v11.Bom{}, nil
	case specversion.V1_2:
		return &v12.Bom{}, nil
	case specversion.V1_3:
		return &v13.Bom{}, nil
	case specversion.V1_4:
		return &v14.Bom{}, nil
	case specversion.V1_5:
		return &v15.Bom{}, nil
	case specversion.V1_6:
		return &v16.Bom{}, nil
	}
	return nil, sbomerr.New(sbomerr.KindUnsupported, "SBOM-VER-002", fmt.Sprintf("unknown schema version %d", int(v)))
}
