// Package bom holds what every versioned BOM model shares: the Document
// interface, the post-decode normalization pass and serial number helpers.
//
// The models themselves live in one package per schema generation
// (bom/v10 … bom/v16). They share no runtime supertype beyond Document.
package bom

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"xdao.co/sbom/specversion"
)

// Document is implemented by the root Bom type of every versioned model.
type Document interface {
	SchemaVersion() specversion.Version
}

const serialPrefix = "urn:uuid:"

var serialRE = regexp.MustCompile(`^urn:uuid:[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// NewSerialNumber returns a random RFC 4122 URN suitable for Bom.SerialNumber.
func NewSerialNumber() string {
	return serialPrefix + uuid.NewString()
}

// ValidSerialNumber reports whether s matches the schema's serialNumber pattern.
func ValidSerialNumber(s string) bool {
	return serialRE.MatchString(s)
}

// SerialUUID strips the urn:uuid: prefix. Non-URN input is returned unchanged.
func SerialUUID(serial string) string {
	return strings.TrimPrefix(serial, serialPrefix)
}
