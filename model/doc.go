// Package model defines the JSON boundary types for API layers and the
// operations that execute them against the library.
//
// Document identity (encoded bytes and their CIDs) is unaffected by any
// projection here. These structs are the only types intended for direct
// JSON serialization by consumers; the BOM model itself stays internal to
// the codecs.
package model
