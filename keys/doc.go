// Package keys signs stored BOM documents.
//
// A signature is detached: it names the CID of the encoded document it
// covers and travels next to it. Ed25519 and Dilithium3 keys are both
// derived from 32-byte seeds, so one filesystem KeyStore serves either
// algorithm.
package keys
