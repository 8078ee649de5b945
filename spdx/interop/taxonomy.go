package interop

// Property names that carry SPDX fields with no CycloneDX counterpart.
const (
	PropSPDXID                 = "spdx:spdxid"
	PropAnnotation             = "spdx:annotation"
	PropFilesAnalyzed          = "spdx:files-analyzed"
	PropDownloadLocation       = "spdx:download-location"
	PropHomepage               = "spdx:homepage"
	PropComment                = "spdx:comment"
	PropLicenseComments        = "spdx:license-comments"
	PropLicenseConcluded       = "spdx:license-concluded"
	PropLicenseDeclared        = "spdx:license-declared"
	PropLicenseInfoFromFile    = "spdx:license-info-from-file"
	PropOriginator             = "spdx:package:originator"
	PropOriginatorOrganization = "spdx:package:originator:organization"
	PropOriginatorEmail        = "spdx:package:originator:email"
	PropSupplier               = "spdx:package:supplier"
	PropSupplierOrganization   = "spdx:package:supplier:organization"
	PropFileName               = "spdx:package:file-name"
	PropVerificationCode       = "spdx:package:verification-code:value"
	PropVerificationExcluded   = "spdx:package:verification-code:excluded-file"
	PropSourceInfo             = "spdx:package:source-info"
	PropSummary                = "spdx:package:summary"
	PropBuiltDate              = "spdx:package:built-date"
	PropReleaseDate            = "spdx:package:release-date"
	PropValidUntilDate         = "spdx:package:valid-until-date"
	PropPrimaryPurpose         = "spdx:package:primary-package-purpose"

	PropChecksum       = "spdx:checksum"
	PropChecksumSHA224 = "spdx:checksum:sha224"
	PropChecksumMD2    = "spdx:checksum:md2"
	PropChecksumMD4    = "spdx:checksum:md4"
	PropChecksumMD6    = "spdx:checksum:md6"
	PropChecksumAdler  = "spdx:checksum:adler32"

	PropDocumentSPDXVersion   = "spdx:document:spdx-version"
	PropDocumentDataLicense   = "spdx:document:data-license"
	PropDocumentName          = "spdx:document:name"
	PropDocumentNamespace     = "spdx:document:document-namespace"
	PropDocumentExternalRef   = "spdx:document:external-document-ref"
	PropDocumentDescribes     = "spdx:document:describes"
	PropCreationComment       = "spdx:creation-info:comment"
	PropLicenseListVersion    = "spdx:creation-info:license-list-version"
	PropCreatorsOrganizations = "spdx:creation-info:creators-organization"
	PropCreator               = "spdx:creation-info:creator"

	PropExternalRef                = "spdx:external-reference"
	PropExternalRefCPE22           = "spdx:external-reference:security:cpe22"
	PropExternalRefCPE23           = "spdx:external-reference:security:cpe23"
	PropExternalRefMavenCentral    = "spdx:external-reference:package-manager:maven-central"
	PropExternalRefNpm             = "spdx:external-reference:package-manager:npm"
	PropExternalRefNuget           = "spdx:external-reference:package-manager:nuget"
	PropExternalRefPurl            = "spdx:external-reference:package-manager:purl"
	PropExternalRefBower           = "spdx:external-reference:package-manager:bower"
	PropExternalRefPersistentIDSWH = "spdx:external-reference:persistent-id:swh"
	PropExternalRefOther           = "spdx:external-reference:other"
)
