package protocodec

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// enumTable maps wire tokens to .proto enum numbers. byNum[0] is "" when
// the enum reserves zero for "unspecified".
type enumTable struct {
	name    string
	byNum   []string
	byToken map[string]uint64
}

func newEnum(name string, tokens ...string) *enumTable {
	t := &enumTable{name: name, byNum: tokens, byToken: make(map[string]uint64, len(tokens))}
	for i, tok := range tokens {
		if tok != "" {
			t.byToken[tok] = uint64(i)
		}
	}
	return t
}

func (t *enumTable) number(tok string) (uint64, error) {
	n, ok := t.byToken[tok]
	if !ok {
		return 0, fmt.Errorf("%s: no wire number for %q", t.name, tok)
	}
	return n, nil
}

func (t *enumTable) token(n uint64) (string, error) {
	if n >= uint64(len(t.byNum)) {
		return "", fmt.Errorf("%s: undefined enum number %d", t.name, n)
	}
	return t.byNum[n], nil
}

var (
	classificationEnum = newEnum("Classification", "",
		"application", "framework", "library", "operating-system", "device", "file",
		"container", "firmware", "device-driver", "platform", "machine-learning-model",
		"data", "cryptographic-asset")

	scopeEnum = newEnum("Scope", "", "required", "optional", "excluded")

	hashAlgEnum = newEnum("HashAlg", "",
		"MD5", "SHA-1", "SHA-256", "SHA-384", "SHA-512",
		"SHA3-256", "SHA3-384", "SHA3-512",
		"BLAKE2b-256", "BLAKE2b-384", "BLAKE2b-512", "BLAKE3")

	// "other" is the zero value.
	externalReferenceTypeEnum = newEnum("ExternalReferenceType",
		"other", "vcs", "issue-tracker", "website", "advisories", "bom", "mailing-list",
		"social", "chat", "documentation", "support", "distribution", "license",
		"build-meta", "build-system", "release-notes", "security-contact", "model-card",
		"log", "configuration", "evidence", "formulation", "attestation", "threat-model",
		"adversary-model", "risk-assessment", "distribution-intake",
		"vulnerability-assertion", "exploitability-statement", "pentest-report",
		"static-analysis-report", "dynamic-analysis-report", "runtime-analysis-report",
		"component-analysis-report", "maturity-report", "certification-report",
		"quality-metrics", "codified-infrastructure", "poam", "source-distribution",
		"electronic-signature", "digital-signature", "rfc-9116")

	patchTypeEnum = newEnum("PatchClassification", "", "unofficial", "monkey", "backport", "cherry-pick")

	issueTypeEnum = newEnum("IssueClassification", "", "defect", "enhancement", "security")

	dataFlowEnum = newEnum("DataFlow", "", "inbound", "outbound", "bi-directional", "unknown")

	// "not_specified" is the zero value.
	aggregateEnum = newEnum("Aggregate",
		"not_specified", "complete", "incomplete", "incomplete_first_party_only",
		"incomplete_third_party_only", "unknown",
		"incomplete_first_party_proprietary_only", "incomplete_first_party_opensource_only",
		"incomplete_third_party_proprietary_only", "incomplete_third_party_opensource_only")

	// "unknown" is the zero value.
	severityEnum = newEnum("Severity", "unknown", "critical", "high", "medium", "low", "info", "none")

	scoreMethodEnum = newEnum("ScoreMethod", "", "CVSSv2", "CVSSv3", "CVSSv31", "OWASP", "other", "CVSSv4", "SSVC")

	impactStateEnum = newEnum("ImpactAnalysisState", "",
		"resolved", "resolved_with_pedigree", "exploitable", "in_triage", "false_positive", "not_affected")

	impactJustificationEnum = newEnum("ImpactAnalysisJustification", "",
		"code_not_present", "code_not_reachable", "requires_configuration",
		"requires_dependency", "requires_environment", "protected_by_compiler",
		"protected_at_runtime", "protected_at_perimeter", "protected_by_mitigating_control")

	impactResponseEnum = newEnum("VulnerabilityResponse", "",
		"can_not_fix", "will_not_fix", "update", "rollback", "workaround_available")

	// "unknown" is the zero value.
	affectedStatusEnum = newEnum("VulnerabilityAffectedStatus", "unknown", "affected", "unaffected")

	// "design" is the zero value.
	lifecyclePhaseEnum = newEnum("LifecyclePhase",
		"design", "pre-build", "build", "post-build", "operations", "discovery", "decommission")

	acknowledgementEnum = newEnum("LicenseAcknowledgementEnumeration", "", "declared", "concluded")
)

// appendEnum writes tok when it is set. A set token is always written, even
// when it maps to zero, so presence survives the round trip.
func appendEnum(b []byte, num protowire.Number, t *enumTable, tok string) ([]byte, error) {
	if tok == "" {
		return b, nil
	}
	n, err := t.number(tok)
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, n), nil
}
