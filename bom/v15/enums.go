package v15

import "fmt"

func unmarshalEnum[T ~string](b []byte, out *T, defined func(T) bool, what string) error {
	v := T(b)
	if !defined(v) {
		return fmt.Errorf("v1.5: undefined %s %q", what, string(b))
	}
	*out = v
	return nil
}

func set[T ~string](vals ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

// ComponentType classifies a component.
type ComponentType string

const (
	ComponentTypeApplication     ComponentType = "application"
	ComponentTypeFramework       ComponentType = "framework"
	ComponentTypeLibrary         ComponentType = "library"
	ComponentTypeContainer       ComponentType = "container"
	ComponentTypePlatform        ComponentType = "platform"
	ComponentTypeOperatingSystem ComponentType = "operating-system"
	ComponentTypeDevice          ComponentType = "device"
	ComponentTypeDeviceDriver    ComponentType = "device-driver"
	ComponentTypeFirmware        ComponentType = "firmware"
	ComponentTypeFile            ComponentType = "file"
	ComponentTypeMLModel         ComponentType = "machine-learning-model"
	ComponentTypeData            ComponentType = "data"
)

var componentTypes = set(
	ComponentTypeApplication,
	ComponentTypeFramework,
	ComponentTypeLibrary,
	ComponentTypeContainer,
	ComponentTypePlatform,
	ComponentTypeOperatingSystem,
	ComponentTypeDevice,
	ComponentTypeDeviceDriver,
	ComponentTypeFirmware,
	ComponentTypeFile,
	ComponentTypeMLModel,
	ComponentTypeData,
)

func (t ComponentType) IsDefined() bool {
	_, ok := componentTypes[t]
	return ok
}

func (t *ComponentType) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, t, ComponentType.IsDefined, "component type")
}

type Scope string

const (
	ScopeRequired Scope = "required"
	ScopeOptional Scope = "optional"
	ScopeExcluded Scope = "excluded"
)

var scopes = set(
	ScopeRequired,
	ScopeOptional,
	ScopeExcluded,
)

func (s Scope) IsDefined() bool {
	_, ok := scopes[s]
	return ok
}

func (s *Scope) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, s, Scope.IsDefined, "scope")
}

type HashAlgorithm string

const (
	HashMD5        HashAlgorithm = "MD5"
	HashSHA1       HashAlgorithm = "SHA-1"
	HashSHA256     HashAlgorithm = "SHA-256"
	HashSHA384     HashAlgorithm = "SHA-384"
	HashSHA512     HashAlgorithm = "SHA-512"
	HashSHA3_256   HashAlgorithm = "SHA3-256"
	HashSHA3_384   HashAlgorithm = "SHA3-384"
	HashSHA3_512   HashAlgorithm = "SHA3-512"
	HashBLAKE2b256 HashAlgorithm = "BLAKE2b-256"
	HashBLAKE2b384 HashAlgorithm = "BLAKE2b-384"
	HashBLAKE2b512 HashAlgorithm = "BLAKE2b-512"
	HashBLAKE3     HashAlgorithm = "BLAKE3"
)

var hashAlgorithms = set(
	HashMD5,
	HashSHA1,
	HashSHA256,
	HashSHA384,
	HashSHA512,
	HashSHA3_256,
	HashSHA3_384,
	HashSHA3_512,
	HashBLAKE2b256,
	HashBLAKE2b384,
	HashBLAKE2b512,
	HashBLAKE3,
)

func (a HashAlgorithm) IsDefined() bool {
	_, ok := hashAlgorithms[a]
	return ok
}

func (a *HashAlgorithm) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, a, HashAlgorithm.IsDefined, "hash algorithm")
}

type ExternalReferenceType string

const (
	ERTypeVCS                     ExternalReferenceType = "vcs"
	ERTypeIssueTracker            ExternalReferenceType = "issue-tracker"
	ERTypeWebsite                 ExternalReferenceType = "website"
	ERTypeAdvisories              ExternalReferenceType = "advisories"
	ERTypeBOM                     ExternalReferenceType = "bom"
	ERTypeMailingList             ExternalReferenceType = "mailing-list"
	ERTypeSocial                  ExternalReferenceType = "social"
	ERTypeChat                    ExternalReferenceType = "chat"
	ERTypeDocumentation           ExternalReferenceType = "documentation"
	ERTypeSupport                 ExternalReferenceType = "support"
	ERTypeDistribution            ExternalReferenceType = "distribution"
	ERTypeDistributionIntake      ExternalReferenceType = "distribution-intake"
	ERTypeLicense                 ExternalReferenceType = "license"
	ERTypeBuildMeta               ExternalReferenceType = "build-meta"
	ERTypeBuildSystem             ExternalReferenceType = "build-system"
	ERTypeReleaseNotes            ExternalReferenceType = "release-notes"
	ERTypeSecurityContact         ExternalReferenceType = "security-contact"
	ERTypeModelCard               ExternalReferenceType = "model-card"
	ERTypeLog                     ExternalReferenceType = "log"
	ERTypeConfiguration           ExternalReferenceType = "configuration"
	ERTypeEvidence                ExternalReferenceType = "evidence"
	ERTypeFormulation             ExternalReferenceType = "formulation"
	ERTypeAttestation             ExternalReferenceType = "attestation"
	ERTypeThreatModel             ExternalReferenceType = "threat-model"
	ERTypeAdversaryModel          ExternalReferenceType = "adversary-model"
	ERTypeRiskAssessment          ExternalReferenceType = "risk-assessment"
	ERTypeVulnerabilityAssertion  ExternalReferenceType = "vulnerability-assertion"
	ERTypeExploitabilityStatement ExternalReferenceType = "exploitability-statement"
	ERTypePentestReport           ExternalReferenceType = "pentest-report"
	ERTypeStaticAnalysisReport    ExternalReferenceType = "static-analysis-report"
	ERTypeDynamicAnalysisReport   ExternalReferenceType = "dynamic-analysis-report"
	ERTypeRuntimeAnalysisReport   ExternalReferenceType = "runtime-analysis-report"
	ERTypeComponentAnalysisReport ExternalReferenceType = "component-analysis-report"
	ERTypeMaturityReport          ExternalReferenceType = "maturity-report"
	ERTypeCertificationReport     ExternalReferenceType = "certification-report"
	ERTypeCodifiedInfrastructure  ExternalReferenceType = "codified-infrastructure"
	ERTypeQualityMetrics          ExternalReferenceType = "quality-metrics"
	ERTypePOAM                    ExternalReferenceType = "poam"
	ERTypeOther                   ExternalReferenceType = "other"
)

var externalReferenceTypes = set(
	ERTypeVCS,
	ERTypeIssueTracker,
	ERTypeWebsite,
	ERTypeAdvisories,
	ERTypeBOM,
	ERTypeMailingList,
	ERTypeSocial,
	ERTypeChat,
	ERTypeDocumentation,
	ERTypeSupport,
	ERTypeDistribution,
	ERTypeDistributionIntake,
	ERTypeLicense,
	ERTypeBuildMeta,
	ERTypeBuildSystem,
	ERTypeReleaseNotes,
	ERTypeSecurityContact,
	ERTypeModelCard,
	ERTypeLog,
	ERTypeConfiguration,
	ERTypeEvidence,
	ERTypeFormulation,
	ERTypeAttestation,
	ERTypeThreatModel,
	ERTypeAdversaryModel,
	ERTypeRiskAssessment,
	ERTypeVulnerabilityAssertion,
	ERTypeExploitabilityStatement,
	ERTypePentestReport,
	ERTypeStaticAnalysisReport,
	ERTypeDynamicAnalysisReport,
	ERTypeRuntimeAnalysisReport,
	ERTypeComponentAnalysisReport,
	ERTypeMaturityReport,
	ERTypeCertificationReport,
	ERTypeCodifiedInfrastructure,
	ERTypeQualityMetrics,
	ERTypePOAM,
	ERTypeOther,
)

func (t ExternalReferenceType) IsDefined() bool {
	_, ok := externalReferenceTypes[t]
	return ok
}

func (t *ExternalReferenceType) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, t, ExternalReferenceType.IsDefined, "external reference type")
}

type PatchType string

const (
	PatchUnofficial PatchType = "unofficial"
	PatchMonkey     PatchType = "monkey"
	PatchBackport   PatchType = "backport"
	PatchCherryPick PatchType = "cherry-pick"
)

var patchTypes = set(
	PatchUnofficial,
	PatchMonkey,
	PatchBackport,
	PatchCherryPick,
)

func (t PatchType) IsDefined() bool {
	_, ok := patchTypes[t]
	return ok
}

func (t *PatchType) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, t, PatchType.IsDefined, "patch type")
}

type IssueType string

const (
	IssueDefect      IssueType = "defect"
	IssueEnhancement IssueType = "enhancement"
	IssueSecurity    IssueType = "security"
)

var issueTypes = set(
	IssueDefect,
	IssueEnhancement,
	IssueSecurity,
)

func (t IssueType) IsDefined() bool {
	_, ok := issueTypes[t]
	return ok
}

func (t *IssueType) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, t, IssueType.IsDefined, "issue type")
}

type DataFlow string

const (
	DataFlowInbound       DataFlow = "inbound"
	DataFlowOutbound      DataFlow = "outbound"
	DataFlowBiDirectional DataFlow = "bi-directional"
	DataFlowUnknown       DataFlow = "unknown"
)

var dataFlows = set(
	DataFlowInbound,
	DataFlowOutbound,
	DataFlowBiDirectional,
	DataFlowUnknown,
)

func (f DataFlow) IsDefined() bool {
	_, ok := dataFlows[f]
	return ok
}

func (f *DataFlow) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, f, DataFlow.IsDefined, "data flow")
}

type Aggregate string

const (
	AggregateComplete                            Aggregate = "complete"
	AggregateIncomplete                          Aggregate = "incomplete"
	AggregateIncompleteFirstPartyOnly            Aggregate = "incomplete_first_party_only"
	AggregateIncompleteFirstPartyProprietaryOnly Aggregate = "incomplete_first_party_proprietary_only"
	AggregateIncompleteFirstPartyOpensourceOnly  Aggregate = "incomplete_first_party_opensource_only"
	AggregateIncompleteThirdPartyOnly            Aggregate = "incomplete_third_party_only"
	AggregateIncompleteThirdPartyProprietaryOnly Aggregate = "incomplete_third_party_proprietary_only"
	AggregateIncompleteThirdPartyOpensourceOnly  Aggregate = "incomplete_third_party_opensource_only"
	AggregateUnknown                             Aggregate = "unknown"
	AggregateNotSpecified                        Aggregate = "not_specified"
)

var aggregates = set(
	AggregateComplete,
	AggregateIncomplete,
	AggregateIncompleteFirstPartyOnly,
	AggregateIncompleteFirstPartyProprietaryOnly,
	AggregateIncompleteFirstPartyOpensourceOnly,
	AggregateIncompleteThirdPartyOnly,
	AggregateIncompleteThirdPartyProprietaryOnly,
	AggregateIncompleteThirdPartyOpensourceOnly,
	AggregateUnknown,
	AggregateNotSpecified,
)

func (a Aggregate) IsDefined() bool {
	_, ok := aggregates[a]
	return ok
}

func (a *Aggregate) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, a, Aggregate.IsDefined, "aggregate")
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
	SeverityNone     Severity = "none"
	SeverityUnknown  Severity = "unknown"
)

var severities = set(
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
	SeverityNone,
	SeverityUnknown,
)

func (s Severity) IsDefined() bool {
	_, ok := severities[s]
	return ok
}

func (s *Severity) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, s, Severity.IsDefined, "severity")
}

type ScoreMethod string

const (
	ScoreMethodCVSSv2  ScoreMethod = "CVSSv2"
	ScoreMethodCVSSv3  ScoreMethod = "CVSSv3"
	ScoreMethodCVSSv31 ScoreMethod = "CVSSv31"
	ScoreMethodCVSSv4  ScoreMethod = "CVSSv4"
	ScoreMethodOWASP   ScoreMethod = "OWASP"
	ScoreMethodSSVC    ScoreMethod = "SSVC"
	ScoreMethodOther   ScoreMethod = "other"
)

var scoreMethods = set(
	ScoreMethodCVSSv2,
	ScoreMethodCVSSv3,
	ScoreMethodCVSSv31,
	ScoreMethodCVSSv4,
	ScoreMethodOWASP,
	ScoreMethodSSVC,
	ScoreMethodOther,
)

func (m ScoreMethod) IsDefined() bool {
	_, ok := scoreMethods[m]
	return ok
}

func (m *ScoreMethod) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, m, ScoreMethod.IsDefined, "score method")
}

type ImpactAnalysisState string

const (
	StateResolved             ImpactAnalysisState = "resolved"
	StateResolvedWithPedigree ImpactAnalysisState = "resolved_with_pedigree"
	StateExploitable          ImpactAnalysisState = "exploitable"
	StateInTriage             ImpactAnalysisState = "in_triage"
	StateFalsePositive        ImpactAnalysisState = "false_positive"
	StateNotAffected          ImpactAnalysisState = "not_affected"
)

var impactStates = set(
	StateResolved,
	StateResolvedWithPedigree,
	StateExploitable,
	StateInTriage,
	StateFalsePositive,
	StateNotAffected,
)

func (s ImpactAnalysisState) IsDefined() bool {
	_, ok := impactStates[s]
	return ok
}

func (s *ImpactAnalysisState) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, s, ImpactAnalysisState.IsDefined, "impact analysis state")
}

type ImpactAnalysisJustification string

const (
	JustificationCodeNotPresent               ImpactAnalysisJustification = "code_not_present"
	JustificationCodeNotReachable             ImpactAnalysisJustification = "code_not_reachable"
	JustificationRequiresConfiguration        ImpactAnalysisJustification = "requires_configuration"
	JustificationRequiresDependency           ImpactAnalysisJustification = "requires_dependency"
	JustificationRequiresEnvironment          ImpactAnalysisJustification = "requires_environment"
	JustificationProtectedByCompiler          ImpactAnalysisJustification = "protected_by_compiler"
	JustificationProtectedAtRuntime           ImpactAnalysisJustification = "protected_at_runtime"
	JustificationProtectedAtPerimeter         ImpactAnalysisJustification = "protected_at_perimeter"
	JustificationProtectedByMitigatingControl ImpactAnalysisJustification = "protected_by_mitigating_control"
)

var impactJustifications = set(
	JustificationCodeNotPresent,
	JustificationCodeNotReachable,
	JustificationRequiresConfiguration,
	JustificationRequiresDependency,
	JustificationRequiresEnvironment,
	JustificationProtectedByCompiler,
	JustificationProtectedAtRuntime,
	JustificationProtectedAtPerimeter,
	JustificationProtectedByMitigatingControl,
)

func (j ImpactAnalysisJustification) IsDefined() bool {
	_, ok := impactJustifications[j]
	return ok
}

func (j *ImpactAnalysisJustification) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, j, ImpactAnalysisJustification.IsDefined, "impact analysis justification")
}

type ImpactAnalysisResponse string

const (
	ResponseCanNotFix           ImpactAnalysisResponse = "can_not_fix"
	ResponseWillNotFix          ImpactAnalysisResponse = "will_not_fix"
	ResponseUpdate              ImpactAnalysisResponse = "update"
	ResponseRollback            ImpactAnalysisResponse = "rollback"
	ResponseWorkaroundAvailable ImpactAnalysisResponse = "workaround_available"
)

var impactResponses = set(
	ResponseCanNotFix,
	ResponseWillNotFix,
	ResponseUpdate,
	ResponseRollback,
	ResponseWorkaroundAvailable,
)

func (r ImpactAnalysisResponse) IsDefined() bool {
	_, ok := impactResponses[r]
	return ok
}

func (r *ImpactAnalysisResponse) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, r, ImpactAnalysisResponse.IsDefined, "impact analysis response")
}

type AffectedStatus string

const (
	AffectedStatusAffected   AffectedStatus = "affected"
	AffectedStatusUnaffected AffectedStatus = "unaffected"
	AffectedStatusUnknown    AffectedStatus = "unknown"
)

var affectedStatuses = set(
	AffectedStatusAffected,
	AffectedStatusUnaffected,
	AffectedStatusUnknown,
)

func (s AffectedStatus) IsDefined() bool {
	_, ok := affectedStatuses[s]
	return ok
}

func (s *AffectedStatus) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, s, AffectedStatus.IsDefined, "affected status")
}

type LifecyclePhase string

const (
	PhaseDesign       LifecyclePhase = "design"
	PhasePreBuild     LifecyclePhase = "pre-build"
	PhaseBuild        LifecyclePhase = "build"
	PhasePostBuild    LifecyclePhase = "post-build"
	PhaseOperations   LifecyclePhase = "operations"
	PhaseDiscovery    LifecyclePhase = "discovery"
	PhaseDecommission LifecyclePhase = "decommission"
)

var lifecyclePhases = set(
	PhaseDesign,
	PhasePreBuild,
	PhaseBuild,
	PhasePostBuild,
	PhaseOperations,
	PhaseDiscovery,
	PhaseDecommission,
)

func (p LifecyclePhase) IsDefined() bool {
	_, ok := lifecyclePhases[p]
	return ok
}

func (p *LifecyclePhase) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, p, LifecyclePhase.IsDefined, "lifecycle phase")
}
