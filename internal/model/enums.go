package model

import "github.com/rotisserie/eris"

// Tier selects which sub-rubrics run and which recommendations are allowed.
type Tier string

const (
	TierFree Tier = "free"
	TierPaid Tier = "paid"
)

// ErrUnknownTier is returned when a request names a tier outside {free, paid}.
var ErrUnknownTier = eris.New("model: unknown tier")

// ParseTier maps a tier selector to a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(trimmed(s)) {
	case TierFree:
		return TierFree, nil
	case TierPaid:
		return TierPaid, nil
	}
	return "", eris.Wrapf(ErrUnknownTier, "tier %q", s)
}

// Recommendation is the final verdict.
type Recommendation string

const (
	RecommendApply       Recommendation = "APPLY"
	RecommendConditional Recommendation = "CONDITIONAL"
	RecommendPass        Recommendation = "PASS"
)

// Valid reports whether r is one of the three allowed verdicts.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendApply, RecommendConditional, RecommendPass:
		return true
	}
	return false
}

// Confidence tags how much a sub-score can be trusted.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceUnknown Confidence = "unknown"
)

// Weight maps a confidence tag onto [0,1] for the confidence index.
func (c Confidence) Weight() float64 {
	switch c {
	case ConfidenceHigh:
		return 1.0
	case ConfidenceMedium:
		return 0.7
	case ConfidenceLow:
		return 0.4
	default:
		return 0.1
	}
}

// Source records where a sub-score came from.
type Source string

const (
	SourceLLM       Source = "llm"
	SourceAdmin     Source = "admin"
	SourceOfficial  Source = "official"
	SourceEstimated Source = "estimated"
	SourceRuleBased Source = "rule_based"
)

// BucketState is an explainable confidence indicator for one narrow aspect
// of a grant's disclosed information.
type BucketState string

const (
	BucketKnown   BucketState = "known"
	BucketPartial BucketState = "partial"
	BucketUnknown BucketState = "unknown"
)

// BucketName identifies one of the five readiness buckets.
type BucketName string

const (
	BucketTimelineClarity       BucketName = "timeline_clarity"
	BucketWinnerSignal          BucketName = "winner_signal"
	BucketMissionSpecificity    BucketName = "mission_specificity"
	BucketApplicationBurden     BucketName = "application_burden"
	BucketAwardStructureClarity BucketName = "award_structure_clarity"
)

// BucketNames lists the readiness buckets in display order.
var BucketNames = []BucketName{
	BucketTimelineClarity,
	BucketWinnerSignal,
	BucketMissionSpecificity,
	BucketApplicationBurden,
	BucketAwardStructureClarity,
}

// DecisionReadiness labels.
const (
	ReadinessReady         = "Ready for Evaluation"
	ReadinessPartial       = "Partial — Missing Signals"
	ReadinessLowConfidence = "Low Confidence Grant"
)

// StatusOfKnowledge labels.
const (
	KnowledgeWellSpecified     = "Well-Specified"
	KnowledgePartiallyOpaque   = "Partially Opaque"
	KnowledgeStructurallyVague = "Structurally Vague"
)

// Scope is the inferred geographic reach of a grant.
type Scope string

const (
	ScopeLocal         Scope = "Local"
	ScopeNational      Scope = "National"
	ScopeInternational Scope = "International"
	ScopeUnclear       Scope = "Unclear"
)

// Dimension keys used in score and reasoning maps.
const (
	DimClarity            = "clarity"
	DimAccessBarrier      = "access_barrier"
	DimTimeline           = "timeline"
	DimAwardStructure     = "award_structure"
	DimCompetition        = "competition"
	DimMissionAlignment   = "mission_alignment"
	DimProfileMatch       = "profile_match"
	DimFundingFit         = "funding_fit"
	DimEffortReward       = "effort_reward"
	DimSuccessProbability = "success_probability"
	DimComposite          = "composite"
	DimRecommendation     = "recommendation"
)

// ReasonInsufficientData marks a null score caused by missing data.
const ReasonInsufficientData = "INSUFFICIENT_DATA"
