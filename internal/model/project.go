package model

import (
	"fmt"
	"sort"
	"strings"
)

// ProjectProfile describes the applicant's project. Required only for the
// paid tier.
type ProjectProfile struct {
	Name                string `json:"name" yaml:"name"`
	Description         string `json:"description" yaml:"description"`
	Stage               string `json:"stage" yaml:"stage"`
	FundingNeed         string `json:"funding_need" yaml:"funding_need"` // legacy free text
	OrganizationCountry string `json:"organization_country" yaml:"organization_country"`
	OrganizationType    string `json:"organization_type" yaml:"organization_type"`
	// FundingNeedAmount is expressed in minor currency units (cents).
	FundingNeedAmount   int64          `json:"funding_need_amount" yaml:"funding_need_amount"`
	FundingNeedCurrency string         `json:"funding_need_currency" yaml:"funding_need_currency"`
	HasPriorGrants      bool           `json:"has_prior_grants" yaml:"has_prior_grants"`
	ProfileMetadata     map[string]any `json:"profile_metadata,omitempty" yaml:"profile_metadata,omitempty"`
}

// Sectors returns the project's declared sectors from the metadata bag. It
// accepts a list or a comma-separated string and never fails.
func (p ProjectProfile) Sectors() []string {
	raw, ok := p.ProfileMetadata["sectors"]
	if !ok || raw == nil {
		return nil
	}

	var out []string
	switch v := raw.(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
	case string:
		out = strings.Split(v, ",")
	default:
		out = []string{fmt.Sprint(v)}
	}

	cleaned := make([]string, 0, len(out))
	for _, s := range out {
		if s = trimmed(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	sort.Strings(cleaned)
	return cleaned
}

// CareerStage returns the career stage recorded in the metadata bag.
func (p ProjectProfile) CareerStage() string {
	return p.MetadataString("career_stage")
}

// MetadataString returns a metadata value as trimmed text, or "" when absent.
func (p ProjectProfile) MetadataString(key string) string {
	if v, ok := p.ProfileMetadata[key]; ok && v != nil {
		return trimmed(fmt.Sprint(v))
	}
	return ""
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
