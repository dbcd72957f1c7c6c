package model

// Request is one engine invocation. Project is required for the paid tier.
type Request struct {
	Tier    Tier            `json:"tier" yaml:"tier"`
	Grant   GrantRecord     `json:"grant" yaml:"grant"`
	Project *ProjectProfile `json:"project,omitempty" yaml:"project,omitempty"`
}

// Normalize resolves the effective tier. An unknown tier is an error; a paid
// request without a project degrades to the free tier and reports it.
func (r Request) Normalize() (Request, bool, error) {
	tier, err := ParseTier(string(r.Tier))
	if err != nil {
		return r, false, err
	}
	r.Tier = tier
	if tier == TierPaid && r.Project == nil {
		r.Tier = TierFree
		return r, true, nil
	}
	return r, false, nil
}
