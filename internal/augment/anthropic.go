package augment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/grant-verdict/internal/config"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/resilience"
	"github.com/sells-group/grant-verdict/internal/textutil"
	"github.com/sells-group/grant-verdict/pkg/anthropic"
)

const (
	proposeSystem = "You review grant opportunities for applicants. You refine an existing rubric-based verdict. " +
		"Reply with a single JSON object and nothing else. Scores are integers 0-10. " +
		"recommendation is one of APPLY, CONDITIONAL, PASS. Never invent facts the grant does not state; " +
		"leave a score out when the data is missing."
	explainSystem = "You explain in two or three plain sentences why a project does not fit a grant's mission. " +
		"Quote the grant's focus. Do not give a verdict. Plain text only."

	maxExplanationLen = 600
)

// Anthropic implements Augmenter and Explainer over the Anthropic Messages
// API. Calls run under a resilience.Guard shared across evaluations.
type Anthropic struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	guard     *resilience.Guard
}

// NewAnthropic creates an Anthropic strategy. A nil guard calls the client
// directly.
func NewAnthropic(client anthropic.Client, cfg config.AnthropicConfig, guard *resilience.Guard) *Anthropic {
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Anthropic{client: client, model: cfg.Model, maxTokens: maxTokens, guard: guard}
}

// Propose asks the model to refine the rule-based verdict.
func (a *Anthropic) Propose(ctx context.Context, in Context) (*model.Proposal, error) {
	if a == nil || a.client == nil {
		return nil, ErrDisabled
	}
	prompt, err := proposalPrompt(in)
	if err != nil {
		return nil, err
	}

	text, err := a.complete(ctx, "propose", proposeSystem, prompt)
	if err != nil {
		return nil, err
	}
	p, err := ParseProposal(text)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ExplainGap asks the model for a short mission-gap explanation. The text
// is stripped of markup and truncated.
func (a *Anthropic) ExplainGap(ctx context.Context, in GapInput) (string, error) {
	if a == nil || a.client == nil {
		return "", ErrDisabled
	}
	prompt := fmt.Sprintf("Mission alignment score: %d/10\n\nGrant mission:\n%s\n\nProject:\n%s",
		in.Score, textutil.Truncate(in.Mission.GrantText, 2000), textutil.Truncate(in.Mission.ProjectText, 2000))

	text, err := a.complete(ctx, "explain_gap", explainSystem, prompt)
	if err != nil {
		return "", err
	}
	text = textutil.Truncate(textutil.Sanitize(text), maxExplanationLen)
	if text == "" {
		return "", eris.New("augment: empty explanation")
	}
	return text, nil
}

func (a *Anthropic) complete(ctx context.Context, purpose, system, prompt string) (string, error) {
	temp := 0.0
	req := anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		System:      system,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	}

	resp, err := resilience.Call(ctx, a.guard, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		resp, err := a.client.CreateMessage(ctx, req)
		if err != nil {
			if code := anthropic.StatusCode(err); resilience.IsTransientStatus(code) {
				return nil, resilience.NewTransientError(err, code)
			}
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return "", eris.Wrapf(err, "augment: %s", purpose)
	}

	resp.Usage.LogCost(a.model, purpose)
	zap.L().Debug("augment: response received",
		zap.String("purpose", purpose),
		zap.String("stop_reason", resp.StopReason),
	)
	return resp.Text(), nil
}

// promptGrant is the grant view sent to the model.
type promptGrant struct {
	Name                    string   `json:"name"`
	Mission                 string   `json:"mission,omitempty"`
	Description             string   `json:"description,omitempty"`
	Deadline                string   `json:"deadline,omitempty"`
	DecisionDate            string   `json:"decision_date,omitempty"`
	AwardAmount             string   `json:"award_amount,omitempty"`
	AwardStructure          string   `json:"award_structure,omitempty"`
	Eligibility             string   `json:"eligibility,omitempty"`
	PreferredApplicants     string   `json:"preferred_applicants,omitempty"`
	ApplicationRequirements []string `json:"application_requirements,omitempty"`
	Restrictions            []string `json:"restrictions,omitempty"`
	RecipientCount          int      `json:"recipient_count"`
}

type promptScore struct {
	Score      *int   `json:"score"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason,omitempty"`
}

func proposalPrompt(in Context) (string, error) {
	g := in.Grant
	grant := promptGrant{
		Name:                    textutil.PlainText(g.Name),
		Mission:                 textutil.Truncate(textutil.PlainText(g.Mission), 1500),
		Description:             textutil.Truncate(textutil.PlainText(g.Description), 1500),
		Deadline:                textutil.PlainText(g.Deadline),
		DecisionDate:            textutil.PlainText(g.DecisionDate),
		AwardAmount:             textutil.PlainText(g.AwardAmount),
		AwardStructure:          textutil.PlainText(g.AwardStructure),
		Eligibility:             textutil.Truncate(textutil.PlainText(g.Eligibility), 800),
		PreferredApplicants:     textutil.Truncate(textutil.PlainText(g.PreferredApplicants), 800),
		ApplicationRequirements: g.ApplicationRequirements,
		Restrictions:            g.Restrictions,
		RecipientCount:          len(g.Recipients()),
	}
	grantJSON, err := json.Marshal(grant)
	if err != nil {
		return "", eris.Wrap(err, "augment: encode grant")
	}

	scores := make(map[string]promptScore, len(in.Verdict.Scores))
	for d, r := range in.Verdict.Scores {
		scores[d] = promptScore{Score: r.Score, Confidence: string(r.Confidence), Reason: r.Reason}
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return "", eris.Wrap(err, "augment: encode scores")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tier: %s\n\nGrant:\n%s\n\n", in.Tier, grantJSON)
	if in.Tier == model.TierPaid && in.Project != nil {
		p := in.Project
		fmt.Fprintf(&b, "Project:\n%s\nStage: %s\nOrganisation: %s (%s)\n\n",
			textutil.Truncate(textutil.PlainText(textutil.Join(p.Name, p.Description)), 1500),
			p.Stage, p.OrganizationType, p.OrganizationCountry)
	}
	fmt.Fprintf(&b, "Rubric scores:\n%s\n\nRubric composite: %d/10\nRubric recommendation: %s\n\n",
		scoresJSON, in.Verdict.CompositeScore, in.Verdict.Recommendation)
	b.WriteString("Return JSON with keys scores, recommendation, reasoning, key_insights, red_flags, confidence_notes, actionable_next_step")
	if in.Tier == model.TierPaid {
		b.WriteString(", success_probability_range, decision_gates, pattern_knowledge, opportunity_cost")
	}
	b.WriteString(".")
	return b.String(), nil
}
