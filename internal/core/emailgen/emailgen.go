package emailgen

import (
	"context"
	"fmt"

	"github.com/agencyops/crmcore/internal/config"
	"github.com/agencyops/crmcore/internal/core/common"
	"github.com/agencyops/crmcore/internal/core/model"
	"github.com/agencyops/crmcore/internal/llm"
)

const defaultFollowUpPrompt = `Write a short, professional follow-up email for a sales lead.

Lead: %s
Pipeline stage: %s
Recipient: %s
Context notes: %s

The tone should match the stage: introductory for "contacted", concrete next
steps for "proposal", closing-oriented for "negotiation".

Return a JSON object with keys "subject" and "body". Return only the JSON object.`

// Drafter generates stage-appropriate follow-up emails for pipeline leads.
// Drafts are returned to the operator for review; nothing is sent from here.
type Drafter struct {
	LLM     llm.LLMClient
	Prompts config.EmailPrompts
}

func NewDrafter(llmClient llm.LLMClient, prompts config.EmailPrompts) *Drafter {
	return &Drafter{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

func (d *Drafter) DraftFollowUp(ctx context.Context, lead model.Lead, recipientName string) (*model.EmailDraft, error) {
	promptTemplate := d.Prompts.FollowUp
	if promptTemplate == "" {
		promptTemplate = defaultFollowUpPrompt
	}
	prompt := fmt.Sprintf(promptTemplate, lead.Title, lead.Stage, recipientName, lead.Notes)

	response, err := d.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate follow-up draft: %w", err)
	}

	result, err := common.ParseJSON[model.EmailDraft](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email draft: %w", err)
	}

	if result.Subject == "" || result.Body == "" {
		return nil, fmt.Errorf("draft is missing subject or body")
	}

	return &result, nil
}
