package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencyops/crmcore/internal/config"
	"github.com/agencyops/crmcore/internal/core/common"
	"github.com/agencyops/crmcore/internal/core/model"
	"github.com/agencyops/crmcore/internal/llm"
)

const defaultLeadPrompt = `Extract a sales lead from the following inbound message (email body or web form submission).

Message:
%s

Return a JSON object with keys:
- "title": short description of the opportunity
- "contact_name": the sender or requester name
- "contact_email": email if present, else ""
- "contact_phone": phone if present, else ""
- "company_name": company if identifiable, else ""
- "amount": estimated budget as a number, 0 if unknown
- "notes": remaining relevant details

Return only the JSON object.`

// Parser turns raw inbound text into a structured lead via the LLM.
type Parser struct {
	LLM     llm.LLMClient
	Prompts config.IntakePrompts
}

func NewParser(llmClient llm.LLMClient, prompts config.IntakePrompts) *Parser {
	return &Parser{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// ParseLead extracts a lead from the raw message. A lead with no title and
// no contact name is treated as a failed extraction.
func (p *Parser) ParseLead(ctx context.Context, raw string) (*model.ExtractedLead, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty intake message")
	}

	promptTemplate := p.Prompts.Lead
	if promptTemplate == "" {
		promptTemplate = defaultLeadPrompt
	}
	prompt := fmt.Sprintf(promptTemplate, raw)

	response, err := p.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate lead extraction: %w", err)
	}

	result, err := common.ParseJSON[model.ExtractedLead](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted lead: %w", err)
	}

	if result.Title == "" && result.ContactName == "" {
		return nil, fmt.Errorf("extraction produced no usable lead")
	}

	return &result, nil
}
