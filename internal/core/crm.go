package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/agencyops/crmcore/internal/config"
	"github.com/agencyops/crmcore/internal/core/cleanup"
	"github.com/agencyops/crmcore/internal/core/dedupe"
	"github.com/agencyops/crmcore/internal/core/emailgen"
	"github.com/agencyops/crmcore/internal/core/intake"
	"github.com/agencyops/crmcore/internal/core/model"
	"github.com/agencyops/crmcore/internal/core/quality"
	"github.com/agencyops/crmcore/internal/driver"
	"github.com/agencyops/crmcore/internal/llm"
)

// ErrNotFound is returned for operations on a record that does not exist,
// including deletes of already-deleted records.
var ErrNotFound = errors.New("record not found")

// ErrAIUnavailable is returned by AI-backed operations when no LLM is
// configured. The rest of the API works without one.
var ErrAIUnavailable = errors.New("no LLM provider configured")

// CRM orchestrates the store, the data-quality subsystem and the AI-backed
// features behind the HTTP API.
type CRM struct {
	Driver   driver.GraphDriver
	LLM      llm.LLMClient
	Embedder llm.EmbedderClient
	Reranker llm.RerankerClient

	Detector *dedupe.Detector
	Executor *cleanup.Executor
	Intake   *intake.Parser
	Drafter  *emailgen.Drafter

	// UUIDGenerator is swappable for deterministic tests.
	UUIDGenerator func() string
}

func NewCRM(d driver.GraphDriver, llmClient llm.LLMClient, embedderClient llm.EmbedderClient, cfg *config.Config) *CRM {
	c := &CRM{
		Driver:        d,
		LLM:           llmClient,
		Embedder:      embedderClient,
		Detector:      dedupe.NewDetector(),
		UUIDGenerator: func() string { return uuid.New().String() },
	}
	c.Executor = cleanup.NewExecutor(c)

	if llmClient != nil {
		c.Reranker = llm.NewSimpleLLMReranker(llmClient)
		c.Intake = intake.NewParser(llmClient, cfg.Intake)
		c.Drafter = emailgen.NewDrafter(llmClient, cfg.Email)
	}

	return c
}

func (c *CRM) BuildIndices(ctx context.Context) error {
	return c.Driver.BuildIndices(ctx)
}

// --- Contacts ---

func (c *CRM) SaveContact(ctx context.Context, contact model.Contact) (*model.Contact, error) {
	now := time.Now().UTC()
	if contact.UUID == "" {
		contact.UUID = c.UUIDGenerator()
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	params := map[string]interface{}{
		"uuid":           contact.UUID,
		"name":           contact.Name,
		"email":          contact.Email,
		"phone":          contact.Phone,
		"company_uuid":   contact.CompanyUUID,
		"role":           contact.Role,
		"contact_type":   contact.ContactType,
		"avatar_url":     contact.AvatarURL,
		"name_embedding": c.embed(ctx, contact.Name),
		"created_at":     contact.CreatedAt.Format(time.RFC3339),
		"updated_at":     contact.UpdatedAt.Format(time.RFC3339),
	}

	if _, err := c.Driver.ExecuteQuery(ctx, driver.SaveContactQuery, params); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	if contact.CompanyUUID != "" {
		linkParams := map[string]interface{}{
			"contact_uuid": contact.UUID,
			"company_uuid": contact.CompanyUUID,
			"created_at":   now.Format(time.RFC3339),
		}
		if _, err := c.Driver.ExecuteQuery(ctx, driver.LinkContactToCompanyQuery, linkParams); err != nil {
			log.Printf("Failed to link contact %s to company %s: %v", contact.UUID, contact.CompanyUUID, err)
		}
	}

	return &contact, nil
}

// ListContacts returns the complete, unpaginated contact collection, as the
// duplicate detector requires.
func (c *CRM) ListContacts(ctx context.Context) ([]model.Contact, error) {
	result, err := c.Driver.ExecuteQuery(ctx, driver.ListContactsQuery, nil)
	if err != nil {
		return nil, err
	}

	contacts := make([]model.Contact, 0, len(result.Records))
	for _, rec := range result.Records {
		contacts = append(contacts, contactFromRecord(rec))
	}
	return contacts, nil
}

func (c *CRM) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	result, err := c.Driver.ExecuteQuery(ctx, driver.GetContactQuery, map[string]interface{}{"uuid": id})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, ErrNotFound
	}
	contact := contactFromRecord(result.Records[0])
	return &contact, nil
}

func (c *CRM) DeleteContact(ctx context.Context, id string) error {
	return c.deleteByQuery(ctx, driver.DeleteContactQuery, id)
}

// --- Companies ---

func (c *CRM) SaveCompany(ctx context.Context, company model.Company) (*model.Company, error) {
	now := time.Now().UTC()
	if company.UUID == "" {
		company.UUID = c.UUIDGenerator()
		company.CreatedAt = now
	}
	company.UpdatedAt = now

	// Specialty codes only make sense on a technical design office.
	if company.Industry != model.IndustryBET {
		company.BETSpecialties = nil
	}

	params := map[string]interface{}{
		"uuid":            company.UUID,
		"name":            company.Name,
		"email":           company.Email,
		"phone":           company.Phone,
		"address":         company.Address,
		"city":            company.City,
		"industry":        company.Industry,
		"tax_id":          company.TaxID,
		"bet_specialties": company.BETSpecialties,
		"name_embedding":  c.embed(ctx, company.Name),
		"created_at":      company.CreatedAt.Format(time.RFC3339),
		"updated_at":      company.UpdatedAt.Format(time.RFC3339),
	}

	if _, err := c.Driver.ExecuteQuery(ctx, driver.SaveCompanyQuery, params); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	return &company, nil
}

func (c *CRM) ListCompanies(ctx context.Context) ([]model.Company, error) {
	result, err := c.Driver.ExecuteQuery(ctx, driver.ListCompaniesQuery, nil)
	if err != nil {
		return nil, err
	}

	companies := make([]model.Company, 0, len(result.Records))
	for _, rec := range result.Records {
		companies = append(companies, companyFromRecord(rec))
	}
	return companies, nil
}

func (c *CRM) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	result, err := c.Driver.ExecuteQuery(ctx, driver.GetCompanyQuery, map[string]interface{}{"uuid": id})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, ErrNotFound
	}
	company := companyFromRecord(result.Records[0])
	return &company, nil
}

func (c *CRM) DeleteCompany(ctx context.Context, id string) error {
	return c.deleteByQuery(ctx, driver.DeleteCompanyQuery, id)
}

// --- Leads ---

func (c *CRM) SaveLead(ctx context.Context, lead model.Lead) (*model.Lead, error) {
	now := time.Now().UTC()
	if lead.UUID == "" {
		lead.UUID = c.UUIDGenerator()
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now
	if lead.Stage == "" {
		lead.Stage = model.StageNew
	}
	if !model.ValidStage(lead.Stage) {
		return nil, fmt.Errorf("invalid pipeline stage %q", lead.Stage)
	}

	params := map[string]interface{}{
		"uuid":         lead.UUID,
		"title":        lead.Title,
		"contact_uuid": lead.ContactUUID,
		"company_uuid": lead.CompanyUUID,
		"amount":       lead.Amount,
		"stage":        lead.Stage,
		"notes":        lead.Notes,
		"created_at":   lead.CreatedAt.Format(time.RFC3339),
		"updated_at":   lead.UpdatedAt.Format(time.RFC3339),
	}

	if _, err := c.Driver.ExecuteQuery(ctx, driver.SaveLeadQuery, params); err != nil {
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}

	if lead.ContactUUID != "" {
		linkParams := map[string]interface{}{
			"lead_uuid":    lead.UUID,
			"contact_uuid": lead.ContactUUID,
			"created_at":   now.Format(time.RFC3339),
		}
		if _, err := c.Driver.ExecuteQuery(ctx, driver.LinkLeadToContactQuery, linkParams); err != nil {
			log.Printf("Failed to link lead %s to contact %s: %v", lead.UUID, lead.ContactUUID, err)
		}
	}

	return &lead, nil
}

func (c *CRM) ListLeads(ctx context.Context) ([]model.Lead, error) {
	result, err := c.Driver.ExecuteQuery(ctx, driver.ListLeadsQuery, nil)
	if err != nil {
		return nil, err
	}

	leads := make([]model.Lead, 0, len(result.Records))
	for _, rec := range result.Records {
		leads = append(leads, leadFromRecord(rec))
	}
	return leads, nil
}

func (c *CRM) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	result, err := c.Driver.ExecuteQuery(ctx, driver.GetLeadQuery, map[string]interface{}{"uuid": id})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, ErrNotFound
	}
	lead := leadFromRecord(result.Records[0])
	return &lead, nil
}

func (c *CRM) DeleteLead(ctx context.Context, id string) error {
	return c.deleteByQuery(ctx, driver.DeleteLeadQuery, id)
}

func (c *CRM) SetLeadStage(ctx context.Context, id, stage string) error {
	if !model.ValidStage(stage) {
		return fmt.Errorf("invalid pipeline stage %q", stage)
	}
	params := map[string]interface{}{
		"uuid":       id,
		"stage":      stage,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	result, err := c.Driver.ExecuteQuery(ctx, driver.SetLeadStageQuery, params)
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Data quality ---

// QualityReport runs duplicate detection over both full collections and
// derives missing-field reports and the health score. Always computed
// fresh; nothing here is persisted.
func (c *CRM) QualityReport(ctx context.Context) (*model.QualityReport, error) {
	contacts, err := c.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	companies, err := c.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}

	return BuildQualityReport(c.Detector, contacts, companies), nil
}

// MergeDuplicates deletes the non-kept members of one reviewed group,
// aborting on the first failure.
func (c *CRM) MergeDuplicates(ctx context.Context, group model.DuplicateGroup, keepID string) error {
	return c.Executor.MergeGroup(ctx, group, keepID)
}

// AutoCleanup detects duplicates across both kinds and deletes all-but-first
// of every group, continuing past individual failures. The group list is a
// snapshot; a fresh QualityReport reflects the post-cleanup state.
func (c *CRM) AutoCleanup(ctx context.Context) (*model.CleanupReport, error) {
	report, err := c.QualityReport(ctx)
	if err != nil {
		return nil, err
	}

	groups := append(append([]model.DuplicateGroup{}, report.ContactGroups...), report.CompanyGroups...)
	cleanupReport := c.Executor.AutoCleanup(ctx, groups)
	return &cleanupReport, nil
}

// --- AI features ---

// IntakeLead parses a raw inbound message into a lead, creating the contact
// record when the extraction found one.
func (c *CRM) IntakeLead(ctx context.Context, raw string) (*model.Lead, error) {
	if c.Intake == nil {
		return nil, ErrAIUnavailable
	}

	extracted, err := c.Intake.ParseLead(ctx, raw)
	if err != nil {
		return nil, err
	}

	lead := model.Lead{
		Title:  extracted.Title,
		Amount: extracted.Amount,
		Notes:  extracted.Notes,
		Stage:  model.StageNew,
	}

	if extracted.ContactName != "" {
		contact, err := c.SaveContact(ctx, model.Contact{
			Name:  extracted.ContactName,
			Email: extracted.ContactEmail,
			Phone: extracted.ContactPhone,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save intake contact: %w", err)
		}
		lead.ContactUUID = contact.UUID
	}

	return c.SaveLead(ctx, lead)
}

// DraftFollowUp generates a follow-up email for the lead, addressed to its
// linked contact when one exists. The draft is returned for review, not sent.
func (c *CRM) DraftFollowUp(ctx context.Context, leadID string) (*model.EmailDraft, error) {
	if c.Drafter == nil {
		return nil, ErrAIUnavailable
	}

	lead, err := c.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	recipient := ""
	if lead.ContactUUID != "" {
		if contact, err := c.GetContact(ctx, lead.ContactUUID); err == nil {
			recipient = contact.Name
		}
	}

	return c.Drafter.DraftFollowUp(ctx, *lead, recipient)
}

// SearchContacts matches on name or email substring and, when an LLM is
// configured, reranks the hits by relevance to the query.
func (c *CRM) SearchContacts(ctx context.Context, query string) ([]model.Contact, error) {
	result, err := c.Driver.ExecuteQuery(ctx, driver.SearchContactsQuery, map[string]interface{}{"query": query})
	if err != nil {
		return nil, err
	}

	contacts := make([]model.Contact, 0, len(result.Records))
	for _, rec := range result.Records {
		contacts = append(contacts, contactFromRecord(rec))
	}

	if c.Reranker == nil || len(contacts) < 2 {
		return contacts, nil
	}

	docs := make([]string, len(contacts))
	for i, contact := range contacts {
		docs[i] = fmt.Sprintf("%s <%s> %s", contact.Name, contact.Email, contact.Role)
	}

	indices, err := c.Reranker.Rank(ctx, query, docs)
	if err != nil || len(indices) == 0 {
		return contacts, nil
	}

	ranked := make([]model.Contact, 0, len(contacts))
	used := make(map[int]bool)
	for _, i := range indices {
		ranked = append(ranked, contacts[i])
		used[i] = true
	}
	// Hits the model forgot to rank keep their original relative order.
	for i, contact := range contacts {
		if !used[i] {
			ranked = append(ranked, contact)
		}
	}
	return ranked, nil
}

// --- helpers ---

// BuildQualityReport assembles the full report from in-memory collections.
// Exposed separately so callers with data already in hand skip the refetch.
func BuildQualityReport(detector *dedupe.Detector, contacts []model.Contact, companies []model.Company) *model.QualityReport {
	contactGroups := detector.DetectContacts(contacts)
	companyGroups := detector.DetectCompanies(companies)
	missing := quality.MissingReports(contacts, companies)

	return &model.QualityReport{
		ContactGroups:  contactGroups,
		CompanyGroups:  companyGroups,
		MissingReports: missing,
		Score:          quality.ScoreReport(contactGroups, companyGroups, missing),
	}
}

func (c *CRM) deleteByQuery(ctx context.Context, query, id string) error {
	result, err := c.Driver.ExecuteQuery(ctx, query, map[string]interface{}{"uuid": id})
	if err != nil {
		return err
	}
	if len(result.Records) > 0 {
		if v, ok := result.Records[0].Get("deleted"); ok {
			if n, ok := v.(int64); ok && n == 0 {
				return ErrNotFound
			}
		}
	}
	return nil
}

func (c *CRM) embed(ctx context.Context, text string) []float32 {
	if c.Embedder == nil || text == "" {
		return nil
	}
	vec, err := c.Embedder.Embed(ctx, text)
	if err != nil {
		return nil
	}
	return vec
}
