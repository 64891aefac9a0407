package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agencyops/crmcore/internal/core"
	"github.com/agencyops/crmcore/internal/core/model"
)

func (s *Server) ListContacts(c *gin.Context) {
	contacts, err := s.CRM.ListContacts(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list contacts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func (s *Server) CreateContact(c *gin.Context) {
	var contact model.Contact
	if err := c.ShouldBindJSON(&contact); err != nil || contact.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact: name is required"})
		return
	}
	contact.UUID = ""

	saved, err := s.CRM.SaveContact(c.Request.Context(), contact)
	if err != nil {
		fail(c, err, "Failed to save contact")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) GetContact(c *gin.Context) {
	contact, err := s.CRM.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to fetch contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) UpdateContact(c *gin.Context) {
	var contact model.Contact
	if err := c.ShouldBindJSON(&contact); err != nil || contact.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact: name is required"})
		return
	}
	contact.UUID = c.Param("id")

	if _, err := s.CRM.GetContact(c.Request.Context(), contact.UUID); err != nil {
		fail(c, err, "Failed to fetch contact")
		return
	}

	saved, err := s.CRM.SaveContact(c.Request.Context(), contact)
	if err != nil {
		fail(c, err, "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) DeleteContact(c *gin.Context) {
	if err := s.CRM.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ListCompanies(c *gin.Context) {
	companies, err := s.CRM.ListCompanies(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (s *Server) CreateCompany(c *gin.Context) {
	var company model.Company
	if err := c.ShouldBindJSON(&company); err != nil || company.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company: name is required"})
		return
	}
	company.UUID = ""

	saved, err := s.CRM.SaveCompany(c.Request.Context(), company)
	if err != nil {
		fail(c, err, "Failed to save company")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) GetCompany(c *gin.Context) {
	company, err := s.CRM.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to fetch company")
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) UpdateCompany(c *gin.Context) {
	var company model.Company
	if err := c.ShouldBindJSON(&company); err != nil || company.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company: name is required"})
		return
	}
	company.UUID = c.Param("id")

	if _, err := s.CRM.GetCompany(c.Request.Context(), company.UUID); err != nil {
		fail(c, err, "Failed to fetch company")
		return
	}

	saved, err := s.CRM.SaveCompany(c.Request.Context(), company)
	if err != nil {
		fail(c, err, "Failed to update company")
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) DeleteCompany(c *gin.Context) {
	if err := s.CRM.DeleteCompany(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete company")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ListLeads(c *gin.Context) {
	leads, err := s.CRM.ListLeads(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list leads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

func (s *Server) CreateLead(c *gin.Context) {
	var lead model.Lead
	if err := c.ShouldBindJSON(&lead); err != nil || lead.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead: title is required"})
		return
	}
	lead.UUID = ""

	saved, err := s.CRM.SaveLead(c.Request.Context(), lead)
	if err != nil {
		fail(c, err, "Failed to save lead")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) GetLead(c *gin.Context) {
	lead, err := s.CRM.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to fetch lead")
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (s *Server) DeleteLead(c *gin.Context) {
	if err := s.CRM.DeleteLead(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete lead")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type SetStageRequest struct {
	Stage string `json:"stage"`
}

func (s *Server) SetLeadStage(c *gin.Context) {
	var req SetStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := s.CRM.SetLeadStage(c.Request.Context(), c.Param("id"), req.Stage); err != nil {
		fail(c, err, "Failed to set lead stage")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "stage": req.Stage})
}

type IntakeRequest struct {
	Message string `json:"message"`
}

func (s *Server) IntakeLead(c *gin.Context) {
	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: message is required"})
		return
	}

	lead, err := s.CRM.IntakeLead(c.Request.Context(), req.Message)
	if err != nil {
		fail(c, err, "Failed to process intake message")
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (s *Server) DraftFollowUp(c *gin.Context) {
	draft, err := s.CRM.DraftFollowUp(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to draft follow-up email")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (s *Server) QualityReport(c *gin.Context) {
	report, err := s.CRM.QualityReport(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to build quality report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) CleanupStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": s.CRM.Executor.Status()})
}

// MergeRequest carries the reviewed group snapshot. Deletes act on exactly
// these ids; detection is not re-run server-side before deleting.
type MergeRequest struct {
	Kind         string   `json:"kind"` // "contact" or "company"
	ItemIDs      []string `json:"item_ids"`
	KeepID       string   `json:"keep_id"`
	MatchedField string   `json:"matched_field"`
}

func (s *Server) MergeDuplicates(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ItemIDs) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: at least two item ids required"})
		return
	}

	group := model.DuplicateGroup{MatchedField: model.MatchField(req.MatchedField)}
	for _, id := range req.ItemIDs {
		switch model.Kind(req.Kind) {
		case model.KindContact:
			group.Items = append(group.Items, model.Contact{UUID: id})
		case model.KindCompany:
			group.Items = append(group.Items, model.Company{UUID: id})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: kind must be contact or company"})
			return
		}
	}

	if err := s.CRM.MergeDuplicates(c.Request.Context(), group, req.KeepID); err != nil {
		fail(c, err, "Merge failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "merged", "kept": req.KeepID})
}

func (s *Server) AutoCleanup(c *gin.Context) {
	report, err := s.CRM.AutoCleanup(c.Request.Context())
	if err != nil {
		fail(c, err, "Auto-cleanup failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

type SearchRequest struct {
	Query string `json:"query"`
}

func (s *Server) SearchContacts(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: query is required"})
		return
	}

	contacts, err := s.CRM.SearchContacts(c.Request.Context(), req.Query)
	if err != nil {
		fail(c, err, "Search failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": contacts})
}

func fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, core.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI features are not configured"})
	default:
		log.Printf("%s: %v", msg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
