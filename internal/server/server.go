package server

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/agencyops/crmcore/internal/config"
	"github.com/agencyops/crmcore/internal/core"
	"github.com/agencyops/crmcore/internal/driver"
	"github.com/agencyops/crmcore/internal/llm"
)

type Server struct {
	CRM *core.CRM
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Starting from env only", cfgPath, err)
		cfg = &config.Config{}
	}
	cfg.ApplyEnv()

	if cfg.Store.URI == "" {
		cfg.Store.URI = "bolt://localhost:7687"
	}

	d, err := driver.NewMemgraphDriver(cfg.Store.URI, cfg.Store.User, cfg.Store.Password)
	if err != nil {
		log.Fatalf("Failed to connect to graph store: %v", err)
	}

	llmClient, embedderClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	if llmClient == nil {
		log.Println("No LLM provider configured; AI features disabled")
	}

	crm := core.NewCRM(d, llmClient, embedderClient, cfg)

	if err := crm.BuildIndices(context.Background()); err != nil {
		log.Printf("Warning: failed to build indices: %v", err)
	}

	return &Server{CRM: crm}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/contacts", s.ListContacts)
	r.POST("/contacts", s.CreateContact)
	r.GET("/contacts/:id", s.GetContact)
	r.PUT("/contacts/:id", s.UpdateContact)
	r.DELETE("/contacts/:id", s.DeleteContact)

	r.GET("/companies", s.ListCompanies)
	r.POST("/companies", s.CreateCompany)
	r.GET("/companies/:id", s.GetCompany)
	r.PUT("/companies/:id", s.UpdateCompany)
	r.DELETE("/companies/:id", s.DeleteCompany)

	r.GET("/leads", s.ListLeads)
	r.POST("/leads", s.CreateLead)
	r.GET("/leads/:id", s.GetLead)
	r.DELETE("/leads/:id", s.DeleteLead)
	r.POST("/leads/:id/stage", s.SetLeadStage)
	r.POST("/leads/:id/email", s.DraftFollowUp)

	r.POST("/intake", s.IntakeLead)

	r.GET("/quality/report", s.QualityReport)
	r.GET("/quality/status", s.CleanupStatus)
	r.POST("/quality/merge", s.MergeDuplicates)
	r.POST("/quality/cleanup", s.AutoCleanup)

	r.POST("/search", s.SearchContacts)

	return r
}
