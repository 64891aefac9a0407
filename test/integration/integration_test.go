//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencyops/crmcore/internal/config"
	"github.com/agencyops/crmcore/internal/core"
	"github.com/agencyops/crmcore/internal/core/model"
	"github.com/agencyops/crmcore/internal/driver"
	"github.com/agencyops/crmcore/internal/llm"
)

// Full round trip against a live graph store: create duplicate contacts,
// detect, auto-clean, verify. Requires STORE_URI; AI features are exercised
// only when an LLM provider is configured.
func TestQualityFlow(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("STORE_URI")
	if uri == "" {
		t.Skip("Skipping integration test: STORE_URI not set")
	}

	d, err := driver.NewMemgraphDriver(uri, os.Getenv("STORE_USER"), os.Getenv("STORE_PASSWORD"))
	require.NoError(t, err)
	defer d.Close(context.Background())

	ctx := context.Background()

	llmCfg := config.LLMConfig{
		Provider: os.Getenv("LLM_PROVIDER"),
		Model:    os.Getenv("LLM_MODEL"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
		APIKey:   os.Getenv("LLM_API_KEY"),
	}
	llmClient, embedder, err := llm.NewClient(ctx, llmCfg)
	require.NoError(t, err)

	crm := core.NewCRM(d, llmClient, embedder, &config.Config{})
	require.NoError(t, crm.BuildIndices(ctx))

	// Two contacts that differ only in email casing, plus a clean one.
	c1, err := crm.SaveContact(ctx, model.Contact{Name: "Int Test A", Email: "inttest@example.com"})
	require.NoError(t, err)
	c2, err := crm.SaveContact(ctx, model.Contact{Name: "Int Test A bis", Email: "INTTEST@example.com "})
	require.NoError(t, err)
	c3, err := crm.SaveContact(ctx, model.Contact{Name: "Int Test Clean", Email: "clean@example.com"})
	require.NoError(t, err)

	defer func() {
		_ = crm.DeleteContact(ctx, c1.UUID)
		_ = crm.DeleteContact(ctx, c2.UUID)
		_ = crm.DeleteContact(ctx, c3.UUID)
	}()

	report, err := crm.QualityReport(ctx)
	require.NoError(t, err)

	var group *model.DuplicateGroup
	for i := range report.ContactGroups {
		for _, item := range report.ContactGroups[i].Items {
			if item.RecordID() == c1.UUID {
				group = &report.ContactGroups[i]
			}
		}
	}
	require.NotNil(t, group, "expected a duplicate group containing the test contacts")
	assert.Equal(t, model.MatchEmail, group.MatchedField)
	assert.Len(t, group.Items, 2)

	// Interactive merge keeping the first record.
	require.NoError(t, crm.MergeDuplicates(ctx, *group, c1.UUID))

	_, err = crm.GetContact(ctx, c2.UUID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	kept, err := crm.GetContact(ctx, c1.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Int Test A", kept.Name)

	// A second delete of the merged-away record must reject.
	assert.Error(t, crm.DeleteContact(ctx, c2.UUID))
}

func TestLeadPipelineFlow(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("STORE_URI")
	if uri == "" {
		t.Skip("Skipping integration test: STORE_URI not set")
	}

	d, err := driver.NewMemgraphDriver(uri, os.Getenv("STORE_USER"), os.Getenv("STORE_PASSWORD"))
	require.NoError(t, err)
	defer d.Close(context.Background())

	ctx := context.Background()
	crm := core.NewCRM(d, nil, nil, &config.Config{})

	lead, err := crm.SaveLead(ctx, model.Lead{Title: "Integration test lead"})
	require.NoError(t, err)
	defer func() { _ = crm.DeleteLead(ctx, lead.UUID) }()

	assert.Equal(t, model.StageNew, lead.Stage)

	require.NoError(t, crm.SetLeadStage(ctx, lead.UUID, model.StageContacted))

	fetched, err := crm.GetLead(ctx, lead.UUID)
	require.NoError(t, err)
	assert.Equal(t, model.StageContacted, fetched.Stage)

	assert.Error(t, crm.SetLeadStage(ctx, lead.UUID, "limbo"))
}
