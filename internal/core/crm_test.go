package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"

	"github.com/agencyops/crmcore/internal/config"
	"github.com/agencyops/crmcore/internal/core/model"
	"github.com/agencyops/crmcore/internal/driver"
)

func newTestCRM(d *MockDriver, mockLLM *MockLLM) *CRM {
	var crm *CRM
	if mockLLM != nil {
		crm = NewCRM(d, mockLLM, &MockEmbedder{Vector: []float32{0.1, 0.2}}, &config.Config{})
	} else {
		crm = NewCRM(d, nil, nil, &config.Config{})
	}

	counter := 0
	crm.UUIDGenerator = func() string {
		counter++
		return fmt.Sprintf("uuid-%d", counter)
	}
	return crm
}

func TestSaveContact_GeneratesIDAndEmbedding(t *testing.T) {
	mockDriver := &MockDriver{}
	crm := newTestCRM(mockDriver, &MockLLM{})

	contact, err := crm.SaveContact(context.Background(), model.Contact{Name: "Jean Dupont", Email: "jean@x.fr"})

	assert.NoError(t, err)
	assert.Equal(t, "uuid-1", contact.UUID)
	assert.Equal(t, driver.SaveContactQuery, mockDriver.Queries[0])
	assert.Equal(t, []float32{0.1, 0.2}, mockDriver.Params[0]["name_embedding"])
}

func TestSaveContact_LinksCompany(t *testing.T) {
	mockDriver := &MockDriver{}
	crm := newTestCRM(mockDriver, nil)

	_, err := crm.SaveContact(context.Background(), model.Contact{Name: "Jean", CompanyUUID: "co-9"})

	assert.NoError(t, err)
	assert.Len(t, mockDriver.Queries, 2)
	assert.Equal(t, driver.LinkContactToCompanyQuery, mockDriver.Queries[1])
	assert.Equal(t, "co-9", mockDriver.Params[1]["company_uuid"])
}

func TestDeleteContact_NotFoundOnZeroCount(t *testing.T) {
	mockDriver := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.DeleteContactQuery: {Records: []*neo4j.Record{deletedRecord(0)}},
		},
	}
	crm := newTestCRM(mockDriver, nil)

	err := crm.DeleteContact(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQualityReport_SpecScenario(t *testing.T) {
	mockDriver := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.ListContactsQuery: {Records: []*neo4j.Record{
				contactRecord("1", "A", "a@x.com", "0102030405"),
				contactRecord("2", "A2", "A@X.com ", "0607080910"),
				contactRecord("3", "B", "", "0203040506"),
			}},
		},
	}
	crm := newTestCRM(mockDriver, nil)

	report, err := crm.QualityReport(context.Background())

	assert.NoError(t, err)
	assert.Len(t, report.ContactGroups, 1)
	assert.Equal(t, model.MatchEmail, report.ContactGroups[0].MatchedField)
	assert.Equal(t, "1", report.ContactGroups[0].Items[0].RecordID())
	assert.Equal(t, "2", report.ContactGroups[0].Items[1].RecordID())
	assert.Empty(t, report.CompanyGroups)

	// 100 - 5*2 duplicates - 3*1 contact without email
	assert.Equal(t, 87, report.Score)
}

func TestQualityReport_FetchFailure(t *testing.T) {
	mockDriver := &MockDriver{Err: fmt.Errorf("store down")}
	crm := newTestCRM(mockDriver, nil)

	_, err := crm.QualityReport(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store down")
}

func TestAutoCleanup_DeletesAllButFirst(t *testing.T) {
	mockDriver := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.ListContactsQuery: {Records: []*neo4j.Record{
				contactRecord("1", "A", "dup@x.com", ""),
				contactRecord("2", "B", "dup@x.com", ""),
				contactRecord("3", "C", "dup@x.com", ""),
			}},
		},
	}
	crm := newTestCRM(mockDriver, nil)

	report, err := crm.AutoCleanup(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, report.DeletedCount)
	assert.Empty(t, report.FailedIDs)

	var deleted []string
	for i, q := range mockDriver.Queries {
		if q == driver.DeleteContactQuery {
			deleted = append(deleted, mockDriver.Params[i]["uuid"].(string))
		}
	}
	assert.Equal(t, []string{"2", "3"}, deleted)
}

func TestAutoCleanup_ContinuesPastFailure(t *testing.T) {
	mockDriver := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.ListContactsQuery: {Records: []*neo4j.Record{
				contactRecord("1", "A", "dup@x.com", ""),
				contactRecord("2", "B", "dup@x.com", ""),
				contactRecord("3", "C", "", "0611111111"),
				contactRecord("4", "D", "", "06 11 11 11 11"),
			}},
		},
		FailUUIDs: map[string]bool{"2": true},
	}
	crm := newTestCRM(mockDriver, nil)

	report, err := crm.AutoCleanup(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.DeletedCount)
	assert.Equal(t, []string{"2"}, report.FailedIDs)
}

func TestMergeDuplicates_AbortsOnError(t *testing.T) {
	mockDriver := &MockDriver{FailUUIDs: map[string]bool{"2": true}}
	crm := newTestCRM(mockDriver, nil)

	group := model.DuplicateGroup{
		Items: []model.Record{
			model.Contact{UUID: "1", Name: "A"},
			model.Contact{UUID: "2", Name: "B"},
			model.Contact{UUID: "3", Name: "C"},
		},
		MatchedField: model.MatchEmail,
	}

	err := crm.MergeDuplicates(context.Background(), group, "1")

	assert.Error(t, err)
	// The failing delete was attempted; the third never was.
	var attempted []string
	for i, q := range mockDriver.Queries {
		if q == driver.DeleteContactQuery {
			attempted = append(attempted, mockDriver.Params[i]["uuid"].(string))
		}
	}
	assert.Equal(t, []string{"2"}, attempted)
}

func TestIntakeLead_CreatesContactAndLead(t *testing.T) {
	mockDriver := &MockDriver{}
	mockLLM := &MockLLM{Response: `{
		"title": "Extension de maison",
		"contact_name": "Luc Besson",
		"contact_email": "luc@x.fr",
		"amount": 80000,
		"notes": "urgent"
	}`}
	crm := newTestCRM(mockDriver, mockLLM)

	lead, err := crm.IntakeLead(context.Background(), "Bonjour, je souhaite agrandir ma maison...")

	assert.NoError(t, err)
	assert.Equal(t, "Extension de maison", lead.Title)
	assert.Equal(t, model.StageNew, lead.Stage)
	assert.Equal(t, "uuid-1", lead.ContactUUID)

	assert.Contains(t, mockDriver.Queries, driver.SaveContactQuery)
	assert.Contains(t, mockDriver.Queries, driver.SaveLeadQuery)
}

func TestIntakeLead_WithoutLLM(t *testing.T) {
	crm := newTestCRM(&MockDriver{}, nil)

	_, err := crm.IntakeLead(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestDraftFollowUp_UsesLinkedContact(t *testing.T) {
	mockDriver := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.GetLeadQuery:    {Records: []*neo4j.Record{leadRecord("l1", "Renovation", "c1", model.StageProposal)}},
			driver.GetContactQuery: {Records: []*neo4j.Record{contactRecord("c1", "Marie Petit", "marie@x.fr", "")}},
		},
	}
	mockLLM := &MockLLM{Response: `{"subject": "Votre projet", "body": "Bonjour Marie..."}`}
	crm := newTestCRM(mockDriver, mockLLM)

	draft, err := crm.DraftFollowUp(context.Background(), "l1")

	assert.NoError(t, err)
	assert.Equal(t, "Votre projet", draft.Subject)
}

func TestSetLeadStage_InvalidStage(t *testing.T) {
	crm := newTestCRM(&MockDriver{}, nil)

	err := crm.SetLeadStage(context.Background(), "l1", "limbo")
	assert.Error(t, err)
}

func TestSearchContacts_Reranked(t *testing.T) {
	mockDriver := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.SearchContactsQuery: {Records: []*neo4j.Record{
				contactRecord("c1", "Paul Martin", "paul@x.fr", ""),
				contactRecord("c2", "Pauline Martinez", "pauline@x.fr", ""),
			}},
		},
	}
	mockLLM := &MockLLM{Response: "1, 0"}
	crm := newTestCRM(mockDriver, mockLLM)

	contacts, err := crm.SearchContacts(context.Background(), "pauline")

	assert.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, "c2", contacts[0].UUID)
	assert.Equal(t, "c1", contacts[1].UUID)
}

func TestSearchContacts_NoRerankerKeepsOrder(t *testing.T) {
	mockDriver := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.SearchContactsQuery: {Records: []*neo4j.Record{
				contactRecord("c1", "Paul Martin", "paul@x.fr", ""),
				contactRecord("c2", "Pauline Martinez", "pauline@x.fr", ""),
			}},
		},
	}
	crm := newTestCRM(mockDriver, nil)

	contacts, err := crm.SearchContacts(context.Background(), "pauline")

	assert.NoError(t, err)
	assert.Equal(t, "c1", contacts[0].UUID)
}
