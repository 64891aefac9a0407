package cleanup

import (
	"context"
	"fmt"
	"testing"

	"github.com/agencyops/crmcore/internal/core/model"
	"github.com/stretchr/testify/assert"
)

type mockDeleter struct {
	Deleted []string
	FailIDs map[string]bool
}

func (m *mockDeleter) delete(uuid string) error {
	if m.FailIDs[uuid] {
		return fmt.Errorf("delete rejected for %s", uuid)
	}
	m.Deleted = append(m.Deleted, uuid)
	return nil
}

func (m *mockDeleter) DeleteContact(ctx context.Context, uuid string) error { return m.delete(uuid) }
func (m *mockDeleter) DeleteCompany(ctx context.Context, uuid string) error { return m.delete(uuid) }

func contactGroup(ids ...string) model.DuplicateGroup {
	g := model.DuplicateGroup{MatchedField: model.MatchEmail}
	for _, id := range ids {
		g.Items = append(g.Items, model.Contact{UUID: id, Name: id})
	}
	return g
}

func TestMergeGroup_DefaultKeepsFirst(t *testing.T) {
	store := &mockDeleter{}
	e := NewExecutor(store)

	err := e.MergeGroup(context.Background(), contactGroup("c1", "c2", "c3"), "")

	assert.NoError(t, err)
	assert.Equal(t, []string{"c2", "c3"}, store.Deleted)
}

func TestMergeGroup_ExplicitKeep(t *testing.T) {
	store := &mockDeleter{}
	e := NewExecutor(store)

	err := e.MergeGroup(context.Background(), contactGroup("c1", "c2", "c3"), "c2")

	assert.NoError(t, err)
	assert.Equal(t, []string{"c1", "c3"}, store.Deleted)
}

func TestMergeGroup_KeepNotInGroup(t *testing.T) {
	store := &mockDeleter{}
	e := NewExecutor(store)

	err := e.MergeGroup(context.Background(), contactGroup("c1", "c2"), "c9")

	assert.Error(t, err)
	assert.Empty(t, store.Deleted)
}

func TestMergeGroup_AbortsOnFirstError(t *testing.T) {
	// Second delete rejects: the first lands, the later ones are never
	// attempted, and the caller gets the error.
	store := &mockDeleter{FailIDs: map[string]bool{"c3": true}}
	e := NewExecutor(store)

	err := e.MergeGroup(context.Background(), contactGroup("c1", "c2", "c3", "c4"), "c1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "c3")
	assert.Equal(t, []string{"c2"}, store.Deleted)
}

func TestAutoCleanup_KeepsFirstOfEveryGroup(t *testing.T) {
	store := &mockDeleter{}
	e := NewExecutor(store)

	report := e.AutoCleanup(context.Background(), []model.DuplicateGroup{
		contactGroup("c1", "c2", "c3"),
		contactGroup("c4", "c5"),
	})

	assert.Equal(t, 3, report.DeletedCount)
	assert.Empty(t, report.FailedIDs)
	assert.Equal(t, []string{"c2", "c3", "c5"}, store.Deleted)
	assert.Equal(t, StatusDone, e.Status())
}

func TestAutoCleanup_ContinuesPastFailures(t *testing.T) {
	// One failure in the first group must not stop the second group.
	store := &mockDeleter{FailIDs: map[string]bool{"c2": true}}
	e := NewExecutor(store)

	report := e.AutoCleanup(context.Background(), []model.DuplicateGroup{
		contactGroup("c1", "c2", "c3"),
		contactGroup("c4", "c5"),
	})

	assert.Equal(t, 2, report.DeletedCount)
	assert.Equal(t, []string{"c2"}, report.FailedIDs)
	assert.Equal(t, []string{"c3", "c5"}, store.Deleted)
	assert.Equal(t, StatusDoneWithErrors, e.Status())
}

func TestAutoCleanup_SkipsDegenerateGroups(t *testing.T) {
	store := &mockDeleter{}
	e := NewExecutor(store)

	report := e.AutoCleanup(context.Background(), []model.DuplicateGroup{contactGroup("c1")})

	assert.Equal(t, 0, report.DeletedCount)
	assert.Empty(t, store.Deleted)
}
