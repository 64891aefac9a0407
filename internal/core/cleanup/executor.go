package cleanup

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/agencyops/crmcore/internal/core/model"
)

// Deleter is the slice of the store the executor needs. Deletes may reject
// (network, permission, already deleted); a second delete of a gone record
// is not assumed idempotent.
type Deleter interface {
	DeleteContact(ctx context.Context, uuid string) error
	DeleteCompany(ctx context.Context, uuid string) error
}

// Run status, reported to drive a progress indicator. There is no pause or
// cancel; a run completes or exhausts its list.
type Status string

const (
	StatusIdle           Status = "idle"
	StatusRunning        Status = "running"
	StatusDone           Status = "done"
	StatusDoneWithErrors Status = "done-with-errors"
)

// Executor deletes the non-kept members of duplicate groups. It acts on the
// group snapshot it is handed and never re-runs detection mid-operation; the
// caller refetches after the run. All deletes are sequential, one awaited at
// a time.
type Executor struct {
	store Deleter

	mu     sync.Mutex
	status Status
}

func NewExecutor(store Deleter) *Executor {
	return &Executor{store: store, status: StatusIdle}
}

func (e *Executor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Executor) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}

// MergeGroup deletes every member of the group except keepID. An empty
// keepID keeps the group's first item. The first failed delete aborts the
// rest of the group so one reviewed decision is never half-applied silently;
// deletes that already landed are not rolled back.
func (e *Executor) MergeGroup(ctx context.Context, group model.DuplicateGroup, keepID string) error {
	if len(group.Items) == 0 {
		return fmt.Errorf("empty duplicate group")
	}
	if keepID == "" {
		keepID = group.Items[0].RecordID()
	}

	found := false
	for _, r := range group.Items {
		if r.RecordID() == keepID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("keep id %s is not a member of the group", keepID)
	}

	for _, r := range group.Items {
		if r.RecordID() == keepID {
			continue
		}
		if err := e.deleteRecord(ctx, r); err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", r.RecordKind(), r.RecordID(), err)
		}
	}

	return nil
}

// AutoCleanup keeps the first member of every group and deletes the rest.
// Unlike MergeGroup, a failure does not stop the run: the item is logged,
// counted as failed and the loop moves on. Throughput over completeness.
func (e *Executor) AutoCleanup(ctx context.Context, groups []model.DuplicateGroup) model.CleanupReport {
	e.setStatus(StatusRunning)

	var report model.CleanupReport
	for _, group := range groups {
		if len(group.Items) < 2 {
			continue
		}
		for _, r := range group.Items[1:] {
			if err := e.deleteRecord(ctx, r); err != nil {
				log.Printf("auto-cleanup: failed to delete %s %s: %v", r.RecordKind(), r.RecordID(), err)
				report.FailedIDs = append(report.FailedIDs, r.RecordID())
				continue
			}
			report.DeletedCount++
		}
	}

	if len(report.FailedIDs) > 0 {
		e.setStatus(StatusDoneWithErrors)
	} else {
		e.setStatus(StatusDone)
	}
	return report
}

func (e *Executor) deleteRecord(ctx context.Context, r model.Record) error {
	switch r.RecordKind() {
	case model.KindContact:
		return e.store.DeleteContact(ctx, r.RecordID())
	case model.KindCompany:
		return e.store.DeleteCompany(ctx, r.RecordID())
	}
	return fmt.Errorf("unknown record kind %q", r.RecordKind())
}
