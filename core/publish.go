package core

import (
	"fmt"
	"strings"
)

// SearchDocument is the projection of a published edition for the external
// search index.
type SearchDocument struct {
	Title            string
	Link             string
	Format           string
	Description      string
	IndexableContent string
	Section          string
	Subsection       string
}

// SearchIndex is the external search-index collaborator. It is called on
// publish and on destruction of an artefact's final edition, never on draft
// saves.
type SearchIndex interface {
	Index(doc SearchDocument) error
	Delete(link string) error
}

// PublishingAPI is the external publishing-api collaborator. Each call is
// idempotent from the core's perspective; retry and backoff belong to the
// transport layer.
type PublishingAPI interface {
	DiscardDraft(artefactID int) error
	UpdateDraft(e *Edition) error
	Republish(e *Edition) error
	Publish(e *Edition) error
}

// A SyncError reports that one or more external collaborator calls failed
// after the local state transition had already committed. The local workflow
// state is the source of truth and is not rolled back; callers must surface
// the reconciliation need instead of re-presenting the operation as rejected.
type SyncError struct {
	Errs []error
}

func (e *SyncError) Error() string {
	var msgs = make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "external sync failed: " + strings.Join(msgs, "; ")
}

// Publish publishes a ready edition. Within one logical unit it verifies that
// no sibling is published, marks the edition published, archives the
// previously published sibling and records a publish action carrying the diff
// against that sibling. Afterwards it fans out to the search index and the
// publishing api; a failing external call is returned as a *SyncError while
// the local transition stands.
func (c *CoreDB) Publish(e *Edition, requester *User, comment string) error {
	return c.publish(e, requester, comment, false)
}

// EmergencyPublish bypasses the ready requirement and publishes from any
// pre-published state. It still enforces the single-published-edition
// invariant and still records a publish action.
func (c *CoreDB) EmergencyPublish(e *Edition, requester *User, comment string) error {
	return c.publish(e, requester, comment, true)
}

func (c *CoreDB) publish(e *Edition, requester *User, comment string, bypassReview bool) error {

	var unlock = c.lockArtefact(e.ArtefactID())
	defer unlock()

	if bypassReview {
		if !e.CanEmergencyPublish() {
			return fmt.Errorf("emergency publish from %s: %w", e.State(), ErrInvalidTransition)
		}
	} else {
		if !e.CanPublish() {
			return fmt.Errorf("publish from %s: %w", e.State(), ErrInvalidTransition)
		}
	}

	previous, err := e.PublishedSibling()
	if err != nil {
		return err
	}
	if previous != nil && previous.VersionNo() > e.VersionNo() {
		return ErrPublishConflict
	}

	var previousParts []Part
	if previous != nil {
		previousParts, err = previous.Parts()
		if err != nil {
			return err
		}
	}
	parts, err := e.Parts()
	if err != nil {
		return err
	}
	var diff = Diff(previousParts, parts)

	if err := c.EditionDB.SetState(e.DBEdition, Published); err != nil {
		return err
	}

	if previous != nil {
		if err := c.EditionDB.SetState(previous.DBEdition, Archived); err != nil {
			return err
		}
		if _, err := c.NewAction(previous, requester, ActionArchive, "", ""); err != nil {
			return err
		}
	}

	if _, err := c.NewAction(e, requester, ActionPublish, comment, diff); err != nil {
		return err
	}

	// fan-out, attempted independently
	var sync []error
	if doc, err := e.SearchDocument(); err == nil {
		if err := c.SearchIndex.Index(doc); err != nil {
			sync = append(sync, fmt.Errorf("search-index: %w", err))
		}
	} else {
		sync = append(sync, fmt.Errorf("search-index: %w", err))
	}
	if err := c.PublishingAPI.Publish(e); err != nil {
		sync = append(sync, fmt.Errorf("publishing-api: %w", err))
	}
	if len(sync) > 0 {
		return &SyncError{Errs: sync}
	}

	return nil
}

// BypassPublish pushes an artefact's live and draft editions to the publishing
// api without driving any workflow transition. A nil artefact and an artefact
// with neither a live nor an in-progress edition are no-ops. The discard,
// republish and update calls target different external resources and are
// attempted independently of each other.
func (c *CoreDB) BypassPublish(a *Artefact) error {

	if a == nil {
		return nil
	}

	live, err := a.PublishedEdition()
	if err != nil {
		return err
	}
	draft, err := a.InProgressEdition()
	if err != nil {
		return err
	}

	if live == nil && draft == nil {
		return nil
	}

	var sync []error
	if live != nil && draft != nil {
		if err := c.PublishingAPI.DiscardDraft(a.ID()); err != nil {
			sync = append(sync, fmt.Errorf("publishing-api discard draft: %w", err))
		}
	}
	if live != nil {
		if err := c.PublishingAPI.Republish(live); err != nil {
			sync = append(sync, fmt.Errorf("publishing-api republish: %w", err))
		}
	}
	if draft != nil {
		if err := c.PublishingAPI.UpdateDraft(draft); err != nil {
			sync = append(sync, fmt.Errorf("publishing-api update draft: %w", err))
		}
	}
	if len(sync) > 0 {
		return &SyncError{Errs: sync}
	}

	return nil
}
