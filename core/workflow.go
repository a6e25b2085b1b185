package core

import "fmt"

// CreateEdition creates the first edition of an artefact. It starts in the
// lined_up state, takes its title from the artefact name and records a create
// action.
func (c *CoreDB) CreateEdition(a *Artefact, requester *User, parts []Part) (*Edition, error) {

	var unlock = c.lockArtefact(a.ID())
	defer unlock()

	latest, err := a.LatestEdition()
	if err != nil {
		return nil, err
	}

	var versionNo = 1
	if latest != nil {
		versionNo = latest.VersionNo() + 1
	}

	dbEdition, err := c.EditionDB.InsertEdition(a.ID(), versionNo, LinedUp, a.Name(), parts)
	if err != nil {
		return nil, err
	}

	var e = &Edition{DBEdition: dbEdition, db: c, artefact: a}
	if _, err := c.NewAction(e, requester, ActionCreate, "", ""); err != nil {
		return nil, err
	}
	return e, nil
}

// transition moves the edition to the next state of the transition table and
// records an action. Invalid combinations are rejected before any mutation.
func (c *CoreDB) transition(e *Edition, requester *User, requestType, comment string) error {

	to, ok := nextState(requestType, e.State())
	if !ok {
		return fmt.Errorf("%s from %s: %w", requestType, e.State(), ErrInvalidTransition)
	}

	if err := c.EditionDB.SetState(e.DBEdition, to); err != nil {
		return err
	}

	_, err := c.NewAction(e, requester, requestType, comment, "")
	return err
}

func (c *CoreDB) StartWork(e *Edition, requester *User) error {
	return c.transition(e, requester, ActionStartWork, "")
}

func (c *CoreDB) RequestReview(e *Edition, requester *User, comment string) error {
	return c.transition(e, requester, ActionRequestReview, comment)
}

func (c *CoreDB) ApproveReview(e *Edition, requester *User, comment string) error {
	return c.transition(e, requester, ActionApproveReview, comment)
}

// RequestAmendments sends the edition back to the author. Self-review is
// forbidden: if the requester is the user who most recently requested review,
// it returns false without an error. This soft failure is deliberate, callers
// rely on the non-throwing contract.
func (c *CoreDB) RequestAmendments(e *Edition, requester *User, comment string) (bool, error) {

	lastReview, err := e.LatestStatusAction(ActionRequestReview)
	if err != nil {
		return false, err
	}
	if lastReview != nil && lastReview.RequesterID() == requester.ID() {
		return false, nil
	}

	if err := c.transition(e, requester, ActionRequestAmendments, comment); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CoreDB) RequestFactCheck(e *Edition, requester *User, comment string) error {
	return c.transition(e, requester, ActionRequestFactCheck, comment)
}

func (c *CoreDB) ReceiveFactCheck(e *Edition, requester *User, comment string) error {
	return c.transition(e, requester, ActionReceiveFactCheck, comment)
}

func (c *CoreDB) ApproveFactCheck(e *Edition, requester *User, comment string) error {
	return c.transition(e, requester, ActionApproveFactCheck, comment)
}

// Archive archives an edition manually. The automatic archiving of a
// superseded published edition happens in publish.go, a published edition can
// not be archived through here.
func (c *CoreDB) Archive(e *Edition, requester *User, comment string) error {
	return c.transition(e, requester, ActionArchive, comment)
}

// Assign makes the assignee responsible for the edition. The most recent
// assignment wins.
func (c *CoreDB) Assign(e *Edition, requester *User, assignee *User) error {
	if err := c.EditionDB.SetAssignedTo(e.DBEdition, assignee.ID()); err != nil {
		return err
	}
	_, err := c.NewAction(e, requester, ActionAssign, "assigned to "+assignee.Name(), "")
	return err
}

// AssignedTo returns the user the edition is currently assigned to, or nil.
func (e *Edition) AssignedTo() (*User, error) {
	if e.AssignedToID() == 0 {
		return nil, nil
	}
	return e.db.GetUser(e.AssignedToID())
}

// EditContent replaces the edition's title and parts. Published editions are
// immutable, editing one fails with ErrEditionImmutable and the stored content
// is unchanged.
func (c *CoreDB) EditContent(e *Edition, title string, parts []Part) error {
	if e.State() == Published {
		return ErrEditionImmutable
	}
	return c.EditionDB.UpdateContent(e.DBEdition, title, parts)
}

// EditNotes replaces the free-form review and fact-check metadata.
func (c *CoreDB) EditNotes(e *Edition, reviewNote, factCheckNote string) error {
	if e.State() == Published {
		return ErrEditionImmutable
	}
	return c.EditionDB.SetNotes(e.DBEdition, reviewNote, factCheckNote)
}

// DestroyEdition deletes an edition together with its parts and action
// records. An edition which has ever reached the published state can not be
// destroyed. Destroying an edition in a working state discards the externally
// held draft at the publishing api, and destroying the artefact's final
// edition removes the search index entry; failing external calls are reported
// as a SyncError after the local deletion has committed.
func (c *CoreDB) DestroyEdition(e *Edition) error {

	var unlock = c.lockArtefact(e.ArtefactID())
	defer unlock()

	ok, err := e.CanDestroy()
	if err != nil {
		return err
	}
	if !ok {
		return ErrCannotDeletePublished
	}

	artefact, err := e.Artefact()
	if err != nil {
		return err
	}
	var link = artefact.Link()
	var wasInProgress = e.State().InProgress()

	siblings, err := e.Siblings()
	if err != nil {
		return err
	}

	if err := c.ActionDB.DeleteActions(e.ID()); err != nil {
		return err
	}
	if err := c.EditionDB.DeleteEdition(e.DBEdition); err != nil {
		return err
	}

	var sync []error
	if wasInProgress {
		if err := c.PublishingAPI.DiscardDraft(artefact.ID()); err != nil {
			sync = append(sync, fmt.Errorf("publishing-api discard draft: %w", err))
		}
	}
	if len(siblings) == 0 {
		if err := c.SearchIndex.Delete(link); err != nil {
			sync = append(sync, fmt.Errorf("search-index: %w", err))
		}
	}
	if len(sync) > 0 {
		return &SyncError{Errs: sync}
	}

	return nil
}
