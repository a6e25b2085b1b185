package core

import (
	"fmt"
	"strings"

	"github.com/wansing/editorial/util"
)

// A Part is an ordered sub-document of a multi-page edition. Parts are owned
// exclusively by their edition and cloned alongside it.
type Part struct {
	Title string
	Slug  string
	Body  string
}

// A DBEdition is one versioned instance of content for an artefact. Version
// numbers start at 1 and are strictly increasing within an artefact, never
// reused. Creator, Publisher, Archiver and Assignee are denormalized user
// names, see CoreDB.denormalizeUsers.
type DBEdition interface {
	ID() int
	ArtefactID() int
	VersionNo() int
	State() State
	Title() string
	Parts() ([]Part, error)
	ReviewNote() string
	FactCheckNote() string
	AssignedToID() int // zero means assigned to nobody
	Creator() string
	Publisher() string
	Archiver() string
	Assignee() string
	TsCreated() int64
	TsUpdated() int64
}

type EditionDB interface {
	DeleteEdition(e DBEdition) error // deletes the edition and its parts
	GetAssignedEditions(userID int) ([]DBEdition, error) // userID zero means assigned to nobody
	GetEdition(id int) (DBEdition, error)
	GetEditions(artefactID int) ([]DBEdition, error) // ordered by version number descending
	InsertEdition(artefactID, versionNo int, state State, title string, parts []Part) (DBEdition, error)
	IsNotFound(err error) bool
	SetAssignedTo(e DBEdition, userID int) error
	SetNames(e DBEdition, creator, publisher, archiver, assignee string) error
	SetNotes(e DBEdition, reviewNote, factCheckNote string) error
	SetState(e DBEdition, state State) error
	UpdateContent(e DBEdition, title string, parts []Part) error
}

type Edition struct {
	DBEdition
	db       *CoreDB
	artefact *Artefact // cached
}

func (c *CoreDB) GetEdition(id int) (*Edition, error) {
	var dbEdition, err = c.EditionDB.GetEdition(id)
	if err != nil {
		return nil, fmt.Errorf("edition %d: %w", id, err)
	}
	return &Edition{DBEdition: dbEdition, db: c}, nil
}

func (c *CoreDB) getEditions(artefactID int) ([]*Edition, error) {
	var dbEditions, err = c.EditionDB.GetEditions(artefactID)
	if err != nil {
		return nil, err
	}
	var editions = make([]*Edition, len(dbEditions))
	for i := range dbEditions {
		editions[i] = &Edition{DBEdition: dbEditions[i], db: c}
	}
	return editions, nil
}

// AssignedEditions returns the editions which are currently assigned to the
// given user. A nil user means assigned to nobody.
func (c *CoreDB) AssignedEditions(user *User) ([]*Edition, error) {
	var userID = 0
	if user != nil {
		userID = user.ID()
	}
	var dbEditions, err = c.EditionDB.GetAssignedEditions(userID)
	if err != nil {
		return nil, err
	}
	var editions = make([]*Edition, len(dbEditions))
	for i := range dbEditions {
		editions[i] = &Edition{DBEdition: dbEditions[i], db: c}
	}
	return editions, nil
}

func (e *Edition) Artefact() (*Artefact, error) {
	if e.artefact == nil {
		var artefact, err = e.db.GetArtefact(e.ArtefactID())
		if err != nil {
			return nil, err
		}
		e.artefact = artefact
	}
	return e.artefact, nil
}

// Siblings returns all other editions of the same artefact.
func (e *Edition) Siblings() ([]*Edition, error) {
	var editions, err = e.db.getEditions(e.ArtefactID())
	if err != nil {
		return nil, err
	}
	var siblings = []*Edition{}
	for _, sibling := range editions {
		if sibling.ID() != e.ID() {
			siblings = append(siblings, sibling)
		}
	}
	return siblings, nil
}

// PreviousSiblings returns the siblings with a strictly smaller version number.
func (e *Edition) PreviousSiblings() ([]*Edition, error) {
	var siblings, err = e.Siblings()
	if err != nil {
		return nil, err
	}
	var previous = []*Edition{}
	for _, sibling := range siblings {
		if sibling.VersionNo() < e.VersionNo() {
			previous = append(previous, sibling)
		}
	}
	return previous, nil
}

// PublishedSibling returns the sibling which is currently published, or nil.
func (e *Edition) PublishedSibling() (*Edition, error) {
	var siblings, err = e.Siblings()
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.State() == Published {
			return sibling, nil
		}
	}
	return nil, nil
}

// HasSiblingInProgress returns whether another edition of the artefact is in a
// working state. A published edition with an in-progress sibling is expected,
// not an error.
func (e *Edition) HasSiblingInProgress() (bool, error) {
	var siblings, err = e.Siblings()
	if err != nil {
		return false, err
	}
	for _, sibling := range siblings {
		if sibling.State().InProgress() {
			return true, nil
		}
	}
	return false, nil
}

func (e *Edition) Actions() ([]DBAction, error) {
	return e.db.GetActions(e.ID())
}

// LatestStatusAction returns the most recently appended action whose request
// type is one of the given types, or nil. Without arguments it returns the
// latest action that affects the workflow status, skipping notes and
// assignments.
func (e *Edition) LatestStatusAction(requestTypes ...string) (DBAction, error) {

	actions, err := e.Actions()
	if err != nil {
		return nil, err
	}

	for i := len(actions) - 1; i >= 0; i-- {
		var t = actions[i].RequestType()
		if len(requestTypes) == 0 {
			if t != ActionNote && t != ActionAssign {
				return actions[i], nil
			}
			continue
		}
		for _, want := range requestTypes {
			if t == want {
				return actions[i], nil
			}
		}
	}

	return nil, nil
}

// Can predicates are derived from the transition table.

func (e *Edition) CanStartWork() bool {
	var _, ok = nextState(ActionStartWork, e.State())
	return ok
}

func (e *Edition) CanRequestReview() bool {
	var _, ok = nextState(ActionRequestReview, e.State())
	return ok
}

func (e *Edition) CanApproveReview() bool {
	var _, ok = nextState(ActionApproveReview, e.State())
	return ok
}

func (e *Edition) CanRequestFactCheck() bool {
	var _, ok = nextState(ActionRequestFactCheck, e.State())
	return ok
}

func (e *Edition) CanPublish() bool {
	return e.State() == Ready
}

// CanEmergencyPublish returns true for any pre-published state.
func (e *Edition) CanEmergencyPublish() bool {
	return e.State().InProgress()
}

// CanDestroy returns whether the edition may be destroyed. Editions which have
// reached the published state are kept forever.
func (e *Edition) CanDestroy() (bool, error) {
	if e.State() == Published {
		return false, nil
	}
	published, err := e.LatestStatusAction(ActionPublish)
	if err != nil {
		return false, err
	}
	return published == nil, nil
}

// IndexableContent joins the part bodies for the search index, with markup
// tags stripped.
func (e *Edition) IndexableContent() (string, error) {
	var parts, err = e.Parts()
	if err != nil {
		return "", err
	}
	var bodies = make([]string, len(parts))
	for i, part := range parts {
		bodies[i] = part.Body
	}
	return util.StripTags(strings.Join(bodies, " ")), nil
}

// SearchDocument is the edition's projection for the external search index.
func (e *Edition) SearchDocument() (SearchDocument, error) {

	artefact, err := e.Artefact()
	if err != nil {
		return SearchDocument{}, err
	}

	indexable, err := e.IndexableContent()
	if err != nil {
		return SearchDocument{}, err
	}

	return SearchDocument{
		Title:            e.Title(),
		Link:             artefact.Link(),
		Format:           artefact.Kind(),
		Description:      util.Trunc(indexable, 160),
		IndexableContent: indexable,
		Section:          artefact.Section(),
		Subsection:       artefact.Subsection(),
	}, nil
}
