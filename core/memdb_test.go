package core

// In-memory implementations of the storage interfaces and recording fakes for
// the external collaborators. Enough to test the workflow engine without a
// database.

import (
	"errors"
	"sort"
	"time"
)

var errNotFound = errors.New("not found")

// artefacts

type memArtefact struct {
	id           int
	slug         string
	kind         string
	name         string
	section      string
	subsection   string
	externalLink string
}

func (a *memArtefact) ID() int              { return a.id }
func (a *memArtefact) Slug() string         { return a.slug }
func (a *memArtefact) Kind() string         { return a.kind }
func (a *memArtefact) Name() string         { return a.name }
func (a *memArtefact) Section() string      { return a.section }
func (a *memArtefact) Subsection() string   { return a.subsection }
func (a *memArtefact) ExternalLink() string { return a.externalLink }

type memArtefactDB struct {
	nextID    int
	artefacts map[int]*memArtefact
}

func (db *memArtefactDB) GetArtefact(id int) (DBArtefact, error) {
	if a, ok := db.artefacts[id]; ok {
		return a, nil
	}
	return nil, errNotFound
}

func (db *memArtefactDB) GetArtefactBySlug(slug string) (DBArtefact, error) {
	for _, a := range db.artefacts {
		if a.slug == slug {
			return a, nil
		}
	}
	return nil, errNotFound
}

func (db *memArtefactDB) InsertArtefact(slug, kind, name, section, subsection, externalLink string) (DBArtefact, error) {
	db.nextID++
	var a = &memArtefact{id: db.nextID, slug: slug, kind: kind, name: name, section: section, subsection: subsection, externalLink: externalLink}
	db.artefacts[a.id] = a
	return a, nil
}

func (db *memArtefactDB) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func (db *memArtefactDB) SetName(a DBArtefact, name string) error {
	a.(*memArtefact).name = name
	return nil
}

// editions

type memEdition struct {
	id            int
	artefactID    int
	versionNo     int
	state         State
	title         string
	parts         []Part
	reviewNote    string
	factCheckNote string
	assignedTo    int
	creator       string
	publisher     string
	archiver      string
	assignee      string
	tsCreated     int64
	tsUpdated     int64
}

func (e *memEdition) ID() int                { return e.id }
func (e *memEdition) ArtefactID() int        { return e.artefactID }
func (e *memEdition) VersionNo() int         { return e.versionNo }
func (e *memEdition) State() State           { return e.state }
func (e *memEdition) Title() string          { return e.title }
func (e *memEdition) Parts() ([]Part, error) { return e.parts, nil }
func (e *memEdition) ReviewNote() string     { return e.reviewNote }
func (e *memEdition) FactCheckNote() string  { return e.factCheckNote }
func (e *memEdition) AssignedToID() int      { return e.assignedTo }
func (e *memEdition) Creator() string        { return e.creator }
func (e *memEdition) Publisher() string      { return e.publisher }
func (e *memEdition) Archiver() string       { return e.archiver }
func (e *memEdition) Assignee() string       { return e.assignee }
func (e *memEdition) TsCreated() int64       { return e.tsCreated }
func (e *memEdition) TsUpdated() int64       { return e.tsUpdated }

type memEditionDB struct {
	nextID   int
	editions map[int]*memEdition
}

func (db *memEditionDB) DeleteEdition(e DBEdition) error {
	if _, ok := db.editions[e.ID()]; !ok {
		return errNotFound
	}
	delete(db.editions, e.ID())
	return nil
}

func (db *memEditionDB) GetAssignedEditions(userID int) ([]DBEdition, error) {
	var result = []DBEdition{}
	for _, e := range db.editions {
		if e.assignedTo == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

func (db *memEditionDB) GetEdition(id int) (DBEdition, error) {
	if e, ok := db.editions[id]; ok {
		return e, nil
	}
	return nil, errNotFound
}

func (db *memEditionDB) GetEditions(artefactID int) ([]DBEdition, error) {
	var result = []DBEdition{}
	for _, e := range db.editions {
		if e.artefactID == artefactID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].VersionNo() > result[j].VersionNo() })
	return result, nil
}

func (db *memEditionDB) InsertEdition(artefactID, versionNo int, state State, title string, parts []Part) (DBEdition, error) {
	db.nextID++
	var copied = make([]Part, len(parts))
	copy(copied, parts)
	var e = &memEdition{
		id:         db.nextID,
		artefactID: artefactID,
		versionNo:  versionNo,
		state:      state,
		title:      title,
		parts:      copied,
		tsCreated:  time.Now().Unix(),
		tsUpdated:  time.Now().Unix(),
	}
	db.editions[e.id] = e
	return e, nil
}

func (db *memEditionDB) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func (db *memEditionDB) SetAssignedTo(e DBEdition, userID int) error {
	e.(*memEdition).assignedTo = userID
	return nil
}

func (db *memEditionDB) SetNames(e DBEdition, creator, publisher, archiver, assignee string) error {
	var ed = e.(*memEdition)
	ed.creator = creator
	ed.publisher = publisher
	ed.archiver = archiver
	ed.assignee = assignee
	return nil
}

func (db *memEditionDB) SetNotes(e DBEdition, reviewNote, factCheckNote string) error {
	var ed = e.(*memEdition)
	ed.reviewNote = reviewNote
	ed.factCheckNote = factCheckNote
	return nil
}

func (db *memEditionDB) SetState(e DBEdition, state State) error {
	e.(*memEdition).state = state
	return nil
}

func (db *memEditionDB) UpdateContent(e DBEdition, title string, parts []Part) error {
	var copied = make([]Part, len(parts))
	copy(copied, parts)
	var ed = e.(*memEdition)
	ed.title = title
	ed.parts = copied
	return nil
}

// actions

type memAction struct {
	id          int
	editionID   int
	requesterID int
	requester   string
	requestType string
	comment     string
	diff        string
	tsCreated   int64
}

func (a *memAction) ID() int             { return a.id }
func (a *memAction) EditionID() int      { return a.editionID }
func (a *memAction) RequesterID() int    { return a.requesterID }
func (a *memAction) Requester() string   { return a.requester }
func (a *memAction) RequestType() string { return a.requestType }
func (a *memAction) Comment() string     { return a.comment }
func (a *memAction) Diff() string        { return a.diff }
func (a *memAction) TsCreated() int64    { return a.tsCreated }

type memActionDB struct {
	nextID  int
	actions []*memAction // insertion order
}

func (db *memActionDB) DeleteActions(editionID int) error {
	var kept = db.actions[:0]
	for _, a := range db.actions {
		if a.editionID != editionID {
			kept = append(kept, a)
		}
	}
	db.actions = kept
	return nil
}

func (db *memActionDB) GetActions(editionID int) ([]DBAction, error) {
	var result = []DBAction{}
	for _, a := range db.actions {
		if a.editionID == editionID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (db *memActionDB) InsertAction(editionID, requesterID int, requesterName, requestType, comment, diff string) (DBAction, error) {
	db.nextID++
	var a = &memAction{
		id:          db.nextID,
		editionID:   editionID,
		requesterID: requesterID,
		requester:   requesterName,
		requestType: requestType,
		comment:     comment,
		diff:        diff,
		tsCreated:   time.Now().Unix(),
	}
	db.actions = append(db.actions, a)
	return a, nil
}

// users

type memUser struct {
	id   int
	name string
}

func (u *memUser) ID() int      { return u.id }
func (u *memUser) Name() string { return u.name }

type memUserDB struct {
	nextID int
	users  map[int]*memUser
}

func (db *memUserDB) GetAllUsers(limit, offset int) ([]DBUser, error) {
	var result = []DBUser{}
	for _, u := range db.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	if offset >= len(result) {
		return []DBUser{}, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (db *memUserDB) GetUser(id int) (DBUser, error) {
	if u, ok := db.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (db *memUserDB) GetUserByName(name string) (DBUser, error) {
	for _, u := range db.users {
		if u.name == name {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (db *memUserDB) InsertUser(name string) (DBUser, error) {
	db.nextID++
	var u = &memUser{id: db.nextID, name: name}
	db.users[u.id] = u
	return u, nil
}

func (db *memUserDB) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

// collaborator fakes

type fakeIndex struct {
	indexed []SearchDocument
	deleted []string
	fail    error
}

func (f *fakeIndex) Index(doc SearchDocument) error {
	if f.fail != nil {
		return f.fail
	}
	f.indexed = append(f.indexed, doc)
	return nil
}

func (f *fakeIndex) Delete(link string) error {
	if f.fail != nil {
		return f.fail
	}
	f.deleted = append(f.deleted, link)
	return nil
}

type fakeAPI struct {
	discarded   []int
	updated     []int // edition ids
	republished []int // edition ids
	published   []int // edition ids
	fail        error
}

func (f *fakeAPI) DiscardDraft(artefactID int) error {
	if f.fail != nil {
		return f.fail
	}
	f.discarded = append(f.discarded, artefactID)
	return nil
}

func (f *fakeAPI) UpdateDraft(e *Edition) error {
	if f.fail != nil {
		return f.fail
	}
	f.updated = append(f.updated, e.ID())
	return nil
}

func (f *fakeAPI) Republish(e *Edition) error {
	if f.fail != nil {
		return f.fail
	}
	f.republished = append(f.republished, e.ID())
	return nil
}

func (f *fakeAPI) Publish(e *Edition) error {
	if f.fail != nil {
		return f.fail
	}
	f.published = append(f.published, e.ID())
	return nil
}

func newTestDB() (*CoreDB, *fakeIndex, *fakeAPI) {
	var index = &fakeIndex{}
	var api = &fakeAPI{}
	var db = &CoreDB{
		ActionDB:      &memActionDB{},
		ArtefactDB:    &memArtefactDB{artefacts: make(map[int]*memArtefact)},
		EditionDB:     &memEditionDB{editions: make(map[int]*memEdition)},
		UserDB:        &memUserDB{users: make(map[int]*memUser)},
		SearchIndex:   index,
		PublishingAPI: api,
	}
	return db, index, api
}
