package core

import (
	"fmt"

	"github.com/wansing/editorial/util"
)

// A DBArtefact is the stable, format-independent identity of one piece of
// content. It owns a family of editions over time and is never duplicated.
type DBArtefact interface {
	ID() int
	Slug() string
	Kind() string // format tag, e.g. "answer" or "guide"
	Name() string
	Section() string
	Subsection() string
	ExternalLink() string
}

type ArtefactDB interface {
	GetArtefact(id int) (DBArtefact, error)
	GetArtefactBySlug(slug string) (DBArtefact, error)
	InsertArtefact(slug, kind, name, section, subsection, externalLink string) (DBArtefact, error)
	IsNotFound(err error) bool
	SetName(a DBArtefact, name string) error
}

type Artefact struct {
	DBArtefact
	db *CoreDB
}

func (c *CoreDB) GetArtefact(id int) (*Artefact, error) {
	var dbArtefact, err = c.ArtefactDB.GetArtefact(id)
	if err != nil {
		return nil, fmt.Errorf("artefact %d: %w", id, err)
	}
	return &Artefact{DBArtefact: dbArtefact, db: c}, nil
}

func (c *CoreDB) GetArtefactBySlug(slug string) (*Artefact, error) {
	var dbArtefact, err = c.ArtefactDB.GetArtefactBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("artefact %s: %w", slug, err)
	}
	return &Artefact{DBArtefact: dbArtefact, db: c}, nil
}

func (c *CoreDB) CreateArtefact(slug, kind, name, section, subsection, externalLink string) (*Artefact, error) {
	slug = util.NormalizeSlug(slug)
	if slug == "" {
		return nil, fmt.Errorf("slug can't be empty")
	}
	var dbArtefact, err = c.ArtefactDB.InsertArtefact(slug, kind, name, section, subsection, externalLink)
	if err != nil {
		return nil, err
	}
	return &Artefact{DBArtefact: dbArtefact, db: c}, nil
}

// SyncName updates the artefact name and copies it onto the titles of all
// editions which are still editable. Published and archived editions keep
// their title.
func (c *CoreDB) SyncName(a *Artefact, name string) error {

	if err := c.ArtefactDB.SetName(a.DBArtefact, name); err != nil {
		return err
	}

	editions, err := a.Editions()
	if err != nil {
		return err
	}

	for _, e := range editions {
		if !e.State().InProgress() {
			continue
		}
		parts, err := e.Parts()
		if err != nil {
			return err
		}
		if err := c.EditionDB.UpdateContent(e.DBEdition, name, parts); err != nil {
			return err
		}
	}

	return nil
}

// Link is the public path of the artefact's content.
func (a *Artefact) Link() string {
	return "/" + a.Slug()
}

// Editions returns all editions of the artefact, ordered by version number
// descending.
func (a *Artefact) Editions() ([]*Edition, error) {
	return a.db.getEditions(a.ID())
}

// LatestEdition returns the edition with the highest version number, or nil.
func (a *Artefact) LatestEdition() (*Edition, error) {
	var editions, err = a.Editions()
	if err != nil {
		return nil, err
	}
	if len(editions) == 0 {
		return nil, nil
	}
	return editions[0], nil
}

// PublishedEdition returns the edition which is currently published, or nil.
// By invariant there is at most one.
func (a *Artefact) PublishedEdition() (*Edition, error) {
	var editions, err = a.Editions()
	if err != nil {
		return nil, err
	}
	for _, e := range editions {
		if e.State() == Published {
			return e, nil
		}
	}
	return nil, nil
}

// InProgressEdition returns the latest edition in a working state, or nil.
func (a *Artefact) InProgressEdition() (*Edition, error) {
	var editions, err = a.Editions()
	if err != nil {
		return nil, err
	}
	for _, e := range editions {
		if e.State().InProgress() {
			return e, nil
		}
	}
	return nil, nil
}
