package sqldb

import (
	"database/sql"
	"errors"

	"github.com/wansing/editorial/core"
)

type artefact struct {
	id           int
	slug         string
	kind         string
	name         string
	section      string
	subsection   string
	externalLink string
}

func (a *artefact) ID() int {
	return a.id
}

func (a *artefact) Slug() string {
	return a.slug
}

func (a *artefact) Kind() string {
	return a.kind
}

func (a *artefact) Name() string {
	return a.name
}

func (a *artefact) Section() string {
	return a.section
}

func (a *artefact) Subsection() string {
	return a.subsection
}

func (a *artefact) ExternalLink() string {
	return a.externalLink
}

type ArtefactDB struct {
	*sql.DB
	get       *sql.Stmt
	getBySlug *sql.Stmt
	insert    *sql.Stmt
	setName   *sql.Stmt
}

func NewArtefactDB(db *sql.DB) *ArtefactDB {

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS artefact (
			id INTEGER PRIMARY KEY,
			slug varchar(64) NOT NULL,
			kind varchar(32) NOT NULL,
			name varchar(128) NOT NULL,
			section varchar(64) NOT NULL,
			subsection varchar(64) NOT NULL,
			externalLink varchar(256) NOT NULL,
			UNIQUE (slug)
		);`)
	if err != nil {
		panic(err)
	}

	var artefactDB = &ArtefactDB{}
	artefactDB.DB = db
	artefactDB.get = mustPrepare(db, "SELECT id, slug, kind, name, section, subsection, externalLink FROM artefact WHERE id = ? LIMIT 1")
	artefactDB.getBySlug = mustPrepare(db, "SELECT id, slug, kind, name, section, subsection, externalLink FROM artefact WHERE slug = ? LIMIT 1")
	artefactDB.insert = mustPrepare(db, "INSERT INTO artefact (slug, kind, name, section, subsection, externalLink) VALUES (?, ?, ?, ?, ?, ?)")
	artefactDB.setName = mustPrepare(db, "UPDATE artefact SET name = ? WHERE id = ?")
	return artefactDB
}

func (db *ArtefactDB) GetArtefact(id int) (core.DBArtefact, error) {
	var a = &artefact{}
	return a, db.get.QueryRow(id).Scan(&a.id, &a.slug, &a.kind, &a.name, &a.section, &a.subsection, &a.externalLink)
}

func (db *ArtefactDB) GetArtefactBySlug(slug string) (core.DBArtefact, error) {
	var a = &artefact{}
	return a, db.getBySlug.QueryRow(slug).Scan(&a.id, &a.slug, &a.kind, &a.name, &a.section, &a.subsection, &a.externalLink)
}

func (db *ArtefactDB) InsertArtefact(slug, kind, name, section, subsection, externalLink string) (core.DBArtefact, error) {
	result, err := db.insert.Exec(slug, kind, name, section, subsection, externalLink)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetArtefact(int(id))
}

func (db *ArtefactDB) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (db *ArtefactDB) SetName(a core.DBArtefact, name string) error {
	_, err := db.setName.Exec(name, a.ID())
	if err == nil {
		a.(*artefact).name = name
	}
	return err
}
