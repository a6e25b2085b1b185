package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wansing/editorial/core"
)

type edition struct {
	db *EditionDB

	id            int
	artefactID    int
	versionNo     int
	state         string
	title         string
	reviewNote    string
	factCheckNote string
	assignedTo    int
	creator       string
	publisher     string
	archiver      string
	assignee      string
	tsCreated     int64
	tsUpdated     int64

	parts       []core.Part // lazy loading
	partsLoaded bool
}

func (e *edition) ID() int {
	return e.id
}

func (e *edition) ArtefactID() int {
	return e.artefactID
}

func (e *edition) VersionNo() int {
	return e.versionNo
}

func (e *edition) State() core.State {
	return core.State(e.state)
}

func (e *edition) Title() string {
	return e.title
}

func (e *edition) ReviewNote() string {
	return e.reviewNote
}

func (e *edition) FactCheckNote() string {
	return e.factCheckNote
}

func (e *edition) AssignedToID() int {
	return e.assignedTo
}

func (e *edition) Creator() string {
	return e.creator
}

func (e *edition) Publisher() string {
	return e.publisher
}

func (e *edition) Archiver() string {
	return e.archiver
}

func (e *edition) Assignee() string {
	return e.assignee
}

func (e *edition) TsCreated() int64 {
	return e.tsCreated
}

func (e *edition) TsUpdated() int64 {
	return e.tsUpdated
}

func (e *edition) Parts() ([]core.Part, error) {

	if !e.partsLoaded {

		e.parts = []core.Part{}

		rows, err := e.db.getParts.Query(e.id)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var part core.Part
			if err = rows.Scan(&part.Title, &part.Slug, &part.Body); err != nil {
				return nil, err
			}
			e.parts = append(e.parts, part)
		}

		e.partsLoaded = true
	}

	return e.parts, nil
}

type EditionDB struct {
	*sql.DB
	clearParts    *sql.Stmt
	deleteEdition *sql.Stmt
	get           *sql.Stmt
	getAssigned   *sql.Stmt
	getByArtefact *sql.Stmt
	getParts      *sql.Stmt
	insert        *sql.Stmt
	insertPart    *sql.Stmt
	setAssignedTo *sql.Stmt
	setNames      *sql.Stmt
	setNotes      *sql.Stmt
	setState      *sql.Stmt
	updateContent *sql.Stmt
}

const editionColumns = "id, artefactId, versionNo, state, title, reviewNote, factCheckNote, assignedTo, creator, publisher, archiver, assignee, ts_created, ts_updated"

func NewEditionDB(db *sql.DB) *EditionDB {

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS edition (
			id INTEGER PRIMARY KEY,
			artefactId int(11) NOT NULL,
			versionNo int(11) NOT NULL,
			state varchar(32) NOT NULL,
			title varchar(128) NOT NULL,
			reviewNote text NOT NULL,
			factCheckNote text NOT NULL,
			assignedTo int(11) NOT NULL DEFAULT '0',
			creator varchar(64) NOT NULL DEFAULT '',
			publisher varchar(64) NOT NULL DEFAULT '',
			archiver varchar(64) NOT NULL DEFAULT '',
			assignee varchar(64) NOT NULL DEFAULT '',
			ts_created int(11) NOT NULL,
			ts_updated int(11) NOT NULL,
			UNIQUE (artefactId, versionNo)
		);
		CREATE TABLE IF NOT EXISTS part (
			editionId int(11) NOT NULL,
			position int(11) NOT NULL,
			title varchar(128) NOT NULL,
			slug varchar(64) NOT NULL,
			body mediumtext NOT NULL,
			PRIMARY KEY (editionId, position)
		);`)
	if err != nil {
		panic(err)
	}

	var editionDB = &EditionDB{}
	editionDB.DB = db
	editionDB.clearParts = mustPrepare(db, "DELETE FROM part WHERE editionId = ?")
	editionDB.deleteEdition = mustPrepare(db, "DELETE FROM edition WHERE id = ?")
	editionDB.get = mustPrepare(db, "SELECT "+editionColumns+" FROM edition WHERE id = ? LIMIT 1")
	editionDB.getAssigned = mustPrepare(db, "SELECT "+editionColumns+" FROM edition WHERE assignedTo = ? ORDER BY ts_updated DESC")
	editionDB.getByArtefact = mustPrepare(db, "SELECT "+editionColumns+" FROM edition WHERE artefactId = ? ORDER BY versionNo DESC")
	editionDB.getParts = mustPrepare(db, "SELECT title, slug, body FROM part WHERE editionId = ? ORDER BY position")
	editionDB.insert = mustPrepare(db, "INSERT INTO edition (artefactId, versionNo, state, title, reviewNote, factCheckNote, ts_created, ts_updated) VALUES (?, ?, ?, ?, '', '', ?, ?)")
	editionDB.insertPart = mustPrepare(db, "INSERT INTO part (editionId, position, title, slug, body) VALUES (?, ?, ?, ?, ?)")
	editionDB.setAssignedTo = mustPrepare(db, "UPDATE edition SET assignedTo = ?, ts_updated = ? WHERE id = ?")
	editionDB.setNames = mustPrepare(db, "UPDATE edition SET creator = ?, publisher = ?, archiver = ?, assignee = ? WHERE id = ?")
	editionDB.setNotes = mustPrepare(db, "UPDATE edition SET reviewNote = ?, factCheckNote = ?, ts_updated = ? WHERE id = ?")
	editionDB.setState = mustPrepare(db, "UPDATE edition SET state = ?, ts_updated = ? WHERE id = ?")
	editionDB.updateContent = mustPrepare(db, "UPDATE edition SET title = ?, ts_updated = ? WHERE id = ?")
	return editionDB
}

// states are only ever written through core.State, a row failing this check
// was tampered with
func (e *edition) checkState() error {
	if !core.State(e.state).Valid() {
		return fmt.Errorf("edition %d: invalid state %q", e.id, e.state)
	}
	return nil
}

func (db *EditionDB) scan(row *sql.Row) (*edition, error) {
	var e = &edition{
		db: db,
	}
	if err := row.Scan(&e.id, &e.artefactID, &e.versionNo, &e.state, &e.title, &e.reviewNote, &e.factCheckNote, &e.assignedTo, &e.creator, &e.publisher, &e.archiver, &e.assignee, &e.tsCreated, &e.tsUpdated); err != nil {
		return e, err
	}
	return e, e.checkState()
}

func (db *EditionDB) scanAll(stmt *sql.Stmt, args ...interface{}) ([]core.DBEdition, error) {

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var editions = []core.DBEdition{}

	for rows.Next() {
		var e = &edition{
			db: db,
		}
		err := rows.Scan(&e.id, &e.artefactID, &e.versionNo, &e.state, &e.title, &e.reviewNote, &e.factCheckNote, &e.assignedTo, &e.creator, &e.publisher, &e.archiver, &e.assignee, &e.tsCreated, &e.tsUpdated)
		if err != nil {
			return nil, err
		}
		if err := e.checkState(); err != nil {
			return nil, err
		}
		editions = append(editions, e)
	}

	return editions, nil
}

func (db *EditionDB) DeleteEdition(e core.DBEdition) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Stmt(db.clearParts).Exec(e.ID()); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Stmt(db.deleteEdition).Exec(e.ID()); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (db *EditionDB) GetAssignedEditions(userID int) ([]core.DBEdition, error) {
	return db.scanAll(db.getAssigned, userID)
}

func (db *EditionDB) GetEdition(id int) (core.DBEdition, error) {
	return db.scan(db.get.QueryRow(id))
}

func (db *EditionDB) GetEditions(artefactID int) ([]core.DBEdition, error) {
	return db.scanAll(db.getByArtefact, artefactID)
}

func (db *EditionDB) InsertEdition(artefactID, versionNo int, state core.State, title string, parts []core.Part) (core.DBEdition, error) {

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}

	var now = time.Now().Unix()

	result, err := tx.Stmt(db.insert).Exec(artefactID, versionNo, string(state), title, now, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	var stmt = tx.Stmt(db.insertPart)
	for position, part := range parts {
		if _, err := stmt.Exec(id, position, part.Title, part.Slug, part.Body); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return db.GetEdition(int(id))
}

func (db *EditionDB) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (db *EditionDB) SetAssignedTo(e core.DBEdition, userID int) error {
	_, err := db.setAssignedTo.Exec(userID, time.Now().Unix(), e.ID())
	if err == nil {
		e.(*edition).assignedTo = userID
	}
	return err
}

func (db *EditionDB) SetNames(e core.DBEdition, creator, publisher, archiver, assignee string) error {
	_, err := db.setNames.Exec(creator, publisher, archiver, assignee, e.ID())
	if err == nil {
		var ed = e.(*edition)
		ed.creator = creator
		ed.publisher = publisher
		ed.archiver = archiver
		ed.assignee = assignee
	}
	return err
}

func (db *EditionDB) SetNotes(e core.DBEdition, reviewNote, factCheckNote string) error {
	_, err := db.setNotes.Exec(reviewNote, factCheckNote, time.Now().Unix(), e.ID())
	if err == nil {
		var ed = e.(*edition)
		ed.reviewNote = reviewNote
		ed.factCheckNote = factCheckNote
	}
	return err
}

func (db *EditionDB) SetState(e core.DBEdition, state core.State) error {
	_, err := db.setState.Exec(string(state), time.Now().Unix(), e.ID())
	if err == nil {
		e.(*edition).state = string(state)
	}
	return err
}

// UpdateContent replaces title and parts in one transaction. The immutability
// of published editions is enforced in core, not here.
func (db *EditionDB) UpdateContent(e core.DBEdition, title string, parts []core.Part) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Stmt(db.updateContent).Exec(title, time.Now().Unix(), e.ID()); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Stmt(db.clearParts).Exec(e.ID()); err != nil {
		tx.Rollback()
		return err
	}

	var stmt = tx.Stmt(db.insertPart)
	for position, part := range parts {
		if _, err := stmt.Exec(e.ID(), position, part.Title, part.Slug, part.Body); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	var ed = e.(*edition)
	ed.title = title
	ed.parts = parts
	ed.partsLoaded = true
	return nil
}
