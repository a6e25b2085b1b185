package sqldb

import (
	"database/sql"
	"time"

	"github.com/wansing/editorial/core"
)

type action struct {
	id          int
	editionID   int
	requesterID int
	requester   string
	requestType string
	comment     string
	diff        string
	tsCreated   int64
}

func (a *action) ID() int {
	return a.id
}

func (a *action) EditionID() int {
	return a.editionID
}

func (a *action) RequesterID() int {
	return a.requesterID
}

func (a *action) Requester() string {
	return a.requester
}

func (a *action) RequestType() string {
	return a.requestType
}

func (a *action) Comment() string {
	return a.comment
}

func (a *action) Diff() string {
	return a.diff
}

func (a *action) TsCreated() int64 {
	return a.tsCreated
}

type ActionDB struct {
	*sql.DB
	clear  *sql.Stmt
	get    *sql.Stmt
	insert *sql.Stmt
}

func NewActionDB(db *sql.DB) *ActionDB {

	// the autoincrement id is the insertion order, which is authoritative
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS action (
			id INTEGER PRIMARY KEY,
			editionId int(11) NOT NULL,
			requesterId int(11) NOT NULL,
			requester varchar(64) NOT NULL,
			requestType varchar(32) NOT NULL,
			comment text NOT NULL,
			diff mediumtext NOT NULL,
			ts_created int(11) NOT NULL
		);`)
	if err != nil {
		panic(err)
	}

	var actionDB = &ActionDB{}
	actionDB.DB = db
	actionDB.clear = mustPrepare(db, "DELETE FROM action WHERE editionId = ?")
	actionDB.get = mustPrepare(db, "SELECT id, editionId, requesterId, requester, requestType, comment, diff, ts_created FROM action WHERE editionId = ? ORDER BY id")
	actionDB.insert = mustPrepare(db, "INSERT INTO action (editionId, requesterId, requester, requestType, comment, diff, ts_created) VALUES (?, ?, ?, ?, ?, ?, ?)")
	return actionDB
}

func (db *ActionDB) DeleteActions(editionID int) error {
	_, err := db.clear.Exec(editionID)
	return err
}

func (db *ActionDB) GetActions(editionID int) ([]core.DBAction, error) {

	rows, err := db.get.Query(editionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions = []core.DBAction{}

	for rows.Next() {
		var a = &action{}
		err := rows.Scan(&a.id, &a.editionID, &a.requesterID, &a.requester, &a.requestType, &a.comment, &a.diff, &a.tsCreated)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	return actions, nil
}

func (db *ActionDB) InsertAction(editionID, requesterID int, requesterName, requestType, comment, diff string) (core.DBAction, error) {

	var a = &action{
		editionID:   editionID,
		requesterID: requesterID,
		requester:   requesterName,
		requestType: requestType,
		comment:     comment,
		diff:        diff,
		tsCreated:   time.Now().Unix(),
	}

	result, err := db.insert.Exec(a.editionID, a.requesterID, a.requester, a.requestType, a.comment, a.diff, a.tsCreated)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	a.id = int(id)

	return a, nil
}
