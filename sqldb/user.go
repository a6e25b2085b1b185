package sqldb

import (
	"database/sql"
	"errors"

	"github.com/wansing/editorial/core"
)

type user struct {
	id   int
	name string
}

func (u *user) ID() int {
	return u.id
}

func (u *user) Name() string {
	return u.name
}

type UserDB struct {
	*sql.DB
	get       *sql.Stmt
	getAll    *sql.Stmt
	getByName *sql.Stmt
	insert    *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS user (
			id INTEGER PRIMARY KEY,
			name varchar(64) NOT NULL,
			UNIQUE (name)
		);`)
	if err != nil {
		panic(err)
	}

	var userDB = &UserDB{}
	userDB.DB = db
	userDB.get = mustPrepare(db, "SELECT id, name FROM user WHERE id = ? LIMIT 1")
	userDB.getAll = mustPrepare(db, "SELECT id, name FROM user ORDER BY name LIMIT ? OFFSET ?")
	userDB.getByName = mustPrepare(db, "SELECT id, name FROM user WHERE name = ? LIMIT 1")
	userDB.insert = mustPrepare(db, "INSERT INTO user (name) VALUES (?)")
	return userDB
}

func (db *UserDB) GetAllUsers(limit, offset int) ([]core.DBUser, error) {

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users = []core.DBUser{}

	for rows.Next() {
		var u = &user{}
		if err = rows.Scan(&u.id, &u.name); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

func (db *UserDB) GetUser(id int) (core.DBUser, error) {
	var u = &user{}
	return u, db.get.QueryRow(id).Scan(&u.id, &u.name)
}

func (db *UserDB) GetUserByName(name string) (core.DBUser, error) {
	var u = &user{}
	return u, db.getByName.QueryRow(name).Scan(&u.id, &u.name)
}

func (db *UserDB) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (db *UserDB) InsertUser(name string) (core.DBUser, error) {
	result, err := db.insert.Exec(name)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &user{id: int(id), name: name}, nil
}
