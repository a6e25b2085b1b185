package core

import "fmt"

// A DBUser is an editorial staff member. Authentication is not this system's
// business, it only consumes an already-authenticated actor identity.
type DBUser interface {
	ID() int
	Name() string
}

type UserDB interface {
	GetAllUsers(limit, offset int) ([]DBUser, error)
	GetUser(id int) (DBUser, error)
	GetUserByName(name string) (DBUser, error)
	InsertUser(name string) (DBUser, error)
	IsNotFound(err error) bool
}

type User struct {
	DBUser
	db *CoreDB
}

func (c *CoreDB) GetUser(id int) (*User, error) {
	var dbUser, err = c.UserDB.GetUser(id)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return &User{DBUser: dbUser, db: c}, nil
}

func (c *CoreDB) GetUserByName(name string) (*User, error) {
	var dbUser, err = c.UserDB.GetUserByName(name)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", name, err)
	}
	return &User{DBUser: dbUser, db: c}, nil
}

// Users returns registered users, ordered by name.
func (c *CoreDB) Users(limit, offset int) ([]*User, error) {
	var dbUsers, err = c.UserDB.GetAllUsers(limit, offset)
	if err != nil {
		return nil, err
	}
	var users = make([]*User, len(dbUsers))
	for i := range dbUsers {
		users[i] = &User{DBUser: dbUsers[i], db: c}
	}
	return users, nil
}

func (c *CoreDB) CreateUser(name string) (*User, error) {
	var dbUser, err = c.UserDB.InsertUser(name)
	if err != nil {
		return nil, err
	}
	return &User{DBUser: dbUser, db: c}, nil
}
