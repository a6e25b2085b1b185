package backend

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

const usersPerPage = 100

type userView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// listUsers returns registered users ordered by name, paged with ?page=N
// starting at 0.
func listUsers(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {

	var page, _ = strconv.Atoi(req.URL.Query().Get("page"))
	if page < 0 {
		page = 0
	}

	users, err := ctx.db.Users(usersPerPage, page*usersPerPage)
	if err != nil {
		return err
	}

	var views = make([]userView, len(users))
	for i, user := range users {
		views[i] = userView{ID: user.ID(), Name: user.Name()}
	}
	return respond(w, views)
}
