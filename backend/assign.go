package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func assign(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	var body struct {
		Assignee string `json:"assignee"`
	}
	if err := readBody(req, &body); err != nil {
		return err
	}

	assignee, err := ctx.db.GetUserByName(body.Assignee)
	if err != nil {
		return err
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	if err := ctx.db.Assign(edition, ctx.User, assignee); err != nil {
		return err
	}

	return respondEdition(w, edition, nil)
}
