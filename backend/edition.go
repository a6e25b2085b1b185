package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/editorial/core"
)

func partsFromViews(views []partView) []core.Part {
	var parts = make([]core.Part, len(views))
	for i, v := range views {
		parts[i] = core.Part{Title: v.Title, Slug: v.Slug, Body: v.Body}
	}
	return parts
}

func createEdition(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	var body struct {
		Parts []partView `json:"parts"`
	}
	if err := readBody(req, &body); err != nil {
		return err
	}

	artefact, err := ctx.db.GetArtefact(id)
	if err != nil {
		return err
	}

	edition, err := ctx.db.CreateEdition(artefact, ctx.User, partsFromViews(body.Parts))
	if err != nil {
		return err
	}

	return respondEdition(w, edition, nil)
}

func getEdition(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	view, err := newEditionView(edition, true)
	if err != nil {
		return err
	}
	return respond(w, view)
}

func editContent(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	var body struct {
		Title string     `json:"title"`
		Parts []partView `json:"parts"`
	}
	if err := readBody(req, &body); err != nil {
		return err
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	if err := ctx.db.EditContent(edition, body.Title, partsFromViews(body.Parts)); err != nil {
		return err
	}

	return respondEdition(w, edition, nil)
}

func editNotes(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	var body struct {
		ReviewNote    string `json:"review_note"`
		FactCheckNote string `json:"fact_check_note"`
	}
	if err := readBody(req, &body); err != nil {
		return err
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	if err := ctx.db.EditNotes(edition, body.ReviewNote, body.FactCheckNote); err != nil {
		return err
	}

	return respondEdition(w, edition, nil)
}

func cloneEdition(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	clone, err := ctx.db.CloneEdition(edition)
	if err != nil {
		return err
	}

	return respondEdition(w, clone, nil)
}

func addNote(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	var body struct {
		Comment string `json:"comment"`
	}
	if err := readBody(req, &body); err != nil {
		return err
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	if _, err := ctx.db.AddNote(edition, ctx.User, body.Comment); err != nil {
		return err
	}

	return respondEdition(w, edition, nil)
}

func destroy(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	if err := ctx.db.DestroyEdition(edition); err != nil {
		return err
	}

	return respond(w, map[string]bool{"destroyed": true})
}

// assignedEditions lists editions by assignee: ?assigned_to=<name>, or
// ?assigned_to=nobody for unassigned editions.
func assignedEditions(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {

	var user *core.User
	if name := req.URL.Query().Get("assigned_to"); name != "" && name != "nobody" {
		var err error
		user, err = ctx.db.GetUserByName(name)
		if err != nil {
			return err
		}
	}

	editions, err := ctx.db.AssignedEditions(user)
	if err != nil {
		return err
	}

	var views = make([]editionView, len(editions))
	for i, e := range editions {
		views[i], err = newEditionView(e, false)
		if err != nil {
			return err
		}
	}
	return respond(w, views)
}
