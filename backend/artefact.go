package backend

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/editorial/core"
)

func createArtefact(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {

	var body struct {
		Slug         string `json:"slug"`
		Kind         string `json:"kind"`
		Name         string `json:"name"`
		Section      string `json:"section"`
		Subsection   string `json:"subsection"`
		ExternalLink string `json:"external_link"`
	}
	if err := readBody(req, &body); err != nil {
		return err
	}

	artefact, err := ctx.db.CreateArtefact(body.Slug, body.Kind, body.Name, body.Section, body.Subsection, body.ExternalLink)
	if err != nil {
		return err
	}

	return respond(w, newArtefactView(artefact))
}

func getArtefact(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	artefact, err := ctx.db.GetArtefact(id)
	if err != nil {
		return err
	}

	editions, err := artefact.Editions()
	if err != nil {
		return err
	}
	var editionViews = make([]editionView, len(editions))
	for i, e := range editions {
		editionViews[i], err = newEditionView(e, false)
		if err != nil {
			return err
		}
	}

	return respond(w, struct {
		artefactView
		Editions []editionView `json:"editions"`
	}{newArtefactView(artefact), editionViews})
}

// syncArtefactName is called by the metadata-sync collaborator. Published
// editions keep their title.
func syncArtefactName(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := readBody(req, &body); err != nil {
		return err
	}

	artefact, err := ctx.db.GetArtefact(id)
	if err != nil {
		return err
	}

	if err := ctx.db.SyncName(artefact, body.Name); err != nil {
		return err
	}

	return respond(w, newArtefactView(artefact))
}

func bypassPublish(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	artefact, err := ctx.db.GetArtefact(id)
	if err != nil {
		return err
	}

	var warning string
	if err := ctx.db.BypassPublish(artefact); err != nil {
		var sync *core.SyncError
		if !errors.As(err, &sync) {
			return err
		}
		warning = sync.Error()
	}

	return respond(w, map[string]string{"warning": warning})
}
