// Package backend is the JSON API consumed by the editorial web UI.
// Authentication happens upstream, the proxy passes the acting user's name in
// the X-Editorial-User header.
package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/editorial/core"
)

var errNoActor = errors.New("missing X-Editorial-User header")

type context struct {
	User *core.User // nil if the endpoint does not require an actor
	db   *core.CoreDB
}

type handler func(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error

func middleware(db *core.CoreDB, requireActor bool, f handler) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var ctx = &context{db: db}

		if name := req.Header.Get("X-Editorial-User"); name != "" {
			user, err := db.GetUserByName(name)
			if err != nil {
				httpError(w, http.StatusForbidden, err)
				return
			}
			ctx.User = user
		} else if requireActor {
			httpError(w, http.StatusForbidden, errNoActor)
			return
		}

		if err := f(w, req, ctx, params); err != nil {
			httpError(w, statusCode(ctx.db, err), err)
		}
	}
}

// statusCode distinguishes rejected operations from operations which
// succeeded locally but failed to sync externally; handlers deal with the
// latter themselves, see respondEdition.
func statusCode(db *core.CoreDB, err error) int {
	switch {
	case db.EditionDB.IsNotFound(err) || db.ArtefactDB.IsNotFound(err) || db.UserDB.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidTransition) || errors.Is(err, core.ErrPublishConflict):
		return http.StatusConflict
	case errors.Is(err, core.ErrEditionImmutable) || errors.Is(err, core.ErrCannotDeletePublished):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func httpError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

func readBody(req *http.Request, v interface{}) error {
	defer req.Body.Close()
	return json.NewDecoder(req.Body).Decode(v)
}

func intParam(params httprouter.Params, name string) (int, error) {
	return strconv.Atoi(params.ByName(name))
}

func NewBackendRouter(db *core.CoreDB) http.Handler {

	var router = httprouter.New()

	router.POST("/artefacts", middleware(db, true, createArtefact))
	router.GET("/artefact/:id", middleware(db, false, getArtefact))
	router.POST("/artefact/:id/name", middleware(db, true, syncArtefactName))
	router.POST("/artefact/:id/editions", middleware(db, true, createEdition))
	router.POST("/artefact/:id/bypass-publish", middleware(db, true, bypassPublish))

	router.GET("/users", middleware(db, false, listUsers))

	router.GET("/editions", middleware(db, false, assignedEditions))
	router.GET("/edition/:id", middleware(db, false, getEdition))
	router.POST("/edition/:id/content", middleware(db, true, editContent))
	router.POST("/edition/:id/notes", middleware(db, true, editNotes))
	router.POST("/edition/:id/clone", middleware(db, true, cloneEdition))
	router.POST("/edition/:id/assign", middleware(db, true, assign))
	router.POST("/edition/:id/note", middleware(db, true, addNote))
	router.POST("/edition/:id/transition/:event", middleware(db, true, transition))
	router.DELETE("/edition/:id", middleware(db, true, destroy))

	router.POST("/fact-check-mail", middleware(db, true, receiveFactCheckMail))

	return router
}
