package backend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/editorial/core"
)

// transition drives the edition state machine. The destroy endpoint is
// separate because destruction is not a state.
func transition(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := intParam(params, "id")
	if err != nil {
		return err
	}

	var body struct {
		Comment string `json:"comment"`
	}
	if req.ContentLength > 0 {
		if err := readBody(req, &body); err != nil {
			return err
		}
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	var syncErr error
	switch event := params.ByName("event"); event {
	case core.ActionStartWork:
		err = ctx.db.StartWork(edition, ctx.User)
	case core.ActionRequestReview:
		err = ctx.db.RequestReview(edition, ctx.User, body.Comment)
	case core.ActionApproveReview:
		err = ctx.db.ApproveReview(edition, ctx.User, body.Comment)
	case core.ActionRequestAmendments:
		// self-review refusal is a soft failure, not an error
		var ok bool
		ok, err = ctx.db.RequestAmendments(edition, ctx.User, body.Comment)
		if err == nil && !ok {
			return respond(w, map[string]interface{}{
				"ok":     false,
				"reason": "requester reviewed this edition themselves",
			})
		}
	case core.ActionRequestFactCheck:
		err = ctx.db.RequestFactCheck(edition, ctx.User, body.Comment)
	case core.ActionReceiveFactCheck:
		err = ctx.db.ReceiveFactCheck(edition, ctx.User, body.Comment)
	case core.ActionApproveFactCheck:
		err = ctx.db.ApproveFactCheck(edition, ctx.User, body.Comment)
	case core.ActionPublish:
		syncErr = ctx.db.Publish(edition, ctx.User, body.Comment)
	case core.ActionEmergencyPublish:
		syncErr = ctx.db.EmergencyPublish(edition, ctx.User, body.Comment)
	case core.ActionArchive:
		err = ctx.db.Archive(edition, ctx.User, body.Comment)
	default:
		return fmt.Errorf("unknown event %s", event)
	}

	if err != nil {
		return err
	}
	if syncErr != nil {
		var sync *core.SyncError
		if !errors.As(syncErr, &sync) {
			return syncErr // rejected before any local mutation
		}
	}

	return respondEdition(w, edition, syncErr)
}
