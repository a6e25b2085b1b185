package backend

import (
	"errors"
	"net/http"

	"github.com/wansing/editorial/core"
)

type artefactView struct {
	ID           int    `json:"id"`
	Slug         string `json:"slug"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	Section      string `json:"section,omitempty"`
	Subsection   string `json:"subsection,omitempty"`
	ExternalLink string `json:"external_link,omitempty"`
}

type partView struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Body  string `json:"body"`
}

type actionView struct {
	Requester   string `json:"requester"`
	RequestType string `json:"request_type"`
	Comment     string `json:"comment,omitempty"`
	Diff        string `json:"diff,omitempty"`
	TsCreated   int64  `json:"ts_created"`
}

type editionView struct {
	ID            int        `json:"id"`
	ArtefactID    int        `json:"artefact_id"`
	VersionNo     int        `json:"version_number"`
	State         string     `json:"state"`
	Title         string     `json:"title"`
	Parts         []partView `json:"parts"`
	ReviewNote    string     `json:"review_note,omitempty"`
	FactCheckNote string     `json:"fact_check_note,omitempty"`
	Creator       string     `json:"creator,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	Archiver      string     `json:"archiver,omitempty"`
	Assignee      string     `json:"assignee,omitempty"`

	// what the UI may offer next
	CanStartWork        bool `json:"can_start_work"`
	CanRequestReview    bool `json:"can_request_review"`
	CanApproveReview    bool `json:"can_approve_review"`
	CanRequestFactCheck bool `json:"can_request_fact_check"`
	CanPublish          bool `json:"can_publish"`
	CanEmergencyPublish bool `json:"can_emergency_publish"`
	SiblingInProgress   bool `json:"sibling_in_progress"`

	Actions []actionView `json:"actions,omitempty"`
	Warning string       `json:"warning,omitempty"`
}

func newArtefactView(a *core.Artefact) artefactView {
	return artefactView{
		ID:           a.ID(),
		Slug:         a.Slug(),
		Kind:         a.Kind(),
		Name:         a.Name(),
		Section:      a.Section(),
		Subsection:   a.Subsection(),
		ExternalLink: a.ExternalLink(),
	}
}

func newEditionView(e *core.Edition, withActions bool) (editionView, error) {

	parts, err := e.Parts()
	if err != nil {
		return editionView{}, err
	}
	var partViews = make([]partView, len(parts))
	for i, part := range parts {
		partViews[i] = partView{Title: part.Title, Slug: part.Slug, Body: part.Body}
	}

	siblingInProgress, err := e.HasSiblingInProgress()
	if err != nil {
		return editionView{}, err
	}

	var view = editionView{
		ID:            e.ID(),
		ArtefactID:    e.ArtefactID(),
		VersionNo:     e.VersionNo(),
		State:         e.State().String(),
		Title:         e.Title(),
		Parts:         partViews,
		ReviewNote:    e.ReviewNote(),
		FactCheckNote: e.FactCheckNote(),
		Creator:       e.Creator(),
		Publisher:     e.Publisher(),
		Archiver:      e.Archiver(),
		Assignee:      e.Assignee(),

		CanStartWork:        e.CanStartWork(),
		CanRequestReview:    e.CanRequestReview(),
		CanApproveReview:    e.CanApproveReview(),
		CanRequestFactCheck: e.CanRequestFactCheck(),
		CanPublish:          e.CanPublish(),
		CanEmergencyPublish: e.CanEmergencyPublish(),
		SiblingInProgress:   siblingInProgress,
	}

	if withActions {
		actions, err := e.Actions()
		if err != nil {
			return editionView{}, err
		}
		view.Actions = make([]actionView, len(actions))
		for i, action := range actions {
			view.Actions[i] = actionView{
				Requester:   action.Requester(),
				RequestType: action.RequestType(),
				Comment:     action.Comment(),
				Diff:        action.Diff(),
				TsCreated:   action.TsCreated(),
			}
		}
	}

	return view, nil
}

// respondEdition writes the edition. A *core.SyncError means the local
// transition committed but external systems need reconciliation; that is a
// warning on a successful response, not a rejection.
func respondEdition(w http.ResponseWriter, e *core.Edition, syncErr error) error {

	view, err := newEditionView(e, false)
	if err != nil {
		return err
	}

	if syncErr != nil {
		var sync *core.SyncError
		if !errors.As(syncErr, &sync) {
			return syncErr
		}
		view.Warning = sync.Error()
	}

	return respond(w, view)
}
