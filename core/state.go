package core

// A State is the workflow state of an edition.
type State string

const (
	LinedUp           State = "lined_up"
	Draft             State = "draft"
	InReview          State = "in_review"
	AmendsNeeded      State = "amends_needed"
	FactCheck         State = "fact_check"
	FactCheckReceived State = "fact_check_received"
	Ready             State = "ready"
	Published         State = "published"
	Archived          State = "archived"
)

func (s State) Valid() bool {
	switch s {
	case LinedUp, Draft, InReview, AmendsNeeded, FactCheck, FactCheckReceived, Ready, Published, Archived:
		return true
	}
	return false
}

// InProgress returns whether the state is a working state before publication.
// An in-progress edition may exist alongside a published sibling.
func (s State) InProgress() bool {
	switch s {
	case LinedUp, Draft, InReview, AmendsNeeded, FactCheck, FactCheckReceived, Ready:
		return true
	}
	return false
}

func (s State) String() string {
	return string(s)
}

// transitions maps a request type and the current state to the next state.
// Publishing and archiving the superseded sibling have additional rules, see
// publish.go. A combination which is not listed here is an invalid transition.
var transitions = map[string]map[State]State{
	ActionStartWork:         {LinedUp: Draft},
	ActionRequestReview:     {Draft: InReview, AmendsNeeded: InReview},
	ActionApproveReview:     {InReview: Ready},
	ActionRequestAmendments: {InReview: AmendsNeeded, FactCheckReceived: AmendsNeeded},
	ActionRequestFactCheck:  {InReview: FactCheck, Ready: FactCheck},
	ActionReceiveFactCheck:  {FactCheck: FactCheckReceived},
	ActionApproveFactCheck:  {FactCheckReceived: Ready},
	ActionPublish:           {Ready: Published},
	ActionArchive: {
		LinedUp:           Archived,
		Draft:             Archived,
		InReview:          Archived,
		AmendsNeeded:      Archived,
		FactCheck:         Archived,
		FactCheckReceived: Archived,
		Ready:             Archived,
	},
}

func nextState(requestType string, from State) (State, bool) {
	var to, ok = transitions[requestType][from]
	return to, ok
}
