package core

// Request types of workflow actions. They double as the events of the
// transition table in state.go. An emergency publish records ActionPublish,
// there is no separate request type for it.
const (
	ActionCreate            = "create"
	ActionStartWork         = "start_work"
	ActionRequestReview     = "request_review"
	ActionApproveReview     = "approve_review"
	ActionRequestAmendments = "request_amendments"
	ActionRequestFactCheck  = "request_fact_check"
	ActionReceiveFactCheck  = "receive_fact_check"
	ActionApproveFactCheck  = "approve_fact_check"
	ActionPublish           = "publish"
	ActionArchive           = "archive"
	ActionAssign            = "assign"
	ActionNote              = "note"
)

// ActionEmergencyPublish is an event name only, never a stored request type:
// an emergency publish records ActionPublish.
const ActionEmergencyPublish = "emergency_publish"

type DBAction interface {
	ID() int
	EditionID() int
	RequesterID() int
	Requester() string // denormalized requester name
	RequestType() string
	Comment() string
	Diff() string
	TsCreated() int64
}

// An ActionDB stores the append-only audit log of an edition. GetActions must
// return the records in insertion order, which is authoritative regardless of
// wall-clock ties.
type ActionDB interface {
	DeleteActions(editionID int) error
	GetActions(editionID int) ([]DBAction, error)
	InsertAction(editionID int, requesterID int, requesterName, requestType, comment, diff string) (DBAction, error)
}

// NewAction appends an action record to the edition's audit log and then
// recomputes the denormalized actor names on the edition.
func (c *CoreDB) NewAction(e *Edition, requester *User, requestType, comment, diff string) (DBAction, error) {
	var action, err = c.ActionDB.InsertAction(e.ID(), requester.ID(), requester.Name(), requestType, comment, diff)
	if err != nil {
		return nil, err
	}
	return action, c.denormalizeUsers(e)
}

// AddNote records a free-standing note. Notes never affect the workflow state
// and are skipped by LatestStatusAction.
func (c *CoreDB) AddNote(e *Edition, requester *User, comment string) (DBAction, error) {
	return c.NewAction(e, requester, ActionNote, comment, "")
}

// denormalizeUsers recomputes the creator, publisher, archiver and assignee
// names which are cached on the edition for display. It must be called after
// every action append and after every assignment.
func (c *CoreDB) denormalizeUsers(e *Edition) error {

	actions, err := c.GetActions(e.ID())
	if err != nil {
		return err
	}

	var creator, publisher, archiver string
	for _, action := range actions {
		switch action.RequestType() {
		case ActionCreate:
			if creator == "" {
				creator = action.Requester()
			}
		case ActionPublish:
			publisher = action.Requester()
		case ActionArchive:
			archiver = action.Requester()
		}
	}

	var assignee string
	if id := e.AssignedToID(); id != 0 {
		user, err := c.UserDB.GetUser(id)
		if err != nil {
			return err
		}
		assignee = user.Name()
	}

	return c.EditionDB.SetNames(e.DBEdition, creator, publisher, archiver, assignee)
}
