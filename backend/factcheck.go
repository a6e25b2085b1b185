package backend

import (
	"errors"
	"io"
	"net/http"
	"net/mail"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/editorial/factcheck"
)

var errNoFactCheckRecipient = errors.New("no fact-check recipient address in mail")

// receiveFactCheckMail ingests a raw fact-check reply mail. The edition is
// identified by the reply's recipient address. An out-of-office answer is
// acknowledged but does not drive the workflow.
func receiveFactCheckMail(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {

	defer req.Body.Close()
	message, err := mail.ReadMessage(req.Body)
	if err != nil {
		return err
	}
	var reply = factcheck.MailMessage{Message: message}

	if factcheck.OutOfOffice(reply) {
		return respond(w, map[string]interface{}{
			"ok":     false,
			"reason": "out-of-office reply",
		})
	}

	id, ok := factcheck.EditionID(reply)
	if !ok {
		return errNoFactCheckRecipient
	}

	edition, err := ctx.db.GetEdition(id)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(message.Body)
	if err != nil {
		return err
	}

	if err := ctx.db.ReceiveFactCheck(edition, ctx.User, string(body)); err != nil {
		return err
	}

	return respondEdition(w, edition, nil)
}
