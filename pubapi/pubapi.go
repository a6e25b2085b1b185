// Package pubapi talks to the external publishing-api service.
package pubapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/wansing/editorial/core"
	"github.com/wansing/editorial/present"
)

// Client implements core.PublishingAPI over HTTP. Content is addressed by
// artefact id; the service is expected to treat every call as idempotent.
type Client struct {
	baseURL      string
	renderingApp string
	client       *http.Client
}

func NewClient(baseURL, renderingApp string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		renderingApp: renderingApp,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) do(method, path string, payload interface{}) error {

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %s", method, path, resp.Status)
	}
	return nil
}

func (c *Client) putContent(e *core.Edition) error {
	payload, err := present.ForEdition(e, c.renderingApp)
	if err != nil {
		return err
	}
	return c.do(http.MethodPut, fmt.Sprintf("/v2/content/%d", e.ArtefactID()), payload)
}

func (c *Client) DiscardDraft(artefactID int) error {
	return c.do(http.MethodPost, fmt.Sprintf("/v2/content/%d/discard-draft", artefactID), nil)
}

// UpdateDraft replaces the externally held draft representation without
// touching the workflow state.
func (c *Client) UpdateDraft(e *core.Edition) error {
	return c.putContent(e)
}

// Publish promotes new content live.
func (c *Client) Publish(e *core.Edition) error {
	if err := c.putContent(e); err != nil {
		return err
	}
	return c.do(http.MethodPost, fmt.Sprintf("/v2/content/%d/publish", e.ArtefactID()), map[string]string{"update_type": "major"})
}

// Republish resubmits unchanged published content.
func (c *Client) Republish(e *core.Edition) error {
	if err := c.putContent(e); err != nil {
		return err
	}
	return c.do(http.MethodPost, fmt.Sprintf("/v2/content/%d/publish", e.ArtefactID()), map[string]string{"update_type": "republish"})
}

// Null logs instead of submitting, for running without a publishing api.
type Null struct{}

func (Null) DiscardDraft(artefactID int) error {
	log.Printf("publishing api not configured, skipping discard draft of artefact %d", artefactID)
	return nil
}

func (Null) UpdateDraft(e *core.Edition) error {
	log.Printf("publishing api not configured, skipping update draft of edition %d", e.ID())
	return nil
}

func (Null) Publish(e *core.Edition) error {
	log.Printf("publishing api not configured, skipping publish of edition %d", e.ID())
	return nil
}

func (Null) Republish(e *core.Edition) error {
	log.Printf("publishing api not configured, skipping republish of edition %d", e.ID())
	return nil
}
