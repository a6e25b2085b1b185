// Package search talks to the external search-index service.
package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wansing/editorial/core"
)

type document struct {
	Title            string `json:"title"`
	Link             string `json:"link"`
	Format           string `json:"format"`
	Description      string `json:"description"`
	IndexableContent string `json:"indexable_content"`
	Section          string `json:"section"`
	Subsection       string `json:"subsection"`
}

// Client implements core.SearchIndex over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Index(doc core.SearchDocument) error {

	body, err := json.Marshal(document{
		Title:            doc.Title,
		Link:             doc.Link,
		Format:           doc.Format,
		Description:      doc.Description,
		IndexableContent: doc.IndexableContent,
		Section:          doc.Section,
		Subsection:       doc.Subsection,
	})
	if err != nil {
		return err
	}

	resp, err := c.client.Post(c.baseURL+"/documents", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("index %s: status %s", doc.Link, resp.Status)
	}
	return nil
}

func (c *Client) Delete(link string) error {

	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/documents?link="+url.QueryEscape(link), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("delete %s: status %s", link, resp.Status)
	}
	return nil
}

// Null logs instead of indexing, for running without a search index.
type Null struct{}

func (Null) Index(doc core.SearchDocument) error {
	log.Printf("search index not configured, skipping index of %s", doc.Link)
	return nil
}

func (Null) Delete(link string) error {
	log.Printf("search index not configured, skipping delete of %s", link)
	return nil
}
