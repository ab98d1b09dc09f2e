package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paperwatch/paperwatch/internal/models"
)

const apiBaseURL = "https://export.arxiv.org/api/query"

// Categories is the full arXiv computer-science taxonomy, searched one
// category at a time.
var Categories = []string{
	"cs.AI", "cs.AR", "cs.CC", "cs.CE", "cs.CG", "cs.CL", "cs.CR", "cs.CV",
	"cs.CY", "cs.DB", "cs.DC", "cs.DL", "cs.DM", "cs.DS", "cs.ET", "cs.FL",
	"cs.GL", "cs.GR", "cs.GT", "cs.HC", "cs.IR", "cs.IT", "cs.LG", "cs.LO",
	"cs.MA", "cs.MM", "cs.MS", "cs.NA", "cs.NE", "cs.NI", "cs.OH", "cs.OS",
	"cs.PF", "cs.PL", "cs.RO", "cs.SC", "cs.SD", "cs.SE", "cs.SI", "cs.SY",
}

// Client queries the arXiv API for recent submissions.
type Client struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewClient() *Client {
	return &Client{
		baseURL: apiBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

// Search returns the single most recently submitted paper whose title or
// abstract contains the keyword, restricted to one category and to a
// one-day window 7-8 days in the past. arXiv ingestion lags behind
// submission, hence the offset.
func (c *Client) Search(ctx context.Context, keyword, category string) ([]models.Paper, error) {
	start, end := searchWindow(c.now())
	query := fmt.Sprintf("(ti:%s OR abs:%s) AND cat:%s AND submittedDate:[%s TO %s]",
		keyword, keyword, category, start, end)

	params := url.Values{}
	params.Set("search_query", query)
	params.Set("max_results", "1")
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned status %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse atom feed: %w", err)
	}

	papers := make([]models.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		papers = append(papers, parseAtomEntry(entry))
	}

	return papers, nil
}

// searchWindow returns the [today-8d, today-7d] range as YYYYMMDD strings.
func searchWindow(now time.Time) (start, end string) {
	latest := now.AddDate(0, 0, -7)
	earliest := latest.AddDate(0, 0, -1)
	return earliest.Format("20060102"), latest.Format("20060102")
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
}

func parseAtomEntry(entry atomEntry) models.Paper {
	// Entry IDs look like http://arxiv.org/abs/2301.00001v1; keep the full
	// URL as the canonical reference and strip the prefix/version for the ID.
	paperID := entry.ID
	if idx := strings.LastIndex(entry.ID, "/abs/"); idx >= 0 {
		paperID = entry.ID[idx+5:]
		if vIdx := strings.LastIndex(paperID, "v"); vIdx > 0 {
			paperID = paperID[:vIdx]
		}
	}

	published, _ := time.Parse(time.RFC3339, entry.Published)

	return models.Paper{
		ID:          paperID,
		Title:       strings.TrimSpace(entry.Title),
		Abstract:    strings.TrimSpace(entry.Summary),
		URL:         entry.ID,
		PublishedAt: published,
	}
}
