package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	defaultDataBase     = "https://data.sec.gov"
	defaultArchivesBase = "https://www.sec.gov"

	maxDocumentBytes = 32 << 20
)

// ipoForms are the registration and prospectus form types surfaced by the
// filings endpoint.
var ipoForms = map[string]bool{
	"S-1":   true,
	"S-1/A": true,
	"F-1":   true,
	"F-1/A": true,
	"424B4": true,
}

// Company is one entry from the SEC ticker mapping.
type Company struct {
	CIK    string `json:"cik"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// Filing is a single filing denormalized from the submissions parallel arrays.
type Filing struct {
	AccessionNumber string `json:"accessionNumber"`
	FilingDate      string `json:"filingDate"`
	FormType        string `json:"formType"`
	PrimaryDocument string `json:"primaryDocument"`
	CompanyName     string `json:"companyName"`
	CIK             string `json:"cik"`
}

// submissionsResponse mirrors the data.sec.gov submissions payload. Filing
// attributes arrive as parallel arrays.
type submissionsResponse struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// Client talks to SEC EDGAR. All requests pass through the shared rate
// limiter and carry the configured User-Agent, which the SEC requires.
type Client struct {
	httpClient   *http.Client
	limiter      *RateLimiter
	indexParser  IndexParser
	userAgent    string
	dataBase     string
	archivesBase string
	maxBytes     int64
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the SEC endpoints, for tests.
func WithBaseURLs(dataBase, archivesBase string) Option {
	return func(c *Client) {
		c.dataBase = strings.TrimRight(dataBase, "/")
		c.archivesBase = strings.TrimRight(archivesBase, "/")
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithIndexParser(p IndexParser) Option {
	return func(c *Client) { c.indexParser = p }
}

// WithMaxDocumentBytes overrides the response size cap.
func WithMaxDocumentBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

func NewClient(userAgent string, interval time.Duration, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		limiter:      NewRateLimiter(interval),
		indexParser:  &GoqueryIndexParser{},
		userAgent:    userAgent,
		dataBase:     defaultDataBase,
		archivesBase: defaultArchivesBase,
		maxBytes:     maxDocumentBytes,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PadCIK zero-pads a CIK to the 10 digits the submissions endpoint expects.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))
}

// IPOFilings returns the company's recent IPO-related filings, newest first
// as the SEC orders them.
func (c *Client) IPOFilings(ctx context.Context, cik string) (string, []Filing, error) {
	padded := PadCIK(cik)
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.dataBase, padded)

	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return "", nil, fmt.Errorf("fetch submissions: %w", err)
	}

	var sub submissionsResponse
	if err := json.Unmarshal(body, &sub); err != nil {
		return "", nil, fmt.Errorf("parse submissions: %w", err)
	}

	recent := sub.Filings.Recent
	var filings []Filing
	for i := range recent.AccessionNumber {
		if i >= len(recent.Form) || i >= len(recent.FilingDate) {
			break
		}
		if !ipoForms[recent.Form[i]] {
			continue
		}
		doc := ""
		if i < len(recent.PrimaryDocument) {
			doc = recent.PrimaryDocument[i]
		}
		filings = append(filings, Filing{
			AccessionNumber: recent.AccessionNumber[i],
			FilingDate:      recent.FilingDate[i],
			FormType:        recent.Form[i],
			PrimaryDocument: doc,
			CompanyName:     sub.Name,
			CIK:             padded,
		})
	}
	return sub.Name, filings, nil
}

// SearchCompanies matches q against ticker symbols and company names in the
// SEC ticker mapping. Matching is a case-insensitive substring test.
func (c *Client) SearchCompanies(ctx context.Context, q string, limit int) ([]Company, error) {
	url := c.archivesBase + "/files/company_tickers.json"
	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("fetch ticker mapping: %w", err)
	}

	var mapping map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &mapping); err != nil {
		return nil, fmt.Errorf("parse ticker mapping: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return nil, nil
	}

	var matches []Company
	for _, entry := range mapping {
		if strings.Contains(strings.ToLower(entry.Ticker), needle) ||
			strings.Contains(strings.ToLower(entry.Title), needle) {
			matches = append(matches, Company{
				CIK:    fmt.Sprintf("%010d", entry.CIK),
				Ticker: entry.Ticker,
				Name:   entry.Title,
			})
		}
	}

	// Exact ticker hits first, then alphabetical, so results are stable
	// across the unordered map iteration.
	sort.Slice(matches, func(i, j int) bool {
		ei := strings.EqualFold(matches[i].Ticker, needle)
		ej := strings.EqualFold(matches[j].Ticker, needle)
		if ei != ej {
			return ei
		}
		return matches[i].Name < matches[j].Name
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// FetchProspectus downloads the primary prospectus document for a filing.
// It fetches the accession's index page, locates the primary .htm document,
// and returns the raw HTML along with the resolved document URL.
func (c *Client) FetchProspectus(ctx context.Context, cik, accession string) (string, string, error) {
	cikNum := strings.TrimLeft(PadCIK(cik), "0")
	accessionDir := strings.ReplaceAll(accession, "-", "")
	indexURL := fmt.Sprintf("%s/Archives/edgar/data/%s/%s/", c.archivesBase, cikNum, accessionDir)

	indexHTML, err := c.get(ctx, indexURL, "text/html")
	if err != nil {
		return "", "", fmt.Errorf("fetch filing index: %w", err)
	}

	docName, err := c.indexParser.PrimaryDocument(strings.NewReader(string(indexHTML)))
	if err != nil {
		return "", "", fmt.Errorf("locate primary document: %w", err)
	}

	docURL := indexURL + docName
	docHTML, err := c.get(ctx, docURL, "text/html")
	if err != nil {
		return "", "", fmt.Errorf("fetch prospectus document: %w", err)
	}
	return string(docHTML), docURL, nil
}

// get performs a rate-limited GET with retry on transient failures.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := Backoff(attempt - 1)
			c.logger.Warn("retrying edgar request",
				"url", url, "attempt", attempt, "delay", delay, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.getOnce(ctx, url, accept)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("request failed after %d retries: %w", MaxRetries, lastErr)
}

func (c *Client) getOnce(ctx context.Context, url, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RetryableError{Message: err.Error()}
	}
	defer resp.Body.Close()

	// Read one byte past the cap so a truncated document is detected
	// instead of flowing into analysis as if it were complete.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("response for %s exceeds %d bytes", url, c.maxBytes)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edgar status %d for %s", resp.StatusCode, url)
	}
	return body, nil
}
