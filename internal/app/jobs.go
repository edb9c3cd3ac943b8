package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultJobLimit      = 5
	descriptionMaxRunes  = 500
	requirementsMaxRunes = 250
)

// requirementMarkers are scanned in order inside a description to slice out
// a requirements snippet.
var requirementMarkers = []string{
	"requirements",
	"qualifications",
	"must have",
	"you will need",
}

const genericRequirements = "See full listing for requirements"

// JobClient queries the job-listing provider and normalizes whatever comes
// back into JobRecords. Every failure path degrades to the built-in sample
// list, so callers never see an error.
type JobClient struct {
	APIKey      string
	BaseURL     string
	RecencyDays int
	RadiusMiles int
	HTTP        *http.Client
	Logger      *zap.Logger
}

func NewJobClient(apiKey, baseURL string, recencyDays, radiusMiles int, logger *zap.Logger) *JobClient {
	if recencyDays <= 0 {
		recencyDays = 30
	}
	if radiusMiles <= 0 {
		radiusMiles = 25
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobClient{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		RecencyDays: recencyDays,
		RadiusMiles: radiusMiles,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
		Logger:      logger,
	}
}

// Search returns up to limit job records for the query. The second return
// is true when live provider data was used; false means the sample fallback
// and callers should tell the user sample data is being shown.
func (c *JobClient) Search(ctx context.Context, query, location string, limit int, includeDescription bool) ([]JobRecord, bool) {
	if limit <= 0 {
		limit = defaultJobLimit
	}
	if c.APIKey == "" {
		c.Logger.Warn("job provider credential missing, serving sample listings")
		return sampleFallback(limit, includeDescription), false
	}

	records, err := c.fetch(ctx, query, location, limit, includeDescription)
	if err != nil {
		c.Logger.Warn("job provider call failed, serving sample listings",
			zap.String("query", query), zap.Error(err))
		return sampleFallback(limit, includeDescription), false
	}
	return records, true
}

func (c *JobClient) fetch(ctx context.Context, query, location string, limit int, includeDescription bool) ([]JobRecord, error) {
	// The provider rejects anything outside 7-bit ASCII in query parameters
	// and credentials.
	params := url.Values{}
	params.Set("q", asciiOnly(query))
	params.Set("l", asciiOnly(location))
	params.Set("page", "1")
	params.Set("locality", "us")
	params.Set("days", fmt.Sprintf("%d", c.RecencyDays))
	params.Set("radius", fmt.Sprintf("%d", c.RadiusMiles))
	params.Set("sort", "date")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Api-Key", asciiOnly(c.APIKey))

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	entries, err := decodeProviderEntries(body)
	if err != nil {
		return nil, err
	}

	// A well-formed envelope with zero entries is a legitimate empty
	// result, not a failure; only unrecognizable shapes fall back.
	records := make([]JobRecord, 0, limit)
	for _, e := range entries {
		if len(records) >= limit {
			break
		}
		records = append(records, normalizeEntry(e, location, includeDescription))
	}
	return records, nil
}

// providerEntry tolerates both field-naming conventions the provider is
// known to emit: a nested job_data object and flat top-level fields.
type providerEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description"`
	JobData     *struct {
		Title       string `json:"title"`
		CompanyName string `json:"company_name"`
		Location    string `json:"location"`
		URL         string `json:"url"`
		Description string `json:"description"`
	} `json:"job_data"`
}

// Raw fields keep "key present but empty" distinguishable from "key
// absent": an empty hits array is a real (empty) result, an object with
// neither key is an unknown shape.
type providerEnvelope struct {
	Hits json.RawMessage `json:"hits"`
	Jobs json.RawMessage `json:"jobs"`
}

// decodeProviderEntries handles the known response envelopes: hits-keyed,
// jobs-keyed, and a bare array.
func decodeProviderEntries(body []byte) ([]providerEntry, error) {
	var envelope providerEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, raw := range []json.RawMessage{envelope.Hits, envelope.Jobs} {
			if raw == nil {
				continue
			}
			var entries []providerEntry
			if err := json.Unmarshal(raw, &entries); err != nil {
				return nil, fmt.Errorf("malformed provider envelope: %w", err)
			}
			return entries, nil
		}
	}
	var bare []providerEntry
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("unrecognized provider response shape: %w", err)
	}
	return bare, nil
}

func normalizeEntry(e providerEntry, requestedLocation string, includeDescription bool) JobRecord {
	title, company, loc, link, desc := e.Title, e.Company, e.Location, e.URL, e.Description
	if e.JobData != nil {
		if title == "" {
			title = e.JobData.Title
		}
		if company == "" {
			company = e.JobData.CompanyName
		}
		if loc == "" {
			loc = e.JobData.Location
		}
		if link == "" {
			link = e.JobData.URL
		}
		if desc == "" {
			desc = e.JobData.Description
		}
	}

	if strings.TrimSpace(title) == "" {
		title = "Untitled Position"
	}
	if strings.TrimSpace(company) == "" {
		company = "Unknown Company"
	}
	if strings.TrimSpace(loc) == "" {
		loc = requestedLocation
	}
	if strings.TrimSpace(loc) == "" {
		loc = "Remote"
	}

	record := JobRecord{
		Title:    title,
		Company:  company,
		Location: loc,
		URL:      link,
		Remote:   isRemote(loc, desc),
	}
	if includeDescription {
		record.Description = truncateRunes(desc, descriptionMaxRunes)
		record.Requirements = sliceRequirements(desc)
	}
	return record
}

// isRemote derives the remote flag; the provider never supplies one.
func isRemote(location, description string) bool {
	return strings.Contains(strings.ToLower(location), "remote") ||
		strings.Contains(strings.ToLower(description), "remote")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// sliceRequirements pulls a requirements snippet out of a description by
// finding the first indicator phrase and taking text up to the first
// sentence terminator or the character cap.
func sliceRequirements(description string) string {
	for _, marker := range requirementMarkers {
		idx := asciiFoldIndex(description, marker)
		if idx < 0 {
			continue
		}
		rest := description[idx+len(marker):]
		rest = strings.TrimLeft(rest, ":;-– \t\r\n")
		if end := strings.IndexAny(rest, ".!?"); end >= 0 {
			rest = rest[:end+1]
		}
		rest = strings.TrimSpace(truncateRunes(rest, requirementsMaxRunes))
		if rest != "" {
			return rest
		}
	}
	return genericRequirements
}

// asciiFoldIndex finds the lower-case ASCII needle in s, matching ASCII
// letters case-insensitively. The returned offset is a byte index into s
// itself, so slicing stays valid for descriptions containing multi-byte
// runes (lower-casing the whole string first can shift byte offsets).
func asciiFoldIndex(s, needle string) int {
	for i := 0; i+len(needle) <= len(s); i++ {
		j := 0
		for ; j < len(needle); j++ {
			c := s[i+j]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != needle[j] {
				break
			}
		}
		if j == len(needle) {
			return i
		}
	}
	return -1
}

// asciiOnly strips anything outside 7-bit ASCII; the provider's interface
// cannot transport more.
func asciiOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// sampleJobs is the hand-authored fallback list served whenever the
// provider is unreachable or unconfigured.
var sampleJobs = []JobRecord{
	{
		Title:        "HVAC Technician Apprentice",
		Company:      "Cool Air Services",
		Location:     "Harrisburg, PA",
		URL:          "https://example.com/job1",
		Remote:       false,
		Description:  "Entry-level position learning HVAC installation and repair. No experience required, training provided.",
		Requirements: "High school diploma or GED, driver's license, basic technical aptitude",
	},
	{
		Title:        "Remote Customer Support Specialist",
		Company:      "TechHelp Solutions",
		Location:     "Remote (US-based)",
		URL:          "https://example.com/job2",
		Remote:       true,
		Description:  "Provide technical support to customers via phone and chat. Flexible hours available.",
		Requirements: "Strong communication skills, basic computer knowledge, reliable internet",
	},
	{
		Title:        "Electronics Repair Technician",
		Company:      "FixIt Electronics",
		Location:     "Allentown, PA",
		URL:          "https://example.com/job3",
		Remote:       false,
		Description:  "Diagnose and repair consumer electronics. Training provided for promising candidates.",
		Requirements: "Technical aptitude, problem-solving skills, customer service experience",
	},
	{
		Title:        "Home Health Aide - Flexible Schedule",
		Company:      "Caring Connections Health",
		Location:     "Allentown, PA",
		URL:          "https://example.com/job4",
		Remote:       false,
		Description:  "Provide in-home care for elderly clients. Choose your own hours and clients.",
		Requirements: "Compassion, reliability, basic healthcare knowledge",
	},
	{
		Title:        "Virtual Administrative Assistant",
		Company:      "Remote Office Solutions",
		Location:     "Remote",
		URL:          "https://example.com/job5",
		Remote:       true,
		Description:  "Provide administrative support to small businesses. Set your own hours.",
		Requirements: "Organization skills, communication skills, basic computer proficiency",
	},
}

// sampleFallback clones the sample list so callers can't mutate it, shaped
// identically to a live result.
func sampleFallback(limit int, includeDescription bool) []JobRecord {
	if limit > len(sampleJobs) {
		limit = len(sampleJobs)
	}
	out := make([]JobRecord, limit)
	copy(out, sampleJobs[:limit])
	if !includeDescription {
		for i := range out {
			out[i].Description = ""
			out[i].Requirements = ""
		}
	}
	return out
}
