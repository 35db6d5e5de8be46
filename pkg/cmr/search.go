package cmr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/glorpus-work/podaac-subset/internal/logger"
	"github.com/glorpus-work/podaac-subset/pkg/errors"
	pkghttp "github.com/glorpus-work/podaac-subset/pkg/http"
)

// Search defaults. Only the first page is ever requested.
const (
	DefaultPageSize   = 2000
	DefaultSortKey    = "-start_date"
	GlobalBoundingBox = "-180,-90,180,90"

	// DateLayout is the accepted form of start and end dates.
	DateLayout = "2006-01-02T15:04:05"

	hitsHeader = "CMR-Hits"
)

// ParseDate parses value with DateLayout; name identifies the argument in the error.
func ParseDate(name, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errors.ErrInvalidDateWithValue(name, value, DateLayout)
	}
	return t, nil
}

// SearchQuery describes a single granule search. Start is inclusive, End exclusive.
type SearchQuery struct {
	ShortName   string
	Start       time.Time
	End         time.Time
	BoundingBox string
	PageSize    int
	SortKey     string
	Token       string
}

// NewSearchQuery fills in the fixed page size, sort key and whole-globe bounding box.
func NewSearchQuery(shortName string, start, end time.Time, token string) SearchQuery {
	return SearchQuery{
		ShortName:   shortName,
		Start:       start,
		End:         end,
		BoundingBox: GlobalBoundingBox,
		PageSize:    DefaultPageSize,
		SortKey:     DefaultSortKey,
		Token:       token,
	}
}

// Temporal renders the range as "{start}Z,{end}Z".
func (q SearchQuery) Temporal() string {
	return q.Start.Format(DateLayout) + "Z," + q.End.Format(DateLayout) + "Z"
}

// Values encodes the query parameters understood by the search endpoint.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page_size", strconv.Itoa(q.PageSize))
	v.Set("sort_key", q.SortKey)
	v.Set("ShortName", q.ShortName)
	v.Set("temporal", q.Temporal())
	v.Set("bounding_box", q.BoundingBox)
	if q.Token != "" {
		v.Set("token", q.Token)
	}
	return v
}

// SearchClient queries the granules.umm_json endpoint.
type SearchClient struct {
	client    pkghttp.Doer
	searchURL string
}

// NewSearchClient returns a client for the search endpoint at searchURL.
func NewSearchClient(client pkghttp.Doer, searchURL string) *SearchClient {
	return &SearchClient{client: client, searchURL: searchURL}
}

// Search issues one request and returns the granules of the first page.
// Granules beyond PageSize are not fetched; a warning is logged when the catalog
// reports more hits than were returned.
func (c *SearchClient) Search(ctx context.Context, q SearchQuery) ([]Granule, error) {
	if q.ShortName == "" {
		return nil, errors.ErrEmptyShortName
	}

	u, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrSearchFailed, err.Error())
	}
	u.RawQuery = q.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("Searching granules", logger.Fields{"url": redactToken(u)})

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrSearchFailed, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrSearchFailed, "unexpected status code: %d", resp.StatusCode)
	}

	var sr SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, errors.Wrapf(errors.ErrSearchFailed, "malformed search response: %v", err)
	}

	hits := sr.Hits
	if h, err := strconv.Atoi(resp.Header.Get(hitsHeader)); err == nil {
		hits = h
	}
	if hits > len(sr.Items) {
		logger.Warn("Search matched more granules than one page holds; extra granules are skipped",
			logger.Fields{"hits": hits, "returned": len(sr.Items), "page_size": q.PageSize})
	}

	return sr.Items, nil
}

func redactToken(u *url.URL) string {
	c := *u
	v := c.Query()
	if v.Has("token") {
		v.Set("token", "REDACTED")
		c.RawQuery = v.Encode()
	}
	return c.String()
}
