package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trendscout/internal/core/trend"
	perr "trendscout/internal/platform/errors"
)

const (
	// DefaultMaxResults is the page size when the caller gives none
	DefaultMaxResults = 5
	// maxPerPage is GitHub's page size ceiling
	maxPerPage = 100
)

// Repo is a partial GitHub repository document with the fields search uses
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Owner       User      `json:"owner"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	ForksCount  int       `json:"forks_count"`
	Stargazers  int       `json:"stargazers_count"`
	Archived    bool      `json:"archived"`
	PushedAt    time.Time `json:"pushed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	HTMLURL     string    `json:"html_url"`
}

// User is a partial GitHub user or org document
type User struct {
	Login string `json:"login"`
}

type searchResponse struct {
	TotalCount        int    `json:"total_count"`
	IncompleteResults bool   `json:"incomplete_results"`
	Items             []Repo `json:"items"`
}

// SearchRepositories waits for a rate slot, then asks GitHub for the most starred
// repositories matching term. Zero hits is not an error
func (c *Client) SearchRepositories(ctx context.Context, term string, maxResults int) (trend.Result, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return trend.Result{}, perr.Validationf("github search term is empty")
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > maxPerPage {
		maxResults = maxPerPage
	}

	// no call was made, so an expired deadline here is local back pressure, not a GitHub timeout
	if err := c.limiter.Wait(ctx); err != nil {
		return trend.Result{}, perr.Wrap(err, perr.ErrorCodeTooManyRequests, "github search queue wait aborted")
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.SearchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", term)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", strconv.Itoa(maxResults))
	path := "/search/repositories?" + q.Encode()

	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return trend.Result{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", "/search/repositories").Msg("github close body failed")
		}
	}()

	var out searchResponse
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return trend.Result{}, perr.FromTransport(err, "github search read failed")
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return trend.Result{}, perr.Wrapf(err, perr.ErrorCodeJSON, "github search decode failed")
	}
	if out.IncompleteResults {
		c.log.Debug().Str("term", term).Msg("github search results incomplete")
	}

	res := trend.Result{TotalCount: out.TotalCount, Items: make([]trend.Repository, 0, len(out.Items))}
	for _, r := range out.Items {
		res.Items = append(res.Items, r.toRepository())
	}
	return res, nil
}

func (r Repo) toRepository() trend.Repository {
	name := r.FullName
	if name == "" {
		name = r.Name
	}
	return trend.Repository{
		Name:        name,
		Description: r.Description,
		Stars:       r.Stargazers,
		Forks:       r.ForksCount,
		Language:    r.Language,
		UpdatedAt:   r.UpdatedAt,
		URL:         r.HTMLURL,
	}
}
