package openlibraryrepo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bozdag05/site/util/httpx"
)

const defaultBaseURL = "https://openlibrary.org"

type httpRepo struct {
	baseURL string
	client  *http.Client
}

func NewHTTP(baseURL string) Repo {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &httpRepo{baseURL: baseURL, client: httpx.Client()}
}

func (r *httpRepo) LookupISBN(isbn string) (*BookMeta, error) {
	u := fmt.Sprintf("%s/api/books?bibkeys=ISBN:%s&format=json&jscmd=data", r.baseURL, url.QueryEscape(isbn))
	resp, err := r.client.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openlibrary lookup failed: %s", resp.Status)
	}

	var out map[string]struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Cover    struct {
			Medium string `json:"medium"`
		} `json:"cover"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	rec, ok := out["ISBN:"+isbn]
	if !ok {
		return nil, fmt.Errorf("openlibrary: no record for isbn %s", isbn)
	}
	return &BookMeta{
		Title:    rec.Title,
		Summary:  rec.Subtitle,
		CoverURL: rec.Cover.Medium,
	}, nil
}
