package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

const (
	defaultSearchURL = "https://api.gopro.com/media/search"
	userAgent        = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client talks to the GoPro media-search API using the cookies captured from
// the browser session.
type Client struct {
	http      *http.Client
	searchURL string
	cookie    string
	token     string

	// sleep is replaced in tests so rate-limit handling doesn't wait.
	sleep func(time.Duration)
}

// NewClient builds a client from the captured Cookie header and the optional
// gp_access_token value.
func NewClient(cookieHeader, token string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		searchURL: defaultSearchURL,
		cookie:    cookieHeader,
		token:     token,
		sleep:     time.Sleep,
	}
}

// Media is one gallery item. The API has shipped several field spellings for
// the download location over time, so all of them are decoded.
type Media struct {
	ID           string                     `json:"id"`
	Filename     string                     `json:"filename"`
	DownloadURL  string                     `json:"download_url"`
	DownloadURL2 string                     `json:"downloadUrl"`
	URL          string                     `json:"url"`
	Files        []FileEntry                `json:"files"`
	MediaFiles   []FileEntry                `json:"media_files"`
	Versions     map[string]json.RawMessage `json:"versions"`
	DerivedMedia map[string]json.RawMessage `json:"derived_media"`
}

// FileEntry is one downloadable rendition inside a media item.
type FileEntry struct {
	URL          string `json:"url"`
	DownloadURL  string `json:"download_url"`
	DownloadURL2 string `json:"downloadUrl"`
}

// envelope tolerates the item-list key moving between API revisions,
// including one level of nesting under "response".
type envelope struct {
	Media    []Media   `json:"media"`
	Data     []Media   `json:"data"`
	Results  []Media   `json:"results"`
	Items    []Media   `json:"items"`
	Response *envelope `json:"response"`
}

func (e *envelope) items() []Media {
	for _, list := range [][]Media{e.Media, e.Data, e.Results, e.Items} {
		if list != nil {
			return list
		}
	}
	if e.Response != nil {
		return e.Response.items()
	}
	return nil
}

// Page fetches one page of the media listing, ordered by capture time. A 429
// is retried once after the server's Retry-After.
func (c *Client) Page(page, perPage int) ([]Media, error) {
	req, err := c.newRequest(page, perPage)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media search request: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		wait := 5
		if v, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && v > 0 {
			wait = v
		}
		logger.Info("Hit rate limit, sleeping %ds…", wait)
		c.sleep(time.Duration(wait) * time.Second)

		req, err := c.newRequest(page, perPage)
		if err != nil {
			return nil, err
		}
		resp, err = c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("media search retry: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media search returned status %s", resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode media search response: %w", err)
	}
	return env.items(), nil
}

func (c *Client) newRequest(page, perPage int) (*http.Request, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("order_by", "captured_at")

	req, err := http.NewRequest(http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build media search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", "https://gopro.com/")
	req.Header.Set("Cookie", c.cookie)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// AuthHeader returns the headers the browser session would send, for reuse by
// the plain-HTTP downloader.
func (c *Client) AuthHeader() http.Header {
	h := http.Header{}
	h.Set("Cookie", c.cookie)
	h.Set("User-Agent", userAgent)
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
	return h
}
