package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"time"
)

// Download is one candidate URL for a media item, with the filename it should
// be saved under.
type Download struct {
	URL      string
	Filename string
}

// Downloads collects every download URL the item advertises, in preference
// order and de-duplicated. The first entry is the best candidate.
func (m Media) Downloads() []Download {
	var all []Download
	add := func(u string) {
		if u != "" {
			all = append(all, Download{URL: u, Filename: m.filenameFor(u)})
		}
	}

	add(m.DownloadURL)
	add(m.DownloadURL2)
	add(m.URL)

	files := m.Files
	if len(files) == 0 {
		files = m.MediaFiles
	}
	for _, f := range files {
		add(firstNonEmpty(f.URL, f.DownloadURL, f.DownloadURL2))
	}

	for _, versions := range []map[string]json.RawMessage{m.Versions, m.DerivedMedia} {
		for _, raw := range versions {
			// Variant values are either a single rendition or a list of them.
			var single FileEntry
			if err := json.Unmarshal(raw, &single); err == nil {
				add(firstNonEmpty(single.URL, single.DownloadURL, single.DownloadURL2))
				continue
			}
			var list []FileEntry
			if err := json.Unmarshal(raw, &list); err == nil {
				for _, f := range list {
					add(firstNonEmpty(f.URL, f.DownloadURL, f.DownloadURL2))
				}
			}
		}
	}

	seen := make(map[string]bool, len(all))
	unique := all[:0]
	for _, d := range all {
		if !seen[d.URL] {
			unique = append(unique, d)
			seen[d.URL] = true
		}
	}
	return unique
}

func (m Media) filenameFor(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	if m.Filename != "" {
		return m.Filename
	}
	if m.ID != "" {
		return m.ID
	}
	return fmt.Sprintf("%d", time.Now().Unix())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
