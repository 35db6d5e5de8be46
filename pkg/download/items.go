package download

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/podaac-subset/pkg/errors"
)

// OutputPath returns {dir}/{last segment of the URL path}{ext}. The segment is
// taken as it appears in the URL, so percent-escapes are not decoded.
// A URL whose path ends in "/" has no file name and yields ErrNoFileName.
func OutputPath(dir, rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(errors.ErrNoFileName, "%s: %v", rawURL, err)
	}
	ep := u.EscapedPath()
	name := ep[strings.LastIndex(ep, "/")+1:]
	if name == "" {
		return "", errors.Wrapf(errors.ErrNoFileName, "%s", rawURL)
	}
	return filepath.Join(dir, name+ext), nil
}

// NewItems pairs each URL with its output path, keeping order and duplicates.
func NewItems(urls []string, dir, ext string) []Item {
	items := make([]Item, 0, len(urls))
	for _, u := range urls {
		p, err := OutputPath(dir, u, ext)
		if err != nil {
			p = ""
		}
		items = append(items, Item{URL: u, Path: p})
	}
	return items
}
