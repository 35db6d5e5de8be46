// Package cmr talks to NASA's Common Metadata Repository: it manages the short-lived
// tokens used for searching and finds granules and their OPeNDAP links.
package cmr

import "strings"

// OPeNDAPSubtype marks a RelatedUrl as an OPeNDAP data link.
const OPeNDAPSubtype = "OPENDAP DATA"

// ExcludedPathSegment marks OPeNDAP links served from the drive file listing
// rather than the data service; they never support subsetting.
const ExcludedPathSegment = "/drive/files/"

// SearchResponse is the body of a granules.umm_json search.
type SearchResponse struct {
	Hits  int       `json:"hits"`
	Items []Granule `json:"items"`
}

// Granule is one item of a UMM-JSON search result.
type Granule struct {
	Meta GranuleMeta `json:"meta"`
	UMM  GranuleUMM  `json:"umm"`
}

// GranuleMeta carries the catalog bookkeeping fields we log.
type GranuleMeta struct {
	ConceptID    string `json:"concept-id"`
	NativeID     string `json:"native-id"`
	ProviderID   string `json:"provider-id"`
	RevisionID   int    `json:"revision-id"`
	CollectionID string `json:"collection-concept-id"`
}

// GranuleUMM is the subset of the UMM-G record needed to locate data.
type GranuleUMM struct {
	GranuleUR   string       `json:"GranuleUR"`
	RelatedUrls []RelatedURL `json:"RelatedUrls"`
}

// RelatedURL is a link attached to a granule. Subtype is empty when the record omits it.
type RelatedURL struct {
	URL         string `json:"URL"`
	Type        string `json:"Type"`
	Subtype     string `json:"Subtype,omitempty"`
	Description string `json:"Description,omitempty"`
}

// IsOPeNDAPData reports whether u is a subsettable OPeNDAP data link.
func (u RelatedURL) IsOPeNDAPData() bool {
	return u.Subtype == OPeNDAPSubtype && !strings.Contains(u.URL, ExcludedPathSegment)
}
