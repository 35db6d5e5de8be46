package cmr

// FilterOPeNDAPURLs flattens the OPeNDAP data links of every granule in response order.
// Duplicates are kept.
func FilterOPeNDAPURLs(granules []Granule) []string {
	var urls []string
	for _, g := range granules {
		for _, u := range g.UMM.RelatedUrls {
			if u.IsOPeNDAPData() {
				urls = append(urls, u.URL)
			}
		}
	}
	return urls
}
