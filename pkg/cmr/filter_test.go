package cmr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func granuleWith(urls ...RelatedURL) Granule {
	return Granule{UMM: GranuleUMM{RelatedUrls: urls}}
}

func TestFilterOPeNDAPURLs(t *testing.T) {
	opendap := func(u string) RelatedURL { return RelatedURL{URL: u, Type: "USE SERVICE API", Subtype: OPeNDAPSubtype} }

	tests := []struct {
		name     string
		granules []Granule
		want     []string
	}{
		{
			name: "no granules",
			want: nil,
		},
		{
			name: "keeps only opendap data links",
			granules: []Granule{granuleWith(
				RelatedURL{URL: "https://archive/a.nc", Type: "GET DATA"},
				RelatedURL{URL: "s3://bucket/a.nc", Type: "GET DATA VIA DIRECT ACCESS"},
				opendap("https://opendap/collections/C1/granules/a"),
				RelatedURL{URL: "https://opendap/b", Subtype: "OPENDAP DATA (DODS)"},
			)},
			want: []string{"https://opendap/collections/C1/granules/a"},
		},
		{
			name: "drops drive file listing links",
			granules: []Granule{granuleWith(
				opendap("https://opendap/drive/files/a.nc"),
				opendap("https://opendap/collections/a"),
			)},
			want: []string{"https://opendap/collections/a"},
		},
		{
			name: "preserves response order across granules and keeps duplicates",
			granules: []Granule{
				granuleWith(opendap("https://opendap/z")),
				granuleWith(opendap("https://opendap/a"), opendap("https://opendap/z")),
				granuleWith(),
				granuleWith(opendap("https://opendap/m")),
			},
			want: []string{"https://opendap/z", "https://opendap/a", "https://opendap/z", "https://opendap/m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterOPeNDAPURLs(tt.granules))
		})
	}
}

func TestFilterOPeNDAPURLs_MissingSubtype(t *testing.T) {
	var g Granule
	raw := `{"umm":{"GranuleUR":"g1","RelatedUrls":[
		{"URL":"https://opendap/a","Type":"USE SERVICE API"},
		{"URL":"https://opendap/b","Type":"USE SERVICE API","Subtype":"OPENDAP DATA"}
	]}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &g))

	assert.Equal(t, "", g.UMM.RelatedUrls[0].Subtype)
	assert.Equal(t, []string{"https://opendap/b"}, FilterOPeNDAPURLs([]Granule{g}))
}

func TestRelatedURL_IsOPeNDAPData(t *testing.T) {
	tests := []struct {
		name string
		u    RelatedURL
		want bool
	}{
		{"data link", RelatedURL{URL: "https://opendap/g1", Subtype: OPeNDAPSubtype}, true},
		{"drive listing", RelatedURL{URL: "https://opendap/drive/files/g1", Subtype: OPeNDAPSubtype}, false},
		{"other subtype", RelatedURL{URL: "https://opendap/g1", Subtype: "DATA"}, false},
		{"segment without trailing slash", RelatedURL{URL: "https://opendap/drive/files", Subtype: OPeNDAPSubtype}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.IsOPeNDAPData())
		})
	}
}
