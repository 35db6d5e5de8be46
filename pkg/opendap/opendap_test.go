package opendap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVariables(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "sp_lat", want: []string{"sp_lat"}},
		{in: "sp_lat,sp_lon,ddm_nbrcs", want: []string{"sp_lat", "sp_lon", "ddm_nbrcs"}},
		{in: "a,,b,", want: []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVariables(tt.in))
		})
	}
}

func TestConstraintExpression(t *testing.T) {
	assert.Equal(t, "", ConstraintExpression(nil))
	assert.Equal(t, "", ConstraintExpression([]string{}))
	assert.Equal(t, "?dap4.ce=/a", ConstraintExpression([]string{"a"}))
	assert.Equal(t, "?dap4.ce=/a;/b", ConstraintExpression(ParseVariables("a,b")))
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, ".dap.nc4", Suffix(".nc4", nil))
	assert.Equal(t, ".dap.nc?dap4.ce=/sp_lat;/sp_lon", Suffix(".nc", []string{"sp_lat", "sp_lon"}))
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain url untouched",
			in:   "https://opendap.earthdata.nasa.gov/collections/C1/granules/g1.dap.nc4",
			want: "https://opendap.earthdata.nasa.gov/collections/C1/granules/g1.dap.nc4",
		},
		{
			name: "constraint expression encoded",
			in:   "https://host/g1.dap.nc4?dap4.ce=/a;/b",
			want: "https://host/g1.dap.nc4%3Fdap4.ce%3D/a%3B/b",
		},
		{
			name: "space percent and unicode",
			in:   "a b%é",
			want: "a%20b%25%C3%A9",
		},
		{
			name: "unreserved kept",
			in:   "A-z_0.9~",
			want: "A-z_0.9~",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.in))
		})
	}
}

func TestRequestURL(t *testing.T) {
	got := RequestURL("https://host/collections/C1/granules/g1", ".nc4", []string{"x", "y"})
	assert.Equal(t, "https://host/collections/C1/granules/g1.dap.nc4%3Fdap4.ce%3D/x%3B/y", got)
}
