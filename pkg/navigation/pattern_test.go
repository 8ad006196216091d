package navigation_test

import (
	"testing"

	"github.com/motech/mrs/pkg/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"empty", ""},
		{"no leading slash", "dashboard"},
		{"empty segment", "/mrs//edit"},
		{"unnamed capture", "/mrs/:/edit"},
		{"duplicate capture", "/mrs/:id/visits/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := navigation.Compile(tt.pattern)
			assert.ErrorIs(t, err, navigation.ErrInvalidPattern)
		})
	}
}

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		path       string
		wantOK     bool
		wantParams map[string]string
	}{
		{"literal", "/dashboard", "/dashboard", true, map[string]string{}},
		{"trailing slash", "/dashboard", "/dashboard/", true, map[string]string{}},
		{"literal mismatch", "/dashboard", "/dashboards", false, nil},
		{"capture", "/mrs/:id/edit", "/mrs/42/edit", true, map[string]string{"id": "42"}},
		{"capture unescaped", "/mrs/:id/edit", "/mrs/a%2Fb/edit", true, map[string]string{"id": "a/b"}},
		{"too short", "/mrs/:id/edit", "/mrs/42", false, nil},
		{"too long", "/mrs/:id/edit", "/mrs/42/edit/x", false, nil},
		{"empty capture", "/mrs/:id/edit", "/mrs//edit", false, nil},
		{"root", "/", "/", true, map[string]string{}},
		{"root empty path", "/", "", true, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := navigation.MustCompile(tt.pattern)
			params, ok := p.Match(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantParams, params)
			}
		})
	}
}

func TestPattern_Names(t *testing.T) {
	p := navigation.MustCompile("/facilities/:facility/patients/:id")
	assert.Equal(t, []string{"facility", "id"}, p.Names())
	assert.Equal(t, "/facilities/:facility/patients/:id", p.String())
}

func TestPattern_Expand(t *testing.T) {
	p := navigation.MustCompile("/mrs/:id/edit")

	got, err := p.Expand(map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/mrs/42/edit", got)

	got, err = p.Expand(map[string]string{"id": "a b"})
	require.NoError(t, err)
	assert.Equal(t, "/mrs/a%20b/edit", got)

	_, err = p.Expand(nil)
	assert.ErrorIs(t, err, navigation.ErrMissingParam)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() {
		navigation.MustCompile("no-slash")
	})
}
