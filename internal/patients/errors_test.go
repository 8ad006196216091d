package patients_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/motech/mrs/internal/patients"
	"github.com/stretchr/testify/assert"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{patients.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("find: %w", patients.ErrNotFound), http.StatusNotFound},
		{patients.ErrDuplicate, http.StatusConflict},
		{&patients.ValidationError{Fields: map[string]string{"gender": "is required"}}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, patients.MapHTTPStatus(tt.err))
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	f := patients.FiltersFromQuery(url.Values{"facility": {" Navrongo "}, "gender": {"f"}})
	if assert.NotNil(t, f.Facility) {
		assert.Equal(t, "Navrongo", *f.Facility)
	}
	if assert.NotNil(t, f.Gender) {
		assert.Equal(t, "F", *f.Gender)
	}

	empty := patients.FiltersFromQuery(url.Values{"gender": {"X"}})
	assert.Nil(t, empty.Facility)
	assert.Nil(t, empty.Gender)
}
