package mrs

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/motech/mrs/internal/patients"
	"github.com/motech/mrs/pkg/pagination"
	"github.com/motech/mrs/pkg/web"
)

// DashboardData is rendered by patients.html.
type DashboardData struct {
	Result   *pagination.PageResult[patients.Patient]
	Search   string
	Facility string
	Gender   string
	Today    time.Time
}

func (d DashboardData) PrevURL() string {
	return d.pageURL(d.Result.Page - 1)
}

func (d DashboardData) NextURL() string {
	return d.pageURL(d.Result.Page + 1)
}

// pageURL returns the dashboard path for page n with the current filters.
func (d DashboardData) pageURL(n int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(n))
	if d.Search != "" {
		q.Set("search", d.Search)
	}
	if d.Facility != "" {
		q.Set("facility", d.Facility)
	}
	if d.Gender != "" {
		q.Set("gender", d.Gender)
	}
	return DashboardPath + "?" + q.Encode()
}

// DashboardController lists registered patients.
type DashboardController struct {
	patients   patients.System
	pagination pagination.Config
	logger     *slog.Logger
	now        func() time.Time
}

func NewDashboardController(sys patients.System, pagination pagination.Config, logger *slog.Logger) *DashboardController {
	return &DashboardController{
		patients:   sys,
		pagination: pagination,
		logger:     logger,
		now:        time.Now,
	}
}

func (c *DashboardController) Serve(w http.ResponseWriter, r *http.Request, v *web.View) error {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil
	}

	q := r.URL.Query()
	page := pagination.PageRequestFromQuery(q, c.pagination)
	filters := patients.FiltersFromQuery(q)

	result, err := c.patients.List(r.Context(), page, filters)
	if err != nil {
		return err
	}

	data := DashboardData{
		Result: result,
		Today:  c.now(),
	}
	if page.Search != nil {
		data.Search = *page.Search
	}
	if filters.Facility != nil {
		data.Facility = *filters.Facility
	}
	if filters.Gender != nil {
		data.Gender = *filters.Gender
	}

	return v.RenderStatus(http.StatusOK, data, flash(q))
}

func flash(q url.Values) string {
	switch {
	case q.Get("saved") != "":
		return "Patient " + q.Get("saved") + " saved."
	case q.Get("deleted") != "":
		return "Patient " + q.Get("deleted") + " deleted."
	default:
		return ""
	}
}
