package mrs

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-playground/form/v4"
	"github.com/motech/mrs/internal/patients"
	"github.com/motech/mrs/pkg/web"
)

// FormData is rendered by form.html.
type FormData struct {
	Command patients.Command
	Errors  map[string]string
	// MotechID is the patient being edited, empty when registering.
	MotechID string
}

func (d FormData) Editing() bool {
	return d.MotechID != ""
}

// ManageController registers new patients and edits existing ones.
type ManageController struct {
	patients    patients.System
	decoder     *form.Decoder
	maxFormSize int64
	logger      *slog.Logger
}

func NewManageController(sys patients.System, maxFormSize int64, logger *slog.Logger) *ManageController {
	return &ManageController{
		patients:    sys,
		decoder:     form.NewDecoder(),
		maxFormSize: maxFormSize,
		logger:      logger,
	}
}

func (c *ManageController) Serve(w http.ResponseWriter, r *http.Request, v *web.View) error {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		return c.show(r, v)
	case http.MethodPost:
		return c.save(w, r, v)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil
	}
}

func (c *ManageController) show(r *http.Request, v *web.View) error {
	id := v.Param("id")
	if id == "" {
		return v.Render(FormData{Command: patients.Command{Gender: patients.GenderFemale}})
	}

	p, err := c.patients.Find(r.Context(), id)
	if err != nil {
		return notFound(err)
	}

	return v.Render(FormData{Command: patients.CommandFromPatient(*p), MotechID: p.MotechID})
}

func (c *ManageController) save(w http.ResponseWriter, r *http.Request, v *web.View) error {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxFormSize)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return nil
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	id := v.Param("id")

	if id != "" && r.PostForm.Get("action") == "delete" {
		if err := c.patients.Delete(r.Context(), id); err != nil {
			return notFound(err)
		}
		c.logger.Info("patient removed from form", "motech_id", id)
		v.Redirect(DashboardPath + "?deleted=" + url.QueryEscape(id))
		return nil
	}

	var cmd patients.Command
	if err := c.decoder.Decode(&cmd, r.PostForm); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	var (
		saved *patients.Patient
		err   error
	)
	if id == "" {
		saved, err = c.patients.Create(r.Context(), cmd)
	} else {
		saved, err = c.patients.Update(r.Context(), id, cmd)
	}

	if err != nil {
		data := FormData{Command: cmd, MotechID: id}

		var verr *patients.ValidationError
		switch {
		case errors.As(err, &verr):
			data.Errors = verr.Fields
		case errors.Is(err, patients.ErrDuplicate):
			data.Errors = map[string]string{"motech_id": "is already registered"}
		default:
			return notFound(err)
		}

		return v.RenderStatus(http.StatusUnprocessableEntity, data, "Please correct the highlighted fields.")
	}

	v.Redirect(DashboardPath + "?saved=" + url.QueryEscape(saved.MotechID))
	return nil
}

func notFound(err error) error {
	if errors.Is(err, patients.ErrNotFound) {
		return errors.Join(web.ErrNotFound, err)
	}
	return err
}
