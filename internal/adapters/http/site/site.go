// Package site serves the browser forms for the diabetes and heart predictors.
package site

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sort"

	formschema "github.com/gorilla/schema"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/http/api"
	service "github.com/SiddharthSingh5771/MedAssist-AI/internal/app"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/intake"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

// Error constants
var (
	ErrRender = errors.New("site render failed")
)

// Predictor runs one prediction. *service.Service satisfies it.
type Predictor interface {
	Predict(ctx context.Context, in intake.Input) (service.Outcome, error)
}

// Handler renders the forms and result pages.
type Handler struct {
	predictor Predictor
	pages     map[string]*template.Template
	decoder   *formschema.Decoder
	logger    logger.Logger
	metrics   *metrics.Manager
}

// Option applies a configuration option to the Handler.
type Option func(*Handler)

// WithLogger sets the logger used for render and prediction failures.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMetrics sets the manager used for request metrics.
func WithMetrics(m *metrics.Manager) Option {
	return func(h *Handler) {
		if m != nil {
			h.metrics = m
		}
	}
}

// New parses the embedded templates. It panics on a template error since
// they are compiled into the binary.
func New(p Predictor, opts ...Option) *Handler {
	h := &Handler{
		predictor: p,
		pages:     make(map[string]*template.Template),
		decoder:   formschema.NewDecoder(),
		logger:    logger.Nop(),
		metrics:   metrics.Default(),
	}
	h.decoder.IgnoreUnknownKeys(true)
	h.decoder.ZeroEmpty(true)

	funcs := template.FuncMap{"pct": formatPercent, "choice": newChoice}
	for _, page := range []string{"home", "diabetes", "heart", "result"} {
		h.pages[page] = template.Must(template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html"))
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register attaches the site routes to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", h.instrument(h.HandleHome, "site_home"))
	mux.HandleFunc("/diabetes", h.instrument(h.HandleDiabetes, "site_diabetes"))
	mux.HandleFunc("/heart", h.instrument(h.HandleHeart, "site_heart"))
}

func (h *Handler) instrument(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return api.MetricsMiddleware(h.metrics, next, endpoint)
}

type homePage struct {
	Title string
}

// HandleHome handles GET / requests.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, "home", homePage{Title: "MedAssist"})
}

// formPage is the data of the diabetes and heart forms.
type formPage struct {
	Title   string
	Form    any
	Message string
	Errors  map[string]string
	Options map[string][]string
}

// HandleDiabetes handles GET and POST /diabetes requests.
func (h *Handler) HandleDiabetes(w http.ResponseWriter, r *http.Request) {
	page := formPage{
		Title:   "Diabetes Prediction",
		Options: map[string][]string{"gender": {intake.GenderFemale, intake.GenderMale}},
	}
	var in intake.DiabetesInput
	h.handleForm(w, r, "diabetes", &page, &in, func() intake.Input { return in })
}

// HandleHeart handles GET and POST /heart requests.
func (h *Handler) HandleHeart(w http.ResponseWriter, r *http.Request) {
	page := formPage{
		Title: "Heart Disease Prediction",
		Options: map[string][]string{
			"sex":                 schema.Sex.Labels(),
			"chest_pain_type":     schema.ChestPainType.Labels(),
			"fasting_blood_sugar": schema.FastingBloodSugar.Labels(),
			"resting_ecg":         schema.RestingECG.Labels(),
			"exercise_angina":     schema.ExerciseAngina.Labels(),
			"thalassemia":         schema.Thalassemia.Labels(),
		},
	}
	var in intake.HeartInput
	h.handleForm(w, r, "heart", &page, &in, func() intake.Input { return in })
}

// handleForm decodes the posted form into dst and renders either the result
// or the form again with the rejected fields marked.
func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request, name string, page *formPage, dst any, input func() intake.Input) {
	page.Form = dst
	switch r.Method {
	case http.MethodGet:
		h.render(w, r, http.StatusOK, name, page)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		page.Message = "The form could not be read."
		h.render(w, r, http.StatusBadRequest, name, page)
		return
	}
	if err := h.decoder.Decode(dst, r.PostForm); err != nil {
		page.Message = "Some values are not numbers."
		page.Errors = decodeProblems(err)
		h.render(w, r, http.StatusBadRequest, name, page)
		return
	}

	out, err := h.predictor.Predict(r.Context(), input())
	if err != nil {
		status := h.describe(r, page, err)
		h.render(w, r, status, name, page)
		return
	}
	h.render(w, r, http.StatusOK, "result", newResultPage(out, "/"+name))
}

// describe fills the form message for a failed prediction and returns the status.
func (h *Handler) describe(r *http.Request, page *formPage, err error) int {
	var ve *intake.ValidationError
	switch {
	case errors.As(err, &ve):
		page.Errors = make(map[string]string, len(ve.Fields))
		for _, f := range ve.Fields {
			page.Errors[f.Field] = f.Reason
		}
		if errors.Is(err, intake.ErrIncompleteInput) {
			page.Message = "Please fill in all required fields."
		} else {
			page.Message = "Please correct the highlighted fields."
		}
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrPredictionUnavailable):
		page.Message = "The prediction service is unavailable. Please try again."
		return http.StatusServiceUnavailable
	default:
		h.logger.Error(r.Context(), "site prediction failed", logger.String("path", r.URL.Path), logger.Error(err))
		page.Message = "Something went wrong."
		return http.StatusInternalServerError
	}
}

// choice is one dropdown of a form.
type choice struct {
	Name    string
	Label   string
	Value   string
	Options []string
	Error   string
}

func newChoice(p *formPage, name, label, value string) choice {
	return choice{Name: name, Label: label, Value: value, Options: p.Options[name], Error: p.Errors[name]}
}

func decodeProblems(err error) map[string]string {
	out := make(map[string]string)
	var multi formschema.MultiError
	if errors.As(err, &multi) {
		keys := make([]string, 0, len(multi))
		for k := range multi {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = "must be a number"
		}
	}
	return out
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tmpl, ok := h.pages[page]
	if !ok {
		h.logger.Error(r.Context(), "unknown page", logger.String("page", page))
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		h.logger.Error(r.Context(), "render failed", logger.String("page", page), logger.Error(err))
	}
}
