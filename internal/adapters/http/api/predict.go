package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/SiddharthSingh5771/MedAssist-AI/internal/app"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/intake"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
)

const maxBodyBytes = 64 << 10

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps, logger: logger.Nop()}
}

// HandlePredict handles POST /api/v1/predict/{disease} requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	s, err := schema.Lookup(schema.Disease(strings.TrimPrefix(r.URL.Path, "/api/v1/predict/")))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_disease", WrapKind(op, ErrUnknownDisease, err))
		return
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	in, err := decodeInput(dec, s.Disease)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	out, err := h.deps.Predict(r.Context(), in)
	if err != nil {
		h.writePredictError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PredictHandler) writePredictError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *intake.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    ve.KindLabel(),
			Message: ve.Error(),
			Fields:  ve.Fields,
		})
	case errors.Is(err, service.ErrPredictionUnavailable):
		writeError(w, http.StatusServiceUnavailable, "prediction_unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		h.logger.Error(r.Context(), "unexpected prediction error",
			logger.String("path", r.URL.Path),
			logger.String("request_id", RequestID(r.Context())),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
	}
}

func decodeInput(dec *json.Decoder, disease schema.Disease) (intake.Input, error) {
	switch disease {
	case schema.DiabetesDisease:
		var in intake.DiabetesInput
		err := dec.Decode(&in)
		return in, err
	case schema.HeartDisease:
		var in intake.HeartInput
		err := dec.Decode(&in)
		return in, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDisease, disease)
}
