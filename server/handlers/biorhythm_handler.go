package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"biorhythms-server/biorhythm"
	"biorhythms-server/config"
	"biorhythms-server/models"
	"biorhythms-server/plotter"
	services "biorhythms-server/service"

	"github.com/gorilla/mux"
)

const (
	BIRTH_QUERY_ARG  = "birth"
	CENTER_QUERY_ARG = "center"
	SPAN_QUERY_ARG   = "span"
	WIDTH_QUERY_ARG  = "width"
	HEIGHT_QUERY_ARG = "height"

	FORMAT_PATH_VAR = "format"
)

// RenderObserver records how long chart rendering took per output format.
type RenderObserver interface {
	ObserveRender(format string, d time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveRender(string, time.Duration) {}

type BiorhythmHandler struct {
	service  *services.BiorhythmService
	renderer *plotter.Renderer
	chart    config.ChartConfig
	observer RenderObserver
}

func NewBiorhythmHandler(
	service *services.BiorhythmService,
	renderer *plotter.Renderer,
	chart config.ChartConfig,
	observer RenderObserver) *BiorhythmHandler {

	if observer == nil {
		observer = noopObserver{}
	}
	return &BiorhythmHandler{
		service:  service,
		renderer: renderer,
		chart:    chart,
		observer: observer,
	}
}

// chartArgs are the parsed query arguments shared by the chart endpoints.
type chartArgs struct {
	birth  biorhythm.Date
	center biorhythm.Date
	span   int
	width  int
	height int
}

// Ping handles GET /ping
func (h *BiorhythmHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// GetAbout handles GET /v1/about
func (h *BiorhythmHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.About)
}

// GetBirthDate handles GET /v1/birthdate
func (h *BiorhythmHandler) GetBirthDate(w http.ResponseWriter, r *http.Request) {
	d, ok, err := h.service.BirthDate()
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		h.writeError(w, services.ErrBirthDateNotSet)
		return
	}
	writeJSON(w, http.StatusOK, models.BirthDateResponse{BirthDate: d})
}

// PutBirthDate handles PUT /v1/birthdate with {"birth_date":"YYYY-MM-DD"}
func (h *BiorhythmHandler) PutBirthDate(w http.ResponseWriter, r *http.Request) {
	var req models.BirthDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid body: " + err.Error()})
		return
	}
	if req.BirthDate == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "birth_date is required"})
		return
	}
	if req.BirthDate.After(h.service.Today()) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "birth_date is in the future"})
		return
	}

	if err := h.service.SetBirthDate(*req.BirthDate); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.BirthDateResponse{BirthDate: *req.BirthDate})
}

// DeleteBirthDate handles DELETE /v1/birthdate
func (h *BiorhythmHandler) DeleteBirthDate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearBirthDate(); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetReadout handles GET /v1/readout
func (h *BiorhythmHandler) GetReadout(w http.ResponseWriter, r *http.Request) {
	args, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	snap := h.service.Snapshot(args.birth, args.center, 0)
	resp := models.NewReadoutResponse(args.birth, snap.Today)
	writeJSON(w, http.StatusOK, resp)
}

// GetSeries handles GET /v1/series
func (h *BiorhythmHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	args, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot(args.birth, args.center, args.span))
}

// GetChartImage handles GET /v1/chart.{png|svg}
func (h *BiorhythmHandler) GetChartImage(w http.ResponseWriter, r *http.Request) {
	format, err := plotter.ParseFormat(mux.Vars(r)[FORMAT_PATH_VAR])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}
	args, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := plotter.RenderImage(&buf, format, args.width, args.height, h.renderer, h.frame(args)); err != nil {
		h.writeError(w, err)
		return
	}
	h.observer.ObserveRender(string(format), time.Since(start))

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("Error writing chart", slog.Any("error", err))
	}
}

// GetChartOps handles GET /v1/chart/ops and returns the drawing operations
// for a host that paints on its own surface.
func (h *BiorhythmHandler) GetChartOps(w http.ResponseWriter, r *http.Request) {
	args, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	start := time.Now()
	rec := plotter.NewRecorder(float64(args.width), float64(args.height))
	h.renderer.Render(rec, h.frame(args))
	h.observer.ObserveRender("ops", time.Since(start))

	writeJSON(w, http.StatusOK, rec)
}

// GetChartHTML handles GET /v1/chart.html
func (h *BiorhythmHandler) GetChartHTML(w http.ResponseWriter, r *http.Request) {
	args, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := plotter.RenderHTML(&buf, h.frame(args), args.width, args.height); err != nil {
		h.writeError(w, err)
		return
	}
	h.observer.ObserveRender("html", time.Since(start))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("Error writing chart page", slog.Any("error", err))
	}
}

func (h *BiorhythmHandler) frame(args chartArgs) plotter.Frame {
	snap := h.service.Snapshot(args.birth, args.center, args.span)
	return plotter.Frame{
		Series:    snap.Series,
		LeftDays:  snap.LeftDays,
		RightDays: snap.RightDays,
		Center:    snap.Center,
	}
}

// parseArgs reads the shared query arguments. On failure it writes the
// error response and returns ok=false.
func (h *BiorhythmHandler) parseArgs(vals url.Values, w http.ResponseWriter) (args chartArgs, ok bool) {
	var override *biorhythm.Date
	if s := vals.Get(BIRTH_QUERY_ARG); s != "" {
		d, err := biorhythm.ParseDate(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid argument " + BIRTH_QUERY_ARG})
			return
		}
		override = &d
	}
	birth, err := h.service.ResolveBirthDate(override)
	if err != nil {
		h.writeError(w, err)
		return
	}
	args.birth = birth

	args.center = h.service.Today()
	if s := vals.Get(CENTER_QUERY_ARG); s != "" {
		args.center, err = biorhythm.ParseDate(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid argument " + CENTER_QUERY_ARG})
			return
		}
	}

	if args.span, ok = parseIntArg(vals, SPAN_QUERY_ARG, h.chart.Span, 0, h.chart.MaxSpan, w); !ok {
		return
	}
	if args.width, ok = parseIntArg(vals, WIDTH_QUERY_ARG, h.chart.Width, 1, h.chart.MaxSize, w); !ok {
		return
	}
	if args.height, ok = parseIntArg(vals, HEIGHT_QUERY_ARG, h.chart.Height, 1, h.chart.MaxSize, w); !ok {
		return
	}
	return args, true
}

func parseIntArg(vals url.Values, name string, def, lo, hi int, w http.ResponseWriter) (int, bool) {
	s := vals.Get(name)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: fmt.Sprintf("Invalid argument %s: must be an integer in [%d, %d]", name, lo, hi),
		})
		return 0, false
	}
	return n, true
}

func (h *BiorhythmHandler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrBirthDateNotSet) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Error("Request failed", slog.String("component", "BiorhythmHandler"), slog.Any("error", err))
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Error encoding response", slog.Any("error", err))
	}
}
