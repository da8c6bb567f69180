package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Topsis/internal/config"
	"github.com/MikeSquared-Agency/Topsis/internal/hermes"
	"github.com/MikeSquared-Agency/Topsis/internal/mailer"
	"github.com/MikeSquared-Agency/Topsis/internal/metrics"
	"github.com/MikeSquared-Agency/Topsis/internal/table"
	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

const (
	deliveryTimeout = 30 * time.Second

	DeliverySent     = "sent"
	DeliveryFailed   = "failed"
	DeliveryDisabled = "disabled"
)

type RankingsHandler struct {
	engine    *topsis.Engine
	hermes    hermes.Client
	mailer    mailer.Mailer
	recorder  *metrics.Recorder
	maxUpload int64
	filename  string
	precision int
	logger    *slog.Logger
}

func NewRankingsHandler(e *topsis.Engine, h hermes.Client, m mailer.Mailer, rec *metrics.Recorder, cfg *config.Config, logger *slog.Logger) *RankingsHandler {
	return &RankingsHandler{
		engine:    e,
		hermes:    h,
		mailer:    m,
		recorder:  rec,
		maxUpload: cfg.Server.MaxUploadBytes,
		filename:  cfg.Server.ResultFilename,
		precision: cfg.Scoring.Precision,
		logger:    logger,
	}
}

// Upload ranks a CSV sent as multipart field "datafile" and returns the ranked
// CSV. With an "email" field the result is also mailed.
func (h *RankingsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "upload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("datafile")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "datafile is required"})
		return
	}
	defer file.Close()

	email := strings.TrimSpace(r.FormValue("email"))
	if email != "" && !mailer.ValidEmail(email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid Email format"})
		return
	}

	t, err := table.Read(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	id := uuid.NewString()
	res, err := h.rank(id, "upload", t, r.FormValue("weights"), r.FormValue("impacts"))
	if err != nil {
		writeRankingError(w, id, err)
		return
	}

	data, err := table.Encode(t, res, h.precision)
	if err != nil {
		h.logger.Error("encode result failed", "ranking_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to encode result"})
		return
	}

	w.Header().Set("X-Ranking-ID", id)
	if email != "" {
		w.Header().Set("X-Delivery-Status", h.deliver(r.Context(), id, email, data))
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type RankJSONRequest struct {
	Header  []string   `json:"header"`
	Rows    [][]string `json:"rows"`
	Weights string     `json:"weights"`
	Impacts string     `json:"impacts"`
}

type RankJSONResponse struct {
	RankingID string `json:"ranking_id"`
	*topsis.RankedResult
}

// JSON ranks a table given inline and returns the full result.
func (h *RankingsHandler) JSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	var req RankJSONRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	id := uuid.NewString()
	t := &table.Table{Header: req.Header, Records: req.Rows}
	res, err := h.rank(id, "json", t, req.Weights, req.Impacts)
	if err != nil {
		writeRankingError(w, id, err)
		return
	}

	w.Header().Set("X-Ranking-ID", id)
	writeJSON(w, http.StatusOK, RankJSONResponse{RankingID: id, RankedResult: res})
}

func (h *RankingsHandler) rank(id, source string, t *table.Table, weights, impacts string) (*topsis.RankedResult, error) {
	start := time.Now()
	res, err := t.Rank(h.engine, weights, impacts)
	elapsed := time.Since(start)
	h.recorder.ObserveRanking(elapsed, res, err)

	if err != nil {
		h.logger.Info("ranking rejected", "ranking_id", id, "kind", metrics.KindOf(err), "error", err)
		ev := hermes.RankingFailedEvent{
			RankingID: id,
			Source:    source,
			Kind:      metrics.KindOf(err),
			Error:     err.Error(),
			Timestamp: time.Now(),
		}
		var verr *topsis.ValidationError
		if errors.As(err, &verr) {
			ev.Details = verr.Details
		}
		h.publish(hermes.SubjectRankingFailed(id), ev)
		return nil, err
	}

	best := make([]string, 0, 1)
	for _, row := range res.Best() {
		best = append(best, row.Label)
	}
	h.publish(hermes.SubjectRankingCompleted(id), hermes.RankingCompletedEvent{
		RankingID:    id,
		Source:       source,
		Alternatives: len(res.Rows),
		Criteria:     len(res.Weights),
		Best:         best,
		DurationMs:   float64(elapsed.Microseconds()) / 1000,
		Timestamp:    time.Now(),
	})
	return res, nil
}

func (h *RankingsHandler) deliver(ctx context.Context, id, to string, data []byte) string {
	if h.mailer == nil {
		return DeliveryDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()
	err := h.mailer.Send(ctx, to, mailer.Attachment{Filename: h.filename, ContentType: "text/csv", Data: data})
	h.recorder.ObserveDelivery("email", err)

	ev := hermes.RankingDeliveredEvent{
		RankingID: id,
		Channel:   "email",
		Recipient: to,
		Delivered: err == nil,
		Timestamp: time.Now(),
	}
	status := DeliverySent
	if err != nil {
		h.logger.Warn("email delivery failed", "ranking_id", id, "error", err)
		ev.Error = err.Error()
		status = DeliveryFailed
	}
	h.publish(hermes.SubjectRankingDelivered(id), ev)
	return status
}

func (h *RankingsHandler) publish(subject string, ev any) {
	if h.hermes == nil {
		return
	}
	if err := h.hermes.Publish(subject, ev); err != nil {
		h.logger.Warn("publish event failed", "subject", subject, "error", err)
	}
}

func writeRankingError(w http.ResponseWriter, id string, err error) {
	var verr *topsis.ValidationError
	if errors.As(err, &verr) {
		w.Header().Set("X-Ranking-ID", id)
		writeJSON(w, http.StatusUnprocessableEntity, verr)
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
