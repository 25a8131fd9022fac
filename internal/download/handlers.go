// ABOUTME: HTTP handlers serving freshly generated fixture workbooks.
// ABOUTME: Lists scenarios, streams .xlsx downloads, and exposes recorded generation runs.

package download

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/2389/fixturegen/internal/errors"
	"github.com/2389/fixturegen/internal/scenario"
	"github.com/2389/fixturegen/internal/seed"
	"github.com/2389/fixturegen/internal/store"
	"github.com/2389/fixturegen/internal/workbook"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultLimit = 50

type Handlers struct {
	store *store.Store
	names seed.NamePool
}

// NewHandlers creates handlers drawing client names from names.
func NewHandlers(s *store.Store, names seed.NamePool) *Handlers {
	return &Handlers{store: s, names: names}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/scenarios", h.listScenarios)
	r.Get("/scenarios/{name}", h.downloadScenario)
	r.Get("/runs", h.listRuns)
	r.Get("/runs/{id}", h.getRun)
	r.Get("/downloads", h.listDownloads)
	r.Get("/downloads/stats", h.downloadStats)
}

func (h *Handlers) listScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"scenarios": scenario.All(),
		"sheets":    workbook.RequiredSheets,
	})
}

func (h *Handlers) downloadScenario(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "name"), ".xlsx")

	sc, err := scenario.Lookup(name)
	if err != nil {
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrUnknownScenario,
			fmt.Sprintf("No scenario named %q", name))
		return
	}

	opts := seed.Options{Names: h.names}
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apierrors.WriteErrorWithField(w, http.StatusBadRequest, apierrors.ErrInvalidRequest,
				"seed must be a 64-bit integer", "seed")
			return
		}
		opts.Seed = &v
	}

	// A generator per request: its random source is not shared between requests
	sheets, err := scenario.Build(seed.NewGenerator(opts), sc.Name)
	if err != nil {
		apierrors.WriteErrorWithDetails(w, http.StatusInternalServerError, apierrors.ErrGenerationFailed,
			"Failed to build workbook", err.Error())
		return
	}

	// Encode fully before writing headers so failures still get a JSON error
	var buf bytes.Buffer
	if err := workbook.WriteTo(&buf, sheets); err != nil {
		apierrors.WriteErrorWithDetails(w, http.StatusInternalServerError, apierrors.ErrGenerationFailed,
			"Failed to encode workbook", err.Error())
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sc.File))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func (h *Handlers) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r)
	runs, err := h.store.ListRuns(store.RunQuery{Limit: limit, PathContains: r.URL.Query().Get("path")})
	if err != nil {
		apierrors.WriteError(w, http.StatusInternalServerError, apierrors.ErrDatabaseError, "Failed to list runs")
		return
	}

	items := make([]map[string]any, len(runs))
	for i, run := range runs {
		items[i] = runJSON(run)
	}
	writeJSON(w, map[string]any{"runs": items})
}

func (h *Handlers) getRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.store.GetRun(chi.URLParam(r, "id"))
	if errors.Is(err, sql.ErrNoRows) {
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrRunNotFound, "Run not found")
		return
	}
	if err != nil {
		apierrors.WriteError(w, http.StatusInternalServerError, apierrors.ErrDatabaseError, "Failed to load run")
		return
	}
	writeJSON(w, runJSON(run))
}

func (h *Handlers) listDownloads(w http.ResponseWriter, r *http.Request) {
	logs, err := h.store.GetRecentDownloads(queryLimit(r))
	if err != nil {
		apierrors.WriteError(w, http.StatusInternalServerError, apierrors.ErrDatabaseError, "Failed to list downloads")
		return
	}

	items := make([]map[string]any, len(logs))
	for i, l := range logs {
		items[i] = map[string]any{
			"timestamp":   l.Timestamp,
			"scenario":    l.Scenario,
			"path":        l.Path,
			"status_code": l.StatusCode,
			"duration_ms": l.DurationMs,
			"bytes":       l.Bytes,
			"ip_address":  l.IPAddress,
			"user_agent":  l.UserAgent,
		}
	}
	writeJSON(w, map[string]any{"downloads": items})
}

func (h *Handlers) downloadStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetDownloadStats()
	if err != nil {
		apierrors.WriteError(w, http.StatusInternalServerError, apierrors.ErrDatabaseError, "Failed to load download stats")
		return
	}
	writeJSON(w, map[string]any{
		"total":        stats.TotalDownloads,
		"errors":       stats.ErrorDownloads,
		"per_scenario": stats.PerScenario,
	})
}

// queryLimit reads ?limit, falling back to defaultLimit for missing or invalid values.
func queryLimit(r *http.Request) int {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		return v
	}
	return defaultLimit
}

func runJSON(run *store.Run) map[string]any {
	m := map[string]any{
		"id":         run.ID,
		"batch_id":   run.BatchID,
		"scenario":   run.Scenario,
		"path":       run.Path,
		"created_at": run.CreatedAt,
		"sheets":     run.Sheets,
	}
	if run.Seed != nil {
		m["seed"] = *run.Seed
	}
	return m
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
