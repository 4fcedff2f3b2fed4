// Package app wires the HTTP surface: the form-generation and
// score-import endpoints.
package app

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"reviewforms/internal/config"
	"reviewforms/internal/form"
	"reviewforms/internal/httpx"
	"reviewforms/internal/layout"
	"reviewforms/internal/score"
)

// multipartMemory caps the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const multipartMemory = 8 << 20

type App struct {
	cfg config.Config
	log *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// Handler builds the route table.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", a.handleGenerate)
	mux.HandleFunc("POST /api/import", a.handleImport)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return a.logRequests(mux)
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	a.log.Info("listening", "addr", a.cfg.HTTPAddr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleGenerate accepts a template workbook plus review-type and
// fiscal-year fields and responds with a zip of generated review forms.
func (a *App) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()
	if !isSpreadsheet(header.Filename) {
		httpx.WriteError(w, http.StatusBadRequest, "file must be an .xlsx workbook")
		return
	}

	gen := form.NewGenerator(
		form.WithPeriod(layout.ParsePeriod(r.FormValue("reviewType"))),
		form.WithFiscalYear(strings.TrimSpace(r.FormValue("fiscalYear"))),
	)
	files, err := gen.Generate(file)
	if err != nil {
		if errors.Is(err, form.ErrNoEligibleSheets) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	archive, err := form.Zip(files)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.WriteAttachment(w, "review-forms.zip", "application/zip", archive)
}

// importResponse is the success body of the import endpoint.
type importResponse struct {
	Rows []score.Combined `json:"rows"`
}

// handleImport accepts a batch of completed review workbooks and responds
// with the combined summary table. The whole batch is rejected when any
// file has the wrong extension.
func (a *App) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["files"]
	}
	if len(headers) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "no files uploaded")
		return
	}
	for _, h := range headers {
		if !isSpreadsheet(h.Filename) {
			httpx.WriteError(w, http.StatusBadRequest, "not an .xlsx workbook: "+h.Filename)
			return
		}
	}

	rows := make([]score.Row, 0, len(headers))
	for _, h := range headers {
		row, err := extractUpload(h)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, h.Filename+": "+err.Error())
			return
		}
		rows = append(rows, row)
	}

	combined, err := score.Filter(score.Merge(rows), r.FormValue("filter"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if combined == nil {
		combined = []score.Combined{}
	}
	httpx.WriteJSON(w, http.StatusOK, importResponse{Rows: combined})
}

func extractUpload(h *multipart.FileHeader) (score.Row, error) {
	f, err := h.Open()
	if err != nil {
		return score.Row{}, err
	}
	defer f.Close()
	return score.ExtractFile(f)
}

func isSpreadsheet(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		a.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
