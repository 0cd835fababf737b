package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/invoicing-renderer/internal/cache"
	"github.com/invoicing-renderer/internal/repository"
	"github.com/invoicing-renderer/internal/storage"
	"github.com/invoicing-renderer/pkg/invoice"
	"github.com/invoicing-renderer/pkg/render"
)

// ArtifactKeyHeader names the header carrying the storage location of a
// stored rendering.
const ArtifactKeyHeader = "X-Artifact-Key"

// RenderRequest is the body of the render and preview endpoints.
type RenderRequest struct {
	Invoice  invoice.Invoice      `json:"invoice"`
	Business invoice.BusinessInfo `json:"business"`
	// Template overrides invoice.template when set.
	Template string `json:"template,omitempty"`
	// Store writes the result to the configured sink.
	Store bool `json:"store,omitempty"`
}

type format struct {
	name        string
	ext         string
	contentType string
}

var (
	pdfFormat = format{"pdf", ".pdf", "application/pdf"}
	pngFormat = format{"png", ".png", "image/png"}
)

// healthHandler godoc
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// templatesHandler godoc
// @Summary      List templates
// @Description  Returns the nine templates with their colors and header layout.
// @Tags         templates
// @Produce      json
// @Success      200  {array}  invoice.Style
// @Router       /templates [get]
func (s *Server) templatesHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, invoice.Templates())
}

// renderHandler godoc
// @Summary      Render a document as PDF
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        request  body      RenderRequest  true  "Invoice, business profile and template"
// @Success      200      {file}    binary
// @Failure      400      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /invoices/render [post]
func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	req, tmpl, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.respond(w, r, req, tmpl, pdfFormat, nil, nil)
}

// previewHandler godoc
// @Summary      Render a PNG preview
// @Tags         invoices
// @Accept       json
// @Produce      image/png
// @Param        request  body      RenderRequest  true  "Invoice, business profile and template"
// @Param        scale    query     number         false "Pixels per point (0 < scale <= 8)"
// @Success      200      {file}    binary
// @Failure      400      {object}  errorResponse
// @Router       /invoices/preview [post]
func (s *Server) previewHandler(w http.ResponseWriter, r *http.Request) {
	scale := s.opts.PreviewScale
	if raw := r.URL.Query().Get("scale"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 8 {
			writeError(w, http.StatusBadRequest, "scale must be a number in (0, 8]")
			return
		}
		scale = v
	}
	req, tmpl, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.respond(w, r, req, tmpl, pngFormat, &scale, nil)
}

// storedInvoiceHandler godoc
// @Summary      Render a stored invoice
// @Tags         invoices
// @Produce      application/pdf
// @Param        id        path      string  true   "Invoice id (UUID)"
// @Param        template  query     string  false  "Template override"
// @Param        store     query     bool    false  "Store the rendering"
// @Success      200       {file}    binary
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /invoices/{id}/pdf [get]
func (s *Server) storedInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		writeError(w, http.StatusNotImplemented, "invoice store is not configured")
		return
	}
	tmpl, err := parseTemplate(r.URL.Query().Get("template"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.opts.Store.Get(r.Context(), mux.Vars(r)["id"])
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.log.Error("Loading invoice failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load invoice")
		return
	}

	req := RenderRequest{
		Invoice:  rec.Invoice,
		Business: rec.Business,
		Store:    r.URL.Query().Get("store") == "true",
	}
	s.respond(w, r, req, tmpl, pdfFormat, nil, func(location string, size int) {
		_, err := s.opts.Store.RecordArtifact(r.Context(), repository.Artifact{
			InvoiceID:   rec.ID,
			Template:    render.ResolveTemplate(rec.Invoice, tmpl),
			ContentType: pdfFormat.contentType,
			Location:    location,
			Size:        size,
		})
		if err != nil {
			s.log.Warn("Recording artifact failed", zap.Error(err))
		}
	})
}

func parseTemplate(raw string) (invoice.Template, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return invoice.ParseTemplate(raw)
}

// decode reads and validates a RenderRequest. On failure it has already
// written the response.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (RenderRequest, invoice.Template, bool) {
	var req RenderRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return req, "", false
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return req, "", false
	}
	if err := req.Invoice.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, "", false
	}
	tmpl, err := parseTemplate(req.Template)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, "", false
	}
	return req, tmpl, true
}

// respond renders, optionally stores, and writes the document. A non-nil
// scale selects the PNG preview; onStored, if set, runs after a successful
// store.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, req RenderRequest, tmpl invoice.Template, f format, scale *float64, onStored func(location string, size int)) {
	gen := s.opts.Generator
	resolved := render.ResolveTemplate(req.Invoice, tmpl)
	variant := s.opts.Variant
	if scale != nil {
		variant += fmt.Sprintf("|scale=%g", *scale)
	}

	data, hit, err := s.opts.Cache.GetOrRender(r.Context(), cache.Request{
		Invoice:  req.Invoice,
		Business: req.Business,
		Template: resolved,
		Format:   f.name,
		Variant:  variant,
	}, gen.Deterministic(resolved), func() ([]byte, error) {
		if scale != nil {
			return gen.GeneratePreview(req.Invoice, req.Business, resolved, *scale)
		}
		return gen.Generate(req.Invoice, req.Business, resolved)
	})
	if err != nil {
		s.log.Error("Rendering failed",
			zap.String("invoice", req.Invoice.Number),
			zap.String("template", string(resolved)),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate "+strings.ToUpper(f.name))
		return
	}
	s.log.Debug("Rendered document",
		zap.String("invoice", req.Invoice.Number),
		zap.String("template", string(resolved)),
		zap.Int("bytes", len(data)),
		zap.Bool("cache_hit", hit))

	if req.Store && s.opts.Sink != nil {
		key := storage.NewKey(s.opts.Prefix, req.Invoice.Number, f.ext)
		location, err := s.opts.Sink.Put(r.Context(), key, f.contentType, data)
		if err != nil {
			s.log.Error("Storing artifact failed", zap.String("key", key), zap.Error(err))
			writeError(w, http.StatusBadGateway, "failed to store document")
			return
		}
		w.Header().Set(ArtifactKeyHeader, location)
		if onStored != nil {
			onStored(location, len(data))
		}
	}

	name := req.Invoice.DocumentKind().Title()
	if req.Invoice.Number != "" {
		name = storage.SafeName(req.Invoice.Number)
	}
	w.Header().Set("Content-Type", f.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+f.ext))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
