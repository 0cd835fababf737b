package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicing-renderer/internal/config"
	"github.com/invoicing-renderer/internal/repository"
	"github.com/invoicing-renderer/pkg/invoice"
	"github.com/invoicing-renderer/pkg/render"
)

type fakeStore struct {
	records   map[string]*repository.Record
	artifacts []repository.Artifact
	err       error
}

func (f *fakeStore) Get(_ context.Context, id string) (*repository.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) RecordArtifact(_ context.Context, a repository.Artifact) (uuid.UUID, error) {
	f.artifacts = append(f.artifacts, a)
	return uuid.New(), nil
}

type fakeSink struct {
	keys []string
	err  error
}

func (f *fakeSink) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "mem://" + key, nil
}

func httpConfig() config.HTTPConfig {
	return config.HTTPConfig{MaxBodySize: 1 << 20, SwaggerEnabled: true}
}

func newTestServer(opts Options) *Server {
	if opts.Generator == nil {
		opts.Generator = render.NewGenerator()
	}
	return New(httpConfig(), opts)
}

func sampleRequest(tmpl string) RenderRequest {
	return RenderRequest{
		Invoice: invoice.Invoice{
			Number:    "INV-001",
			IssueDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Status:    invoice.StatusSent,
			Client:    invoice.Client{Name: "Acme Corp"},
			Items: []invoice.LineItem{
				invoice.NewLineItem("Design work", decimal.NewFromInt(2), decimal.NewFromInt(50)),
			},
			TaxRate: decimal.RequireFromString("0.08"),
		},
		Business: invoice.BusinessInfo{Name: "Studio North"},
		Template: tmpl,
	}
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(Options{}).Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestServer(Options{}).Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestTemplates(t *testing.T) {
	rec := do(t, newTestServer(Options{}).Handler(), http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var styles []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &styles))
	require.Len(t, styles, 9)
	assert.Equal(t, "classic", styles[0]["template"])
	assert.Equal(t, "#2c3e50", styles[0]["primary"])
}

func TestRenderPDF(t *testing.T) {
	rec := do(t, newTestServer(Options{}).Handler(), http.MethodPost, "/invoices/render", sampleRequest("finance"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="INV-001.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	assert.Empty(t, rec.Header().Get(ArtifactKeyHeader))
}

func TestRenderRejectsBadInput(t *testing.T) {
	h := newTestServer(Options{}).Handler()

	rec := do(t, h, http.MethodPost, "/invoices/render", sampleRequest("baroque"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown template")

	bad := sampleRequest("")
	bad.Invoice.Status = "lost"
	rec = do(t, h, http.MethodPost, "/invoices/render", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/invoices/render", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRenderBodyTooLarge(t *testing.T) {
	cfg := httpConfig()
	cfg.MaxBodySize = 16
	h := New(cfg, Options{Generator: render.NewGenerator()}).Handler()

	rec := do(t, h, http.MethodPost, "/invoices/render", sampleRequest("classic"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRenderStoresArtifact(t *testing.T) {
	sink := &fakeSink{}
	h := newTestServer(Options{Sink: sink, Prefix: "invoices/"}).Handler()

	req := sampleRequest("legal")
	req.Store = true
	rec := do(t, h, http.MethodPost, "/invoices/render", req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sink.keys, 1)
	assert.True(t, strings.HasPrefix(sink.keys[0], "invoices/INV-001/"))
	assert.Equal(t, "mem://"+sink.keys[0], rec.Header().Get(ArtifactKeyHeader))
}

func TestRenderStoreFailure(t *testing.T) {
	h := newTestServer(Options{Sink: &fakeSink{err: errors.New("disk full")}}).Handler()
	req := sampleRequest("")
	req.Store = true

	rec := do(t, h, http.MethodPost, "/invoices/render", req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPreview(t *testing.T) {
	h := newTestServer(Options{}).Handler()

	rec := do(t, h, http.MethodPost, "/invoices/preview?scale=0.25", sampleRequest("creative"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 153, img.Bounds().Dx())

	rec = do(t, h, http.MethodPost, "/invoices/preview?scale=20", sampleRequest("creative"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoredInvoice(t *testing.T) {
	id := uuid.New()
	sample := sampleRequest("")
	sample.Invoice.Template = invoice.TemplateExecutive
	store := &fakeStore{records: map[string]*repository.Record{
		id.String(): {ID: id, Invoice: sample.Invoice, Business: sample.Business},
	}}
	sink := &fakeSink{}
	h := newTestServer(Options{Store: store, Sink: sink}).Handler()

	rec := do(t, h, http.MethodGet, "/invoices/"+id.String()+"/pdf?store=true", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	require.Len(t, store.artifacts, 1)
	assert.Equal(t, id, store.artifacts[0].InvoiceID)
	assert.Equal(t, invoice.TemplateExecutive, store.artifacts[0].Template)
	assert.Equal(t, rec.Body.Len(), store.artifacts[0].Size)

	rec = do(t, h, http.MethodGet, "/invoices/"+id.String()+"/pdf?template=legal", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, store.artifacts, 1)

	rec = do(t, h, http.MethodGet, "/invoices/"+uuid.NewString()+"/pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/invoices/42/pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/invoices/"+id.String()+"/pdf?template=baroque", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	store.err = errors.New("db down")
	rec = do(t, h, http.MethodGet, "/invoices/"+id.String()+"/pdf", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStoredInvoiceWithoutStore(t *testing.T) {
	rec := do(t, newTestServer(Options{}).Handler(), http.MethodGet, "/invoices/"+uuid.NewString()+"/pdf", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newTestServer(Options{}).Handler(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestSwaggerRoute(t *testing.T) {
	rec := do(t, newTestServer(Options{}).Handler(), http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	cfg := httpConfig()
	cfg.SwaggerEnabled = false
	rec = do(t, New(cfg, Options{Generator: render.NewGenerator()}).Handler(), http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
