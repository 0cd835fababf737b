// Package repository reads invoice records from PostgreSQL and records the
// artifacts rendered from them.
package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invoicing-renderer/internal/config"
	"github.com/invoicing-renderer/pkg/invoice"
)

var (
	// ErrNotFound is returned when no invoice has the requested id.
	ErrNotFound = errors.New("repository: invoice not found")
	// ErrInvalidID is returned for ids that are not UUIDs.
	ErrInvalidID = errors.New("repository: invalid invoice id")
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Schema is the DDL of the tables this package reads and writes.
//
//go:embed schema.sql
var Schema string

// Migrate applies Schema. It is safe to run against an existing database.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Record is one stored invoice together with its issuing business.
type Record struct {
	ID       uuid.UUID
	Invoice  invoice.Invoice
	Business invoice.BusinessInfo
}

// Repository is the PostgreSQL invoice store.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

// New wraps an open database handle.
func New(db *sql.DB, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger}
}

const selectInvoice = `SELECT i.number, i.kind, i.issue_date, i.due_date, i.status, i.client, i.line_items,
	i.tax_rate, COALESCE(i.notes, ''), COALESCE(i.template, ''),
	COALESCE(b.name, ''), COALESCE(b.address, ''), COALESCE(b.city, ''), COALESCE(b.state, ''),
	COALESCE(b.zip_code, ''), COALESCE(b.country, ''), COALESCE(b.email, ''), COALESCE(b.phone, ''),
	COALESCE(b.website, '')
FROM invoices i
LEFT JOIN business_profiles b ON b.id = i.business_id
WHERE i.id = $1`

// Get loads the invoice with the given id.
func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var (
		rec                   Record
		issued, due           sql.NullTime
		clientJSON, itemsJSON []byte
		taxRate               decimal.NullDecimal
		kind, status, tmpl    string
	)
	rec.ID = uid
	inv, biz := &rec.Invoice, &rec.Business
	err = r.db.QueryRowContext(ctx, selectInvoice, uid.String()).Scan(
		&inv.Number, &kind, &issued, &due, &status, &clientJSON, &itemsJSON,
		&taxRate, &inv.Notes, &tmpl,
		&biz.Name, &biz.Address, &biz.City, &biz.State,
		&biz.ZipCode, &biz.Country, &biz.Email, &biz.Phone,
		&biz.Website,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query invoice %s: %w", uid, err)
	}

	inv.Kind = invoice.Kind(kind)
	inv.Status = invoice.Status(status)
	inv.Template = invoice.Template(tmpl)
	inv.IssueDate = issued.Time
	inv.DueDate = due.Time
	if taxRate.Valid {
		inv.TaxRate = taxRate.Decimal
	}
	if len(clientJSON) > 0 {
		if err := json.Unmarshal(clientJSON, &inv.Client); err != nil {
			return nil, fmt.Errorf("decode client of %s: %w", uid, err)
		}
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &inv.Items); err != nil {
			return nil, fmt.Errorf("decode line items of %s: %w", uid, err)
		}
	}
	return &rec, nil
}

const insertArtifact = `INSERT INTO invoice_artifacts (id, invoice_id, template, content_type, location, size_bytes)
VALUES ($1, $2, $3, $4, $5, $6)`

// Artifact describes one stored rendering of an invoice.
type Artifact struct {
	InvoiceID   uuid.UUID
	Template    invoice.Template
	ContentType string
	Location    string
	Size        int
}

// RecordArtifact remembers where a rendering of an invoice was stored.
func (r *Repository) RecordArtifact(ctx context.Context, a Artifact) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx, insertArtifact,
		id.String(), a.InvoiceID.String(), string(a.Template), a.ContentType, a.Location, a.Size)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("insert artifact: %w", err)
	}
	r.logger.Debug("Recorded artifact",
		zap.String("invoice_id", a.InvoiceID.String()),
		zap.String("location", a.Location))
	return id, nil
}
