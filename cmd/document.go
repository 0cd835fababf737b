package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/invoicing-renderer/pkg/invoice"
)

// Document is the input of the render and preview commands.
type Document struct {
	Invoice  invoice.Invoice      `json:"invoice"`
	Business invoice.BusinessInfo `json:"business"`
	Template string               `json:"template,omitempty"`
}

// ReadDocument loads a document from a .json, .yaml or .yml file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("document file is empty")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := doc.Invoice.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// yamlToJSON re-encodes YAML as JSON so both formats share the JSON field
// names and date handling of the invoice types.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// TemplateOverride returns the template to render with: flag wins over the
// document's own template field. An empty result defers to invoice.template.
func (d *Document) TemplateOverride(flag string) (invoice.Template, error) {
	name := flag
	if strings.TrimSpace(name) == "" {
		name = d.Template
	}
	if strings.TrimSpace(name) == "" {
		return "", nil
	}
	return invoice.ParseTemplate(name)
}
