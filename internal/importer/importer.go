// Package importer reads partner records and criteria documents from files.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/partnerscore/schema"
)

// identityAliases maps normalized header names to identity fields.
var identityAliases = map[string]string{
	"partner":          schema.FieldPartnerName,
	"partner_name":     schema.FieldPartnerName,
	"name":             schema.FieldPartnerName,
	"company":          schema.FieldPartnerName,
	"year":             schema.FieldYear,
	"fiscal_year":      schema.FieldYear,
	"tier":             schema.FieldTier,
	"partner_tier":     schema.FieldTier,
	"discount":         schema.FieldDiscountPct,
	"discount_pct":     schema.FieldDiscountPct,
	"discount_percent": schema.FieldDiscountPct,
	"city":             schema.FieldCity,
	"country":          schema.FieldCountry,
	"manager":          schema.FieldManagerName,
	"manager_name":     schema.FieldManagerName,
	"account_manager":  schema.FieldManagerName,
	"email":            schema.FieldManagerEmail,
	"manager_email":    schema.FieldManagerEmail,
}

// ErrNoNameColumn is returned when no header maps to the partner name.
var ErrNoNameColumn = errors.New("no partner name column found")

// column describes what one CSV column maps to.
type column struct {
	identity string // identity field, or empty
	metric   string // metric key, or empty
}

// Result is the outcome of reading a partner file.
type Result struct {
	Partners []schema.RawPartner
	Unmapped []string // headers that match neither an identity field nor a metric
	Skipped  []int    // input line numbers of rows without a partner name
}

// ResolveHeader maps a column header to an identity field or a metric key.
func ResolveHeader(header string) (identity, metric string) {
	norm := schema.NormalizeLabel(header)
	if field, ok := identityAliases[norm]; ok {
		return field, ""
	}
	if key, ok := schema.ResolveMetricKey(header); ok {
		return "", key
	}
	return "", ""
}

// ReadPartnersCSV reads partners from CSV with a header row.
// Headers are resolved with ResolveHeader. Values are kept in display form.
func ReadPartnersCSV(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("empty CSV input: %w", ErrNoNameColumn)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var result Result
	columns := make([]column, len(header))
	hasName := false
	for i, h := range header {
		identity, metric := ResolveHeader(h)
		columns[i] = column{identity: identity, metric: metric}
		switch {
		case identity == schema.FieldPartnerName:
			hasName = true
		case identity == "" && metric == "":
			result.Unmapped = append(result.Unmapped, h)
		}
	}
	if !hasName {
		return Result{}, ErrNoNameColumn
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		p := schema.RawPartner{Raw: make(map[string]string)}
		for i, value := range record {
			if i >= len(columns) {
				break
			}
			col := columns[i]
			switch {
			case col.identity != "":
				p.SetIdentityField(col.identity, value)
			case col.metric != "":
				if v := strings.TrimSpace(value); v != "" {
					p.Raw[col.metric] = v
				}
			}
		}
		if p.Name == "" {
			result.Skipped = append(result.Skipped, line)
			continue
		}
		result.Partners = append(result.Partners, p)
	}
	return result, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
