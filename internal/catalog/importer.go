package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pharmaware/pharmacare/pkg/db"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"gorm.io/gorm"
)

// ImportResult summarizes one CSV ingestion run.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportCSV ingests a medicine catalog from CSV. Expected columns:
// name, generic_name, brand_name, manufacturer, dosage_form, strength,
// category, hsn_code, gst_rate, reorder_level. The first row is a header.
// Rows with a blank name or an unknown GST rate are skipped, not fatal.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read catalog header")
	}

	result := &ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read catalog row")
		}
		if len(record) < 9 {
			result.Skipped++
			continue
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			result.Skipped++
			continue
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(record[8]), 64)
		if err != nil {
			s.warn(ctx, fmt.Sprintf("catalog import: bad gst rate on line %d: %v", line, err))
			result.Skipped++
			continue
		}
		slab, err := s.repo.FindSlabByRate(ctx, rate)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.warn(ctx, fmt.Sprintf("catalog import: no gst slab for rate %v on line %d", rate, line))
				result.Skipped++
				continue
			}
			return nil, db.Translate(err, "look up gst slab")
		}

		input := CreateMedicineInput{
			Name:         name,
			GenericName:  field(record, 1),
			BrandName:    field(record, 2),
			Manufacturer: field(record, 3),
			DosageForm:   field(record, 4),
			Strength:     field(record, 5),
			Category:     field(record, 6),
			HSNCode:      field(record, 7),
			GstSlabID:    slab.ID,
		}
		if len(record) > 9 {
			if level, err := strconv.ParseInt(strings.TrimSpace(record[9]), 10, 64); err == nil && level >= 0 {
				input.ReorderLevel = level
			}
		}

		if _, err := s.CreateMedicine(ctx, input); err != nil {
			s.warn(ctx, fmt.Sprintf("catalog import: line %d rejected: %v", line, err))
			result.Skipped++
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (s *Service) warn(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Warn(ctx, msg)
	}
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
