// Package importer provides CSV and Excel import of cut lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive Spanish and English header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Row is one imported cut group. ProfileCode is empty when the sheet has
// no profile column.
type Row struct {
	ProfileCode string
	Group       model.CutGroup
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rows     []Row
	Errors   []string
	Warnings []string
}

// Groups returns the imported cut groups in file order.
func (r ImportResult) Groups() []model.CutGroup {
	groups := make([]model.CutGroup, len(r.Rows))
	for i, row := range r.Rows {
		groups[i] = row.Group
	}
	return groups
}

// ToProfiles builds one profile per distinct profile code, in order of
// first appearance. Rows without a code go to base. Every profile carries
// base's weight, bar length and price.
func (r ImportResult) ToProfiles(base model.Profile) []model.Profile {
	var profiles []model.Profile
	index := map[string]int{}

	for _, row := range r.Rows {
		code := row.ProfileCode
		if code == "" {
			code = base.Code
		}
		i, ok := index[strings.ToUpper(code)]
		if !ok {
			profiles = append(profiles, model.NewProfile(code, base.WeightPerMeter, base.BarLength, base.PricePerKg))
			i = len(profiles) - 1
			index[strings.ToUpper(code)] = i
		}
		profiles[i].AddGroup(row.Group)
	}
	return profiles
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Length     int
	Quantity   int
	Angle      int
	Label      int
	Adjustment int
	AdjustBy   int
	Profile    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"length":     {"length", "len", "mm", "length mm", "medida", "largo", "longitud", "corte"},
	"quantity":   {"quantity", "qty", "count", "pcs", "pieces", "cantidad", "cant", "piezas"},
	"angle":      {"angle", "angulo", "ángulo", "deg", "grados"},
	"label":      {"label", "name", "part", "piece", "description", "pieza", "nombre", "descripcion", "descripción"},
	"adjustment": {"adjustment", "adjust", "ajuste", "ajustar"},
	"adjust_by":  {"adjust mm", "adjustment mm", "adjust by", "valor ajuste", "ajuste mm", "mm ajuste"},
	"profile":    {"profile", "perfil", "code", "codigo", "código"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (length, quantity, angle, label) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Length:     -1,
		Quantity:   -1,
		Angle:      -1,
		Label:      -1,
		Adjustment: -1,
		AdjustBy:   -1,
		Profile:    -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		role := roleOf(normalized)
		if role == "" {
			continue
		}
		isHeader = true
		target := mapping.slot(role)
		if *target == -1 {
			*target = i
		}
	}

	if !isHeader {
		return positionalMapping(), false
	}
	return mapping, true
}

func positionalMapping() ColumnMapping {
	return ColumnMapping{
		Length:     0,
		Quantity:   1,
		Angle:      2,
		Label:      3,
		Adjustment: -1,
		AdjustBy:   -1,
		Profile:    -1,
	}
}

func roleOf(header string) string {
	for role, aliases := range headerAliases {
		for _, alias := range aliases {
			if header == alias {
				return role
			}
		}
	}
	return ""
}

func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "length":
		return &m.Length
	case "quantity":
		return &m.Quantity
	case "angle":
		return &m.Angle
	case "label":
		return &m.Label
	case "adjustment":
		return &m.Adjustment
	case "adjust_by":
		return &m.AdjustBy
	default:
		return &m.Profile
	}
}

// parseNumber accepts "1234.5" and the decimal-comma form "1234,5".
// NaN and infinities are rejected.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a cut group from a row using the given column mapping.
// Returns the row, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (Row, string, []string) {
	var warnings []string

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return Row{}, fmt.Sprintf("%s: Missing length value", rowLabel), nil
	}
	length, err := parseNumber(lengthStr)
	if err != nil {
		return Row{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), nil
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return Row{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
	}

	if length <= 0 || qty <= 0 {
		return Row{}, fmt.Sprintf("%s: Length and quantity must be positive", rowLabel), nil
	}

	angle, err := model.ParseAngle(getCell(row, mapping.Angle))
	if err != nil {
		return Row{}, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}

	group := model.NewCutGroup(length, qty, angle)
	group.Label = getCell(row, mapping.Label)

	adjStr := getCell(row, mapping.Adjustment)
	adj, ok := model.ParseAdjustment(adjStr)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown adjustment '%s', ignoring", rowLabel, adjStr))
	}
	if adj != model.AdjustNone {
		byStr := getCell(row, mapping.AdjustBy)
		by, err := parseNumber(byStr)
		if err != nil || by < 0 {
			return Row{}, fmt.Sprintf("%s: Invalid adjustment value '%s'", rowLabel, byStr), nil
		}
		group.Adjustment = adj
		group.AdjustBy = by
		if group.FinalLength() <= 0 {
			return Row{}, fmt.Sprintf("%s: Adjusted length %.1f mm is not positive", rowLabel, group.FinalLength()), nil
		}
	}

	return Row{ProfileCode: getCell(row, mapping.Profile), Group: group}, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a cut list from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports a cut list from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports a cut list from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx/.xlsm/.xls go to
// ImportExcel, anything else is read as CSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	for _, ext := range []string{".xlsx", ".xlsm", ".xls"} {
		if strings.HasSuffix(lower, ext) {
			return ImportExcel(path)
		}
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into cut groups.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Length == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Length")
			return result
		}
		if mapping.Adjustment != -1 && mapping.AdjustBy == -1 {
			result.Warnings = append(result.Warnings, "Adjustment column without adjustment value column")
		}
	} else if len(rows[0]) > 0 {
		// Unrecognized header: skip it but keep positional mapping
		if _, err := parseNumber(rows[0][0]); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		parsed, errMsg, warnings := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Rows = append(result.Rows, parsed)
	}

	return result
}
