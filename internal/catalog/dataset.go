package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"bcasprint-backend/internal/models"
)

// Dataset is the reference table loaded from CSV: the six feature columns
// plus the numeric target salary column. Rows whose target is non-numeric
// are dropped during load, mirroring the training-data cleaning step.
type Dataset struct {
	columns map[string][]string
	target  []float64
}

// LoadDataset reads the CSV at path. It requires a header row containing
// every feature column and the target column.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty dataset")
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	required := append(append([]string{}, models.FeatureColumns...), models.TargetColumn)
	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset missing columns: %s", strings.Join(missing, ", "))
	}

	ds := &Dataset{columns: make(map[string][]string, len(models.FeatureColumns))}
	targetIdx := index[models.TargetColumn]

	for _, row := range records[1:] {
		if targetIdx >= len(row) {
			continue
		}
		salary, err := strconv.ParseFloat(strings.TrimSpace(row[targetIdx]), 64)
		if err != nil {
			continue // non-numeric target, drop the row
		}
		ds.target = append(ds.target, salary)
		for _, col := range models.FeatureColumns {
			i := index[col]
			val := ""
			if i < len(row) {
				val = strings.TrimSpace(row[i])
			}
			ds.columns[col] = append(ds.columns[col], val)
		}
	}

	if len(ds.target) == 0 {
		return nil, fmt.Errorf("dataset has no usable rows")
	}
	return ds, nil
}

// DummyDataset returns the small built-in frame used when the reference
// file is absent, so option lists stay populated.
func DummyDataset() *Dataset {
	return &Dataset{
		columns: map[string][]string{
			models.FieldDistrict:      {"Pune", "Thane", "Mumbai Suburban", "Other"},
			models.FieldCompanyType:   {"Service-Based MNC", "Startup", "Product-Based MNC", "Mid-Sized Indian Co."},
			models.FieldJobRoleLevel:  {"Software Developer - GET", "IT Support Specialist - SDA"},
			models.FieldInternshipExp: {"6-12 months", "None"},
			models.FieldCGPA:          {"8.0-8.9", "7.0-7.9"},
			models.FieldCollegeTier:   {"Tier-2", "Tier-3"},
		},
		target: []float64{550000, 300000, 400000, 600000},
	}
}

// HasColumn reports whether the column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.columns[name]
	return ok
}

// DistinctValues returns the sorted distinct non-empty values of a column.
func (d *Dataset) DistinctValues(name string) []string {
	seen := make(map[string]bool)
	for _, v := range d.columns[name] {
		if v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Rows returns the number of usable rows.
func (d *Dataset) Rows() int {
	return len(d.target)
}
