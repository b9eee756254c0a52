// Package catalog derives the valid value-set for each categorical input
// field from the reference dataset, with static fallbacks when the dataset
// is unavailable. A missing dataset is a normal, lower-fidelity operating
// mode, never an error.
package catalog

import (
	"sort"

	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

// Catalog answers option queries against the loaded dataset. Loaded once at
// startup and read-only afterwards.
type Catalog struct {
	ds     *Dataset // nil when the reference file was missing or corrupt
	logger logger.Logger
}

// New loads the reference dataset from path. Any failure degrades to the
// fallback-only mode.
func New(path string, log logger.Logger) *Catalog {
	ds, err := LoadDataset(path)
	if err != nil {
		log.Warn("reference dataset unavailable, using fallback options", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return &Catalog{ds: nil, logger: log}
	}
	return &Catalog{ds: ds, logger: log}
}

// NewWithDataset wires a pre-built dataset; used by tests.
func NewWithDataset(ds *Dataset, log logger.Logger) *Catalog {
	return &Catalog{ds: ds, logger: log}
}

// Loaded reports whether the reference dataset backs this catalog.
func (c *Catalog) Loaded() bool {
	return c.ds != nil
}

// Options returns the ordered option set for a field: the sorted union of
// the dataset column's distinct non-null values and the fallback list
// (minus "Other" sentinels), with the "Not Listed" sentinel appended for
// the job-role field. When the dataset is missing the fallback is returned
// unchanged, except that "None" is prepended for internship experience.
func (c *Catalog) Options(field string, fallback []string) []string {
	if c.ds != nil && c.ds.HasColumn(field) {
		opts := c.ds.DistinctValues(field)

		if field == models.FieldInternshipExp && !contains(opts, "None") {
			opts = append([]string{"None"}, opts...)
		}

		seen := make(map[string]bool, len(opts)+len(fallback))
		for _, v := range opts {
			seen[v] = true
		}
		for _, v := range fallback {
			if v == "Other" || v == "Other / Not Listed" {
				continue
			}
			seen[v] = true
		}

		final := make([]string, 0, len(seen))
		for v := range seen {
			final = append(final, v)
		}
		sort.Strings(final)

		if field == models.FieldJobRoleLevel && !contains(final, models.NotListedRole) {
			final = append(final, models.NotListedRole)
		}

		if len(final) == 0 {
			return fallback
		}
		return final
	}

	if field == models.FieldInternshipExp && !contains(fallback, "None") {
		return append([]string{"None"}, fallback...)
	}
	return fallback
}

// Defaults for each field, used when the caller supplies no fallback.
var defaultFallbacks = map[string][]string{
	models.FieldDistrict:      {"Thane", "Pune", "Mumbai Suburban", "Other"},
	models.FieldCompanyType:   {"Service-Based MNC", "Startup", "Product-Based MNC", "Mid-Sized Indian Co.", "Other"},
	models.FieldJobRoleLevel:  {"Software Developer - Graduate Engineer Trainee (GET)", "IT Support Specialist - Service Desk Analyst"},
	models.FieldInternshipExp: {"None", "< 6 months", "6-12 months", "> 1 year"},
	models.FieldCGPA:          {"9.0+", "8.0-8.9", "7.0-7.9", "< 7.0"},
	models.FieldCollegeTier:   {"Tier-1", "Tier-2", "Tier-3"},
}

// FieldOptions returns options for every feature column using the built-in
// fallbacks; this backs the /api/options endpoint. The job-role list never
// carries the bare "Other" sentinel.
func (c *Catalog) FieldOptions() map[string][]string {
	out := make(map[string][]string, len(models.FeatureColumns))
	for _, field := range models.FeatureColumns {
		fallback := append([]string(nil), defaultFallbacks[field]...)
		opts := c.Options(field, fallback)
		if field == models.FieldJobRoleLevel {
			filtered := make([]string, 0, len(opts))
			for _, r := range opts {
				if r != "Other" {
					filtered = append(filtered, r)
				}
			}
			if !contains(filtered, models.NotListedRole) {
				filtered = append(filtered, models.NotListedRole)
			}
			opts = filtered
		}
		out[field] = opts
	}
	return out
}

// IsCatalogRole reports whether role is one of the enumerated job-role
// options (the "Not Listed" sentinel itself is not a catalog role).
func (c *Catalog) IsCatalogRole(role string) bool {
	if role == models.NotListedRole {
		return false
	}
	opts := c.FieldOptions()[models.FieldJobRoleLevel]
	return contains(opts, role)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
