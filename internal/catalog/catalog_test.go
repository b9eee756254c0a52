package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

const sampleCSV = `District,Company_Type,Job_Role_Level,Internship_Exp,CGPA,College_Tier,Annual_Salary_Rupees
Pune,Startup,Software Developer - GET,6-12 months,8.0-8.9,Tier-2,550000
Thane,Service-Based MNC,IT Support Specialist - SDA,None,7.0-7.9,Tier-3,300000
Pune,Startup,Software Developer - GET,6-12 months,8.0-8.9,Tier-2,not-a-number
Mumbai Suburban,Product-Based MNC,Software Developer - GET,> 1 year,9.0+,Tier-1,720000
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "salary_dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDataset(t *testing.T) {
	t.Run("drops rows with non-numeric salary", func(t *testing.T) {
		ds, err := LoadDataset(writeDataset(t, sampleCSV))
		require.NoError(t, err)
		assert.Equal(t, 3, ds.Rows())
	})

	t.Run("missing column fails", func(t *testing.T) {
		_, err := LoadDataset(writeDataset(t, "District,Salary\nPune,500000\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing columns")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("all rows unusable fails", func(t *testing.T) {
		csv := "District,Company_Type,Job_Role_Level,Internship_Exp,CGPA,College_Tier,Annual_Salary_Rupees\nPune,Startup,Dev,None,9.0+,Tier-1,abc\n"
		_, err := LoadDataset(writeDataset(t, csv))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no usable rows")
	})
}

func TestNewDegradesWithoutDataset(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "missing.csv"), logger.NewNoOpLogger())

	assert.False(t, c.Loaded())
	// fallback-only mode still serves every field
	opts := c.FieldOptions()
	assert.NotEmpty(t, opts[models.FieldDistrict])
	assert.Contains(t, opts[models.FieldInternshipExp], "None")
}

func TestOptions(t *testing.T) {
	c := NewWithDataset(DummyDataset(), logger.NewNoOpLogger())

	t.Run("union of dataset and fallback, sorted", func(t *testing.T) {
		opts := c.Options(models.FieldDistrict, []string{"Nashik", "Other"})
		assert.Contains(t, opts, "Pune")
		assert.Contains(t, opts, "Nashik")
		assert.IsIncreasing(t, opts)
	})

	t.Run("fallback Other sentinel is dropped", func(t *testing.T) {
		opts := c.Options(models.FieldCompanyType, []string{"Other"})
		assert.NotContains(t, opts, "Other")
	})

	t.Run("internship always offers None", func(t *testing.T) {
		cEmpty := NewWithDataset(nil, logger.NewNoOpLogger())
		opts := cEmpty.Options(models.FieldInternshipExp, []string{"< 6 months"})
		assert.Equal(t, "None", opts[0])
	})
}

func TestFieldOptions(t *testing.T) {
	c := NewWithDataset(DummyDataset(), logger.NewNoOpLogger())
	opts := c.FieldOptions()

	require.Len(t, opts, len(models.FeatureColumns))

	roles := opts[models.FieldJobRoleLevel]
	assert.Contains(t, roles, models.NotListedRole)
	assert.NotContains(t, roles, "Other")
	assert.Equal(t, models.NotListedRole, roles[len(roles)-1])
}

func TestIsCatalogRole(t *testing.T) {
	c := NewWithDataset(DummyDataset(), logger.NewNoOpLogger())

	assert.True(t, c.IsCatalogRole("Software Developer - GET"))
	assert.False(t, c.IsCatalogRole(models.NotListedRole))
	assert.False(t, c.IsCatalogRole("Blockchain Wizard"))
}
