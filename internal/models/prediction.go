package models

import "time"

// Feature column names shared by the dataset, the model artifact and the
// prediction form. Order matters: it is the order the model was trained on.
const (
	FieldDistrict      = "District"
	FieldCompanyType   = "Company_Type"
	FieldJobRoleLevel  = "Job_Role_Level"
	FieldInternshipExp = "Internship_Exp"
	FieldCGPA          = "CGPA"
	FieldCollegeTier   = "College_Tier"

	TargetColumn = "Annual_Salary_Rupees"
)

// FeatureColumns lists the six categorical inputs in training order.
var FeatureColumns = []string{
	FieldDistrict,
	FieldCompanyType,
	FieldJobRoleLevel,
	FieldInternshipExp,
	FieldCGPA,
	FieldCollegeTier,
}

// NotListedRole is the sentinel a user selects to enter a free-text role.
const NotListedRole = "Not Listed"

// Profile is one prediction request: six categorical fields, all drawn from
// the catalog except JobRoleLevel which may be free text for custom roles.
type Profile struct {
	District      string `json:"district"`
	CompanyType   string `json:"company_type"`
	JobRoleLevel  string `json:"job_role_level"`
	InternshipExp string `json:"internship_exp"`
	CGPA          string `json:"cgpa"`
	CollegeTier   string `json:"college_tier"`
}

// Get returns the value for a feature column name.
func (p *Profile) Get(field string) string {
	switch field {
	case FieldDistrict:
		return p.District
	case FieldCompanyType:
		return p.CompanyType
	case FieldJobRoleLevel:
		return p.JobRoleLevel
	case FieldInternshipExp:
		return p.InternshipExp
	case FieldCGPA:
		return p.CGPA
	case FieldCollegeTier:
		return p.CollegeTier
	}
	return ""
}

// Recommendation is one skill/course suggestion, parsed from the
// generative-language response or taken from the canned fallback set.
type Recommendation struct {
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Link     string `json:"link"`
	Priority string `json:"priority"` // High | Medium
}

// PredictionResult is the outcome of one pipeline run.
// Invariant: Min <= Center <= Max, Min >= 180000.
type PredictionResult struct {
	Center          float64          `json:"center"`
	Min             float64          `json:"min"`
	Max             float64          `json:"max"`
	Recommendations []Recommendation `json:"recommendations"`
	Profile         Profile          `json:"profile"`
	CustomRole      bool             `json:"custom_role"`
	// Warning is set when a degraded path produced Center (AI estimate
	// unavailable, model inference failed). Non-fatal, surfaced to the user.
	Warning string `json:"warning,omitempty"`
}

// PredictionLog is a persisted predictions row.
type PredictionLog struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Value         string    `json:"prediction_value"`
	RolePredicted string    `json:"role_predicted"`
	CreatedAt     time.Time `json:"created_at"`
}

// Feedback is a persisted feedback row comparing prediction to reality.
type Feedback struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	JobRole         string    `json:"job_role"`
	PredictedSalary string    `json:"predicted_salary"`
	ActualSalary    string    `json:"actual_salary"`
	AccuracyRating  string    `json:"accuracy_rating"`
	CreatedAt       time.Time `json:"created_at"`
}
