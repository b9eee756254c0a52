package models

// Material categories for the study-materials browser.
const (
	CategoryAll        = "all"
	CategoryITServices = "it"
	CategoryConsulting = "consulting"
	CategoryEcommerce  = "ecommerce"
)

// StudyResource is one linked preparation resource.
type StudyResource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Company is one entry of the study-materials catalog.
type Company struct {
	Name        string          `json:"name"`
	FullName    string          `json:"full_name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	HiringModes []string        `json:"hiring_modes"`
	Materials   []StudyResource `json:"materials"`
}

// WatchdogSubscription is a stored request for periodic job-search reports.
type WatchdogSubscription struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Query    string `json:"query"`
	Source   string `json:"source"`
	Active   bool   `json:"active"`
}
