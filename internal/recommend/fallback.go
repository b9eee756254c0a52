package recommend

import "bcasprint-backend/internal/models"

// Free learning resources referenced by the canned recommendations.
var freeResources = map[string]string{
	"sql":      "https://www.simplilearn.com/free-online-course-to-learn-sql-basics-skillup",
	"python":   "https://www.analyticsvidhya.com/courses/introduction-to-data-science/",
	"dsa":      "https://leetcode.com/",
	"comm":     "https://www.coursera.org/learn/effective-communication-skills",
	"cloud":    "https://www.mygreatlearning.com/cloud-computing/free-courses",
	"itil":     "https://skillsbuild.org/courses/itil-foundation-course",
	"security": "https://www.edx.org/course/introduction-to-cybersecurity",
	"tableau":  "https://www.tableau.com/learn/training/free",
}

var commonRecs = map[string]models.Recommendation{
	"comm_high": {
		Name:     "Advanced Communication Skills",
		Reason:   "Crucial for better offers and client interaction.",
		Link:     freeResources["comm"],
		Priority: "High",
	},
	"sql_high": {
		Name:     "SQL Mastery and Database Fundamentals",
		Reason:   "Essential foundation for all data and backend roles.",
		Link:     freeResources["sql"],
		Priority: "High",
	},
	"python_data_high": {
		Name:     "Python for Data Analysis (Pandas, NumPy)",
		Reason:   "Necessary for data manipulation and scripting automation.",
		Link:     freeResources["python"],
		Priority: "High",
	},
	"dsa_high": {
		Name:     "Data Structures & Algorithms Practice",
		Reason:   "Core skill required for all major tech company interviews.",
		Link:     freeResources["dsa"],
		Priority: "High",
	},
	"cloud_med": {
		Name:     "Cloud Computing Fundamentals (AWS/Azure)",
		Reason:   "Highly demanded skill in modern infrastructure.",
		Link:     freeResources["cloud"],
		Priority: "Medium",
	},
	"itil_med": {
		Name:     "ITIL Foundation Certification Prep",
		Reason:   "Standardize IT service management best practices.",
		Link:     freeResources["itil"],
		Priority: "Medium",
	},
	"sec_high": {
		Name:     "Cybersecurity Basics and Network Defense",
		Reason:   "Foundation for security and critical infrastructure roles.",
		Link:     freeResources["security"],
		Priority: "High",
	},
	"viz_med": {
		Name:     "Data Visualization (Tableau/Power BI Basics)",
		Reason:   "Effective presentation of data insights to stakeholders.",
		Link:     freeResources["tableau"],
		Priority: "Medium",
	},
}

// FallbackRecommendations is the fixed 4-item list substituted whenever the
// recommender is unavailable or unparseable. It is role-independent.
func FallbackRecommendations(role string) []models.Recommendation {
	return []models.Recommendation{
		commonRecs["dsa_high"],
		commonRecs["sql_high"],
		commonRecs["comm_high"],
		commonRecs["cloud_med"],
	}
}
