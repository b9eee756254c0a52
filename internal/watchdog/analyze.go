// Package watchdog builds job-search digests: profile analysis, search
// links across the major boards, the report email and a periodic resend
// scheduler.
package watchdog

import (
	"regexp"
	"strings"
)

// Profile sources, in priority order.
const (
	SourceResume = "Resume Analysis"
	SourceManual = "Manual Input"
)

// bcaSkills are the resume keywords scanned for, in priority order. The
// first hit names the suggested role.
var bcaSkills = []string{
	"Python", "Java", "SQL", "React", "Node",
	"Data Analyst", "Testing", "Support", "Network", "Linux",
}

var skillPatterns = compileSkillPatterns()

func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(bcaSkills))
	for _, skill := range bcaSkills {
		patterns[skill] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return patterns
}

// Analysis is a derived job-search intent.
type Analysis struct {
	Query  string   `json:"query"`
	Source string   `json:"source"`
	Skills []string `json:"skills"`
}

// AnalyzeProfile derives a search query. Resume text wins over manual input;
// with neither the result is nil.
func AnalyzeProfile(resumeText, manualRole, manualLoc string) *Analysis {
	resumeText = strings.TrimSpace(resumeText)
	manualRole = strings.TrimSpace(manualRole)
	manualLoc = strings.TrimSpace(manualLoc)

	if resumeText != "" {
		var found []string
		for _, skill := range bcaSkills {
			if skillPatterns[skill].MatchString(resumeText) {
				found = append(found, skill)
			}
		}

		role := "Freshers"
		if len(found) > 0 {
			role = found[0] + " Developer"
		}
		loc := manualLoc
		if loc == "" {
			loc = "India"
		}
		return &Analysis{
			Query:  role + " jobs in " + loc,
			Source: SourceResume,
			Skills: found,
		}
	}

	if manualRole != "" && manualLoc != "" {
		return &Analysis{
			Query:  manualRole + " jobs in " + manualLoc,
			Source: SourceManual,
			Skills: []string{manualRole},
		}
	}

	return nil
}
