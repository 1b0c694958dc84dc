// Package methodology holds the rule-based research-design helpers: question
// classification, method suggestion, sample-size guidance, and the critical
// design checker. Everything here is pure and synchronous; persistence and
// transport live in the service layer.
package methodology

// QuestionType tags a research question by the kind of claim it makes.
type QuestionType string

const (
	QuestionCausal        QuestionType = "causal"
	QuestionCorrelational QuestionType = "correlational"
	QuestionDescriptive   QuestionType = "descriptive"
	QuestionComparative   QuestionType = "comparative"
	QuestionMixed         QuestionType = "mixed"
	QuestionUnknown       QuestionType = "unknown"
)

// Severity of a checker finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Issue struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
}

// IssueReport is the result of one checker pass. Computed fresh per call,
// never persisted. Valid is true iff no error-severity issues were found.
type IssueReport struct {
	Valid        bool    `json:"valid"`
	ErrorCount   int     `json:"error_count"`
	WarningCount int     `json:"warning_count"`
	Issues       []Issue `json:"issues"`
}

func (r *IssueReport) add(sev Severity, field, msg string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Field: field, Message: msg})
	switch sev {
	case SeverityError:
		r.ErrorCount++
	case SeverityWarning:
		r.WarningCount++
	}
}

// Guidance is a canned sample-size recommendation for a methodology.
type Guidance struct {
	Guideline   string `json:"guideline"`
	Example     string `json:"example,omitempty"`
	Explanation string `json:"explanation"`
}
