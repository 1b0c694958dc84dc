package methodology

import "strings"

// classifierRule pairs a question type with the keywords that signal it.
// Rules are evaluated as case-insensitive substring membership; keeping them
// in a table lets each rule be tested independently of the control flow.
type classifierRule struct {
	tag      QuestionType
	keywords []string
}

var classifierRules = []classifierRule{
	{QuestionCausal, []string{
		"affect", "effect", "does", "will", "improve",
		"cause", "impact", "influence", "increase", "decrease",
	}},
	{QuestionComparative, []string{
		"compare", "comparison", "difference between", "differ",
		"versus", " vs ", "better than", "more than", "less than",
	}},
	{QuestionCorrelational, []string{
		"relationship", "correlat", "associat", "related to", "linked to",
		"connection between",
	}},
	{QuestionDescriptive, []string{
		"what is", "what are", "how many", "how much", "how often",
		"describe", "prevalence", "characteristics of",
	}},
}

// DetectQuestionType maps a free-text research question to exactly one type
// tag. Case-insensitive; a question matching both causal and comparative
// keyword sets is tagged mixed; no match at all is unknown.
func DetectQuestionType(question string) QuestionType {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return QuestionUnknown
	}

	matched := map[QuestionType]bool{}
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				matched[rule.tag] = true
				break
			}
		}
	}

	if matched[QuestionCausal] && matched[QuestionComparative] {
		return QuestionMixed
	}
	// Precedence: causal beats the weaker signals, comparative beats
	// correlational, descriptive is the catch-all of the matched set.
	for _, tag := range []QuestionType{QuestionCausal, QuestionComparative, QuestionCorrelational, QuestionDescriptive} {
		if matched[tag] {
			return tag
		}
	}
	return QuestionUnknown
}
