package methodology

// methodsByType is the fixed lookup from question type to suggested methods,
// ordered from most to least commonly appropriate.
var methodsByType = map[QuestionType][]string{
	QuestionCausal: {
		"controlled experiment",
		"quasi-experiment",
		"randomized trial",
	},
	QuestionCorrelational: {
		"correlational study",
		"survey",
		"longitudinal study",
	},
	QuestionDescriptive: {
		"survey",
		"observational study",
		"case study",
	},
	QuestionComparative: {
		"comparative study",
		"cross-sectional survey",
		"quasi-experiment",
	},
	QuestionMixed: {
		"controlled experiment",
		"comparative study",
		"mixed methods",
	},
}

// defaultMethods is returned for unknown (or unrecognized) question types.
var defaultMethods = []string{"survey", "observational study"}

// MapQuestionTypeToMethods returns a non-empty ordered list of suggested
// methodology names. Total over the question-type enum.
func MapQuestionTypeToMethods(t QuestionType) []string {
	if methods, ok := methodsByType[t]; ok {
		out := make([]string, len(methods))
		copy(out, methods)
		return out
	}
	out := make([]string, len(defaultMethods))
	copy(out, defaultMethods)
	return out
}
