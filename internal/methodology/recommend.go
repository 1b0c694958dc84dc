package methodology

// Recommendation bundles the classifier, mapper, and advisor output for one
// research question.
type Recommendation struct {
	QuestionType     QuestionType `json:"question_type"`
	SuggestedMethods []string     `json:"suggested_methods"`
	SampleSize       Guidance     `json:"sample_size"`
}

// Recommend classifies the question, maps it to candidate methods, and
// attaches sample-size guidance for the first (strongest) suggestion.
func Recommend(question string) Recommendation {
	qt := DetectQuestionType(question)
	methods := MapQuestionTypeToMethods(qt)
	return Recommendation{
		QuestionType:     qt,
		SuggestedMethods: methods,
		SampleSize:       SampleSizeGuidance(methods[0], ""),
	}
}
