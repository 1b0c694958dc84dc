package methodology

import "testing"

func TestMapQuestionTypeToMethods(t *testing.T) {
	tags := []QuestionType{
		QuestionCausal,
		QuestionCorrelational,
		QuestionDescriptive,
		QuestionComparative,
		QuestionMixed,
		QuestionUnknown,
	}
	for _, tag := range tags {
		methods := MapQuestionTypeToMethods(tag)
		if len(methods) == 0 {
			t.Fatalf("MapQuestionTypeToMethods(%q) returned empty list", tag)
		}
	}
}

func TestMapQuestionTypeToMethodsUnknownDefault(t *testing.T) {
	methods := MapQuestionTypeToMethods(QuestionUnknown)
	if methods[0] != "survey" {
		t.Fatalf("unknown type should default to survey first, got %v", methods)
	}
}

func TestMapQuestionTypeToMethodsReturnsCopy(t *testing.T) {
	first := MapQuestionTypeToMethods(QuestionCausal)
	first[0] = "mutated"
	second := MapQuestionTypeToMethods(QuestionCausal)
	if second[0] == "mutated" {
		t.Fatalf("MapQuestionTypeToMethods leaked its backing array")
	}
}
