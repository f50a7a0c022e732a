// internal/domain/models/answer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerValue is a tagged value: Kind names the populated slot and the
// constructors below are the only supported way to build one, so a stored
// answer can never carry a value of the wrong type.
//
// Select and Scale questions both store the "select" kind (a scale answer is
// a single selected option); every other question type has its own kind.
type AnswerValue struct {
	Kind QuestionType `bson:"kind" json:"kind"`

	Text   *string              `bson:"text,omitempty" json:"text,omitempty"`
	Bool   *bool                `bson:"bool,omitempty" json:"bool,omitempty"`
	Int    *int64               `bson:"int,omitempty" json:"int,omitempty"`
	Num    *float64             `bson:"num,omitempty" json:"num,omitempty"`
	Select []primitive.ObjectID `bson:"select,omitempty" json:"select,omitempty"`
	Date   *time.Time           `bson:"date,omitempty" json:"date,omitempty"`

	// OtherValues carries the free-text overrides for selected open options,
	// keyed by select option id.
	OtherValues []SelectOtherValue `bson:"other_values,omitempty" json:"other_values,omitempty"`
}

// SelectOtherValue is the free-text override a respondent typed for an
// "open" select option.
type SelectOtherValue struct {
	SelectOptionID primitive.ObjectID `bson:"select_option_id" json:"select_option_id"`
	Value          string             `bson:"value" json:"value"`
}

func TextValue(s string) AnswerValue { return AnswerValue{Kind: QuestionText, Text: &s} }
func BoolValue(b bool) AnswerValue   { return AnswerValue{Kind: QuestionBool, Bool: &b} }
func IntValue(i int64) AnswerValue   { return AnswerValue{Kind: QuestionInt, Int: &i} }
func NumValue(f float64) AnswerValue { return AnswerValue{Kind: QuestionNum, Num: &f} }

func DateValue(t time.Time) AnswerValue { return AnswerValue{Kind: QuestionDate, Date: &t} }

// SelectValue builds the value for Select and Scale answers. others may be
// nil when no open option is selected.
func SelectValue(optionIDs []primitive.ObjectID, others []SelectOtherValue) AnswerValue {
	return AnswerValue{Kind: QuestionSelect, Select: optionIDs, OtherValues: others}
}

// OtherValueFor returns the free-text override stored for the given option.
func (v AnswerValue) OtherValueFor(optionID primitive.ObjectID) (string, bool) {
	for _, o := range v.OtherValues {
		if o.SelectOptionID == optionID {
			return o.Value, true
		}
	}
	return "", false
}

// Selected reports whether the given option id is part of the selection.
func (v AnswerValue) Selected(optionID primitive.ObjectID) bool {
	for _, id := range v.Select {
		if id == optionID {
			return true
		}
	}
	return false
}

// Answer belongs to exactly one Response and one Question.
type Answer struct {
	QuestionID primitive.ObjectID `bson:"question_id" json:"question_id"`
	Value      AnswerValue        `bson:"value" json:"value"`
}
