// internal/domain/models/survey.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType enumerates the closed set of question kinds. Answer
// resolution dispatches on this type; an unknown value resolves to an
// absent answer (see flatten.ResolveAnswerValue).
type QuestionType string

const (
	QuestionText   QuestionType = "text"
	QuestionBool   QuestionType = "bool"
	QuestionInt    QuestionType = "int"
	QuestionNum    QuestionType = "num"
	QuestionSelect QuestionType = "select"
	QuestionDate   QuestionType = "date"
	QuestionScale  QuestionType = "scale"
)

// SelectOption is one selectable choice of a Select or Scale question.
// IsOpen marks an option that requires a free-text override value when
// selected ("Sonstiges: ___").
type SelectOption struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Value  string             `bson:"value" json:"value"`
	IsOpen bool               `bson:"is_open,omitempty" json:"is_open,omitempty"`
}

// Question belongs to exactly one survey. SelectOptions are only meaningful
// for Select and Scale questions and keep their authored order; that order
// drives both grid columns and scale indexes.
type Question struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Type          QuestionType       `bson:"type" json:"type"`
	QuestionText  string             `bson:"question_text" json:"question_text"`
	SelectOptions []SelectOption     `bson:"select_options,omitempty" json:"select_options,omitempty"`
}

// Survey holds its questions embedded, in authored order. A nil
// OrganizationID means the survey is global: visible to every organization.
type Survey struct {
	ID             primitive.ObjectID  `bson:"_id" json:"id"`
	Name           string              `bson:"name" json:"name"`
	NameCI         string              `bson:"name_ci" json:"-"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	Questions      []Question          `bson:"questions" json:"questions"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}

// QuestionByID returns the survey question with the given id.
func (s *Survey) QuestionByID(id primitive.ObjectID) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
