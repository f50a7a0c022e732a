// internal/app/system/flatten/answers.go

// Package flatten converts hydrated survey and family aggregates into flat,
// human-readable records for grid display and JSON export. Every function is
// pure over its inputs plus the supplied evaluation time: no I/O, no shared
// state, safe to call from any number of concurrent requests.
package flatten

import (
	"fmt"

	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/domain/models"
)

// ResolveAnswerValue converts one question/answer pair into its single
// display value. It dispatches on the question's declared type; exactly one
// branch runs.
//
//   - Text/Bool/Int/Num/Date pass the stored slot through unchanged.
//   - Select yields an ordered sequence following the question's option
//     order: regular options contribute their display value when selected,
//     open options contribute the respondent's free-text override. A
//     selected open option without an override is corrupt stored data and
//     reported as DATA_INTEGRITY, never silently repaired.
//   - Scale yields the 1-based index of the selected option, 0 when nothing
//     is selected.
//
// An unknown question type resolves to (nil, nil): callers treat it as an
// absent answer. Kept pending a product decision on forward compatibility
// with unreleased question types.
func ResolveAnswerValue(q models.Question, a models.Answer) (any, error) {
	v := a.Value
	switch q.Type {
	case models.QuestionText:
		if v.Text == nil {
			return "", nil
		}
		return *v.Text, nil

	case models.QuestionBool:
		if v.Bool == nil {
			return false, nil
		}
		return *v.Bool, nil

	case models.QuestionInt:
		if v.Int == nil {
			return int64(0), nil
		}
		return *v.Int, nil

	case models.QuestionNum:
		if v.Num == nil {
			return float64(0), nil
		}
		return *v.Num, nil

	case models.QuestionDate:
		if v.Date == nil {
			return nil, nil
		}
		return *v.Date, nil

	case models.QuestionSelect:
		vals := make([]string, 0, len(q.SelectOptions))
		for _, opt := range q.SelectOptions {
			if !v.Selected(opt.ID) {
				continue
			}
			if opt.IsOpen {
				other, ok := v.OtherValueFor(opt.ID)
				if !ok {
					return nil, apperrors.DataIntegrity(fmt.Sprintf(
						"open option %s of question %s selected without a value",
						opt.ID.Hex(), q.ID.Hex()))
				}
				vals = append(vals, other)
				continue
			}
			vals = append(vals, opt.Value)
		}
		return vals, nil

	case models.QuestionScale:
		if len(v.Select) == 0 {
			return 0, nil
		}
		for i, opt := range q.SelectOptions {
			if opt.ID == v.Select[0] {
				return i + 1, nil
			}
		}
		return 0, nil
	}

	return nil, nil
}
