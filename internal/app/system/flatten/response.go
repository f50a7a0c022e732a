// internal/app/system/flatten/response.go
package flatten

import (
	"time"

	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/domain/models"
)

// Options tunes response flattening.
type Options struct {
	// QualifyDuplicateKeys suffixes a duplicate question-text key with the
	// question id instead of letting the later answer overwrite the earlier
	// one. Off by default: the overwrite is the long-standing export
	// behavior and consumers may depend on it. Controlled by the
	// export_qualified_keys configuration key.
	QualifyDuplicateKeys bool
}

// FlattenResponse converts one hydrated response into the flat export
// record. Every answer is projected under its question's literal text; with
// Options.QualifyDuplicateKeys unset, questions sharing the same text
// collapse into one key and the later answer wins.
func FlattenResponse(resp models.FullResponse, now time.Time, opts Options) (map[string]any, error) {
	if resp.Survey == nil {
		return nil, apperrors.Internal("response is missing its survey")
	}

	rec := make(map[string]any, len(resp.Answers)+2)
	for _, a := range resp.Answers {
		q, ok := resp.Survey.QuestionByID(a.QuestionID)
		if !ok {
			return nil, apperrors.DataIntegrity("answer references unknown question " + a.QuestionID.Hex())
		}
		val, err := ResolveAnswerValue(q, a)
		if err != nil {
			return nil, err
		}
		key := q.QuestionText
		if opts.QualifyDuplicateKeys {
			if _, exists := rec[key]; exists {
				key = key + " (" + q.ID.Hex() + ")"
			}
		}
		rec[key] = val
	}

	rec["verantwortlich"] = ResponsibleParty(resp.User, true)

	if resp.Family != nil {
		f := resp.Family
		var ende any = ""
		if f.EndOfCare != nil {
			ende = *f.EndOfCare
		}
		rec["familie"] = map[string]any{
			"familiennummer":   f.Number,
			"kinder":           flattenChildren(f.Children, now),
			"bezugspersonen":   flattenCaregivers(f.Caregivers, now),
			"betreuungsbeginn": f.BeginOfCare,
			"betreuungsende":   ende,
		}
	}

	return rec, nil
}
