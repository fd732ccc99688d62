package service

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/edu-records-api/internal/dto"
)

// parseDateRange parses optional YYYY-MM-DD bounds; the caller has already
// validated their format.
func parseDateRange(from, to string) (*datatypes.Date, *datatypes.Date, error) {
	var start, end *datatypes.Date
	if from != "" {
		parsed, err := dto.ParseDate(from)
		if err != nil {
			return nil, nil, wrapError(newError(KindInvalid, "from must be a date in YYYY-MM-DD format"), err)
		}
		start = &parsed
	}
	if to != "" {
		parsed, err := dto.ParseDate(to)
		if err != nil {
			return nil, nil, wrapError(newError(KindInvalid, "to must be a date in YYYY-MM-DD format"), err)
		}
		end = &parsed
	}
	if start != nil && end != nil && time.Time(*start).After(time.Time(*end)) {
		return nil, nil, ErrInvalidDateRange
	}
	return start, end, nil
}

func mustDate(value string) (datatypes.Date, error) {
	parsed, err := dto.ParseDate(value)
	if err != nil {
		return datatypes.Date{}, wrapError(newError(KindInvalid, "date must be in YYYY-MM-DD format"), err)
	}
	return parsed, nil
}
