// internal/domain/homework/response.go
package homework

import "fmt"

// JSON keys used by the homework API.
const (
	KeyHomeworks    = "homeworks"
	KeyCurrentDate  = "current_date"
	KeyHomeworkName = "homework_name"
	KeyStatus       = "status"
)

// Record is a single homework submission as decoded from the API.
// Besides homework_name and status the API sends id, reviewer_comment,
// date_updated and lesson_name; they are kept but not interpreted.
type Record map[string]any

// Response is an API payload that passed Validate.
type Response struct {
	Homeworks   []any
	CurrentDate int64 // server time reported by the API, 0 if absent
}

// Validate checks that payload is an object holding a list under "homeworks".
// An empty list is valid and means nothing changed during the period.
func Validate(payload any) (Response, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return Response{}, fmt.Errorf("%w: expected object, got %T", ErrShape, payload)
	}

	raw, ok := obj[KeyHomeworks]
	if !ok {
		return Response{}, fmt.Errorf("%w: %q", ErrMissingKey, KeyHomeworks)
	}

	list, ok := raw.([]any)
	if !ok {
		return Response{}, fmt.Errorf("%w: %q must be a list, got %T", ErrShape, KeyHomeworks, raw)
	}

	resp := Response{Homeworks: list}
	if cd, ok := obj[KeyCurrentDate].(float64); ok {
		resp.CurrentDate = int64(cd)
	}
	return resp, nil
}

// Latest returns the most recent homework record, or nil when the list is empty.
func (r Response) Latest() (Record, error) {
	if len(r.Homeworks) == 0 {
		return nil, nil
	}
	rec, ok := r.Homeworks[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: homework record must be an object, got %T", ErrShape, r.Homeworks[0])
	}
	return Record(rec), nil
}
