// Package pagination implements the page envelope shared by every listing
// endpoint: it parses page/limit query values and produces offset/limit
// pairs plus a {count, results} response body.
package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// FromValues builds Params from raw query values, falling back to defaults
// on anything unparsable or out of range.
func FromValues(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Envelope is the wire shape of a paginated listing.
type Envelope struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

func NewEnvelope(count int64, results interface{}) Envelope {
	return Envelope{Count: count, Results: results}
}
