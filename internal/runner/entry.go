package runner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/piwi3910/packt/internal/model"
)

// Entry is one problem in a workspace together with the outcomes of every
// run against it.
type Entry struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Source  string         `json:"source"`
	Problem model.Problem  `json:"problem"`
	Records []model.Record `json:"records"`
}

// NewEntry creates an entry for problem loaded from source.
func NewEntry(source string, problem model.Problem) *Entry {
	return &Entry{
		ID:      uuid.New().String(),
		Name:    problem.Name(),
		Source:  source,
		Problem: problem,
	}
}

// digestLimit caps the rectangles listed by Entry.String.
const digestLimit = 50

// String lists every outcome followed by the problem digest.
func (e *Entry) String() string {
	var b strings.Builder
	for _, r := range e.Records {
		if r.Evaluation != nil {
			b.WriteString(r.Evaluation.String())
		} else {
			b.WriteString("Error: ")
			b.WriteString(r.Error)
		}
		b.WriteString("\n\n")
	}
	b.WriteString(e.Problem.Digest(digestLimit))
	return b.String()
}
