package model

import (
	"strconv"
	"strings"
)

// PerfectMarker appears in the file names of generated problems, which are
// known to admit a perfect packing.
const PerfectMarker = "perfect"

// RecordHeader names the columns produced by Record.Fields.
var RecordHeader = []string{
	"source", "rectangles", "variant", "rotation", "perfect",
	"container_width", "container_height", "min_area", "empty_area", "filling_rate", "duration",
	"error", "params",
}

// Record is the outcome of one solver invocation.
type Record struct {
	Source        string      `json:"source"`
	Count         int         `json:"count"`
	Variant       Variant     `json:"variant"`
	AllowRotation bool        `json:"allow_rotation"`
	Perfect       bool        `json:"perfect"`
	Params        Params      `json:"params,omitempty"`
	Evaluation    *Evaluation `json:"evaluation,omitempty"`
	Error         string      `json:"error,omitempty"`
	ErrorKind     string      `json:"error_kind,omitempty"`
}

// NewRecord describes the result of solving p. Exactly one of eval and err is
// expected to be set; err wins when both are.
func NewRecord(source string, p Problem, params Params, eval *Evaluation, err error) Record {
	r := Record{
		Source:        source,
		Count:         len(p.Rectangles),
		Variant:       p.Variant,
		AllowRotation: p.AllowRotation,
		Perfect:       strings.Contains(source, PerfectMarker),
		Params:        params,
	}
	if err != nil {
		r.Error = err.Error()
		r.ErrorKind = Kind(err)
		return r
	}
	r.Evaluation = eval
	return r
}

// Failed reports whether the invocation produced no evaluation.
func (r Record) Failed() bool {
	return r.Evaluation == nil
}

// Fields returns the CSV row for r in RecordHeader order.
func (r Record) Fields() []string {
	row := []string{
		r.Source,
		strconv.Itoa(r.Count),
		r.Variant.String(),
		yesNo(r.AllowRotation),
		strconv.FormatBool(r.Perfect),
	}
	if e := r.Evaluation; e != nil {
		row = append(row,
			strconv.Itoa(e.Container.Width),
			strconv.Itoa(e.Container.Height),
			strconv.FormatInt(e.MinArea, 10),
			strconv.FormatInt(e.EmptyArea, 10),
			strconv.FormatFloat(e.FillingRate, 'f', 4, 64),
			FormatDuration(e.Duration),
			"",
		)
	} else {
		row = append(row, "", "", "", "", "", "", r.Error)
	}
	return append(row, r.Params.String())
}

// Summary is a one-line description used by the CLI and logs.
func (r Record) Summary() string {
	var b strings.Builder
	b.WriteString(r.Source)
	if len(r.Params) > 0 {
		b.WriteString(" [")
		b.WriteString(r.Params.String())
		b.WriteString("]")
	}
	if r.Evaluation != nil {
		b.WriteString(": filling rate ")
		b.WriteString(strconv.FormatFloat(r.Evaluation.FillingRate, 'f', 2, 64))
		b.WriteString(" in ")
		b.WriteString(FormatDuration(r.Evaluation.Duration))
		b.WriteString("s")
	} else {
		b.WriteString(": ")
		b.WriteString(r.ErrorKind)
		b.WriteString(": ")
		b.WriteString(r.Error)
	}
	return b.String()
}
