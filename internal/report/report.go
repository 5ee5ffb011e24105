// Package report renders a timing measurement in one of three
// encodings (raw seconds, human-readable breakdown, JSON) and writes
// it to its destination.
package report

// Report is the externally visible artifact of one timed invocation.
type Report struct {
	ElapsedUS int64
	ExitCode  int
	Command   []string
}

// Render encodes the report. JSON wins over the human format when both
// are requested; with neither, the raw fixed-point encoding is used.
func Render(r Report, human, json bool) string {
	switch {
	case json:
		return JSON(r)
	case human:
		return Human(r.ElapsedUS)
	default:
		return Raw(r.ElapsedUS)
	}
}
