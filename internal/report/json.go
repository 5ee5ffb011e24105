package report

import (
	"fmt"
	"strconv"
	"strings"
)

// JSON renders the report as exactly one line with a fixed field
// order:
//
//	{"elapsed_us":...,"elapsed_s":...,"elapsed_formatted":"...","exit_code":...,"command":[...]}
//
// elapsed_s always carries six decimals, computed by integer scaling,
// and elapsed_formatted always holds the Human rendering regardless of
// which encoding the caller asked for. The encoder is hand-built
// because encoding/json cannot pin a float to six decimals.
func JSON(r Report) string {
	var b strings.Builder

	b.WriteString(`{"elapsed_us":`)
	b.WriteString(strconv.FormatInt(r.ElapsedUS, 10))
	b.WriteString(`,"elapsed_s":`)
	fmt.Fprintf(&b, "%d.%06d", r.ElapsedUS/MicrosPerSecond, r.ElapsedUS%MicrosPerSecond)
	b.WriteString(`,"elapsed_formatted":"`)
	escapeJSON(&b, Human(r.ElapsedUS))
	b.WriteString(`","exit_code":`)
	b.WriteString(strconv.Itoa(r.ExitCode))
	b.WriteString(`,"command":[`)

	for i, arg := range r.Command {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteByte('"')
		escapeJSON(&b, arg)
		b.WriteByte('"')
	}

	b.WriteString(`]}`)

	return b.String()
}

// escapeJSON writes s with JSON string escaping: backslash, double
// quote, and the short escapes for \n \t \r \b \f; every remaining
// control character is emitted as \u00XX.
func escapeJSON(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
}
