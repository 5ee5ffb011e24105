package report_test

import (
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/took-sh/took/internal/report"
)

var _ = Describe("JSON", func() {
	It("matches the wire format byte for byte", func() {
		rep := report.Report{
			ElapsedUS: 101234,
			ExitCode:  0,
			Command:   []string{"sleep", "0.1"},
		}

		Expect(report.JSON(rep)).To(Equal(
			`{"elapsed_us":101234,"elapsed_s":0.101234,"elapsed_formatted":"0.101s","exit_code":0,"command":["sleep","0.1"]}`,
		))
	})

	It("always fills elapsed_formatted with the human rendering", func() {
		rep := report.Report{ElapsedUS: 61500000, ExitCode: 3, Command: []string{"true"}}

		Expect(report.JSON(rep)).To(ContainSubstring(`"elapsed_formatted":"01m 1.500s"`))
	})

	It("is exactly one line", func() {
		rep := report.Report{
			ElapsedUS: 1,
			ExitCode:  1,
			Command:   []string{"printf", "a\nb"},
		}

		Expect(strings.Count(report.JSON(rep), "\n")).To(BeZero())
	})

	It("escapes quotes, backslashes and whitespace controls", func() {
		rep := report.Report{
			ElapsedUS: 0,
			ExitCode:  0,
			Command:   []string{`echo`, "say \"hi\"", `C:\tmp`, "a\tb\r\n"},
		}

		out := report.JSON(rep)
		Expect(out).To(ContainSubstring(`"say \"hi\""`))
		Expect(out).To(ContainSubstring(`"C:\\tmp"`))
		Expect(out).To(ContainSubstring(`"a\tb\r\n"`))
	})

	It("escapes backspace, form feed and the remaining control characters", func() {
		rep := report.Report{
			ElapsedUS: 0,
			ExitCode:  0,
			Command:   []string{"\b\f\x1b[0m\x00"},
		}

		Expect(report.JSON(rep)).To(ContainSubstring(`"\b\f\u001b[0m\u0000"`))
	})

	It("round-trips through a standard decoder", func() {
		rep := report.Report{
			ElapsedUS: 2500000,
			ExitCode:  42,
			Command:   []string{"sh", "-c", "exit 42"},
		}

		var decoded struct {
			ElapsedUS        int64    `json:"elapsed_us"`
			ElapsedS         float64  `json:"elapsed_s"`
			ElapsedFormatted string   `json:"elapsed_formatted"`
			ExitCode         int      `json:"exit_code"`
			Command          []string `json:"command"`
		}

		Expect(json.Unmarshal([]byte(report.JSON(rep)), &decoded)).To(Succeed())
		Expect(decoded.ElapsedUS).To(Equal(int64(2500000)))
		Expect(decoded.ElapsedS).To(Equal(2.5))
		Expect(decoded.ElapsedFormatted).To(Equal("2.500s"))
		Expect(decoded.ExitCode).To(Equal(42))
		Expect(decoded.Command).To(Equal([]string{"sh", "-c", "exit 42"}))
	})

	It("renders an empty command vector as an empty array", func() {
		rep := report.Report{ElapsedUS: 0, ExitCode: 0}

		Expect(report.JSON(rep)).To(HaveSuffix(`"command":[]}`))
	})
})
