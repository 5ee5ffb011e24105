package report_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/took-sh/took/internal/report"
)

var _ = Describe("WriterSink", func() {
	It("precedes the report with one blank line", func() {
		var buf strings.Builder
		sink := report.NewWriterSink(&buf)

		Expect(sink.Emit("1.000000s")).To(Succeed())
		Expect(buf.String()).To(Equal("\n1.000000s\n"))
	})

	It("propagates write failures", func() {
		sink := report.NewWriterSink(failingWriter{})

		Expect(sink.Emit("1.000000s")).To(MatchError(ContainSubstring("writing report")))
	})
})

var _ = Describe("FileSink", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "times.log")
	})

	It("creates the file when absent", func() {
		sink := report.NewFileSink(path)

		Expect(sink.Emit("0.100000s")).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal("\n0.100000s\n"))
	})

	It("appends instead of truncating", func() {
		Expect(os.WriteFile(path, []byte("earlier\n"), 0o644)).To(Succeed())

		sink := report.NewFileSink(path)
		Expect(sink.Emit("0.100000s")).To(Succeed())
		Expect(sink.Emit("0.200000s")).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal("earlier\n\n0.100000s\n\n0.200000s\n"))
	})

	It("surfaces an unwritable path", func() {
		sink := report.NewFileSink(filepath.Join(path, "nope", "times.log"))

		Expect(sink.Emit("0.100000s")).To(MatchError(ContainSubstring("opening report file")))
	})
})

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, os.ErrClosed
}
