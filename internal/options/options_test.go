package options_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/took-sh/took/internal/options"
)

var _ = Describe("Parser", func() {
	var parser *options.Parser

	BeforeEach(func() {
		parser = options.New(options.ModeTopLevel)
	})

	Describe("single flags", func() {
		It("parses short flags", func() {
			opts, err := parser.Parse([]string{"-f", "-j", "sleep", "1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.Format).To(BeTrue())
			Expect(opts.JSON).To(BeTrue())
			Expect(opts.Command).To(Equal([]string{"sleep", "1"}))
		})

		It("parses long flags", func() {
			opts, err := parser.Parse([]string{"--format", "--json", "true"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.Format).To(BeTrue())
			Expect(opts.JSON).To(BeTrue())
		})

		It("leaves defaults off", func() {
			opts, err := parser.Parse([]string{"true"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.Format).To(BeFalse())
			Expect(opts.JSON).To(BeFalse())
			Expect(opts.OutputTo).To(BeEmpty())
		})
	})

	Describe("combined clusters", func() {
		It("splits arbitrary combinations", func() {
			opts, err := parser.Parse([]string{"-fjh"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.Format).To(BeTrue())
			Expect(opts.JSON).To(BeTrue())
			Expect(opts.ShowHelp).To(BeTrue())
		})

		It("accepts -V inside a cluster", func() {
			opts, err := parser.Parse([]string{"-jV"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.JSON).To(BeTrue())
			Expect(opts.ShowVersion).To(BeTrue())
		})

		It("rejects -o inside a cluster", func() {
			_, err := parser.Parse([]string{"-fo", "out.txt", "true"})

			Expect(err).To(MatchError(options.ErrNotClusterable))
		})

		It("rejects an unknown character", func() {
			_, err := parser.Parse([]string{"-fx", "true"})

			Expect(err).To(MatchError(options.ErrUnknownOption))
		})
	})

	Describe("output-to", func() {
		It("consumes the next token as the path", func() {
			opts, err := parser.Parse([]string{"-o", "times.log", "sleep", "1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.OutputTo).To(Equal("times.log"))
			Expect(opts.Command).To(Equal([]string{"sleep", "1"}))
		})

		It("accepts the long form", func() {
			opts, err := parser.Parse([]string{"--output-to", "times.log", "true"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.OutputTo).To(Equal("times.log"))
		})

		It("errors without a value", func() {
			_, err := parser.Parse([]string{"-o"})

			Expect(err).To(MatchError(options.ErrMissingValue))
		})

		It("takes a flag-looking token as the path verbatim", func() {
			opts, err := parser.Parse([]string{"-o", "-f", "true"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.OutputTo).To(Equal("-f"))
			Expect(opts.Format).To(BeFalse())
		})
	})

	Describe("command vector", func() {
		It("starts at the first non-option token", func() {
			opts, err := parser.Parse([]string{"-f", "sleep", "1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.Command).To(Equal([]string{"sleep", "1"}))
		})

		It("passes later flag-looking tokens through verbatim", func() {
			opts, err := parser.Parse([]string{"grep", "-j", "--format", "pattern"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.JSON).To(BeFalse())
			Expect(opts.Command).To(Equal([]string{"grep", "-j", "--format", "pattern"}))
		})

		It("treats everything after -- as the command", func() {
			opts, err := parser.Parse([]string{"-f", "--", "-j", "--help"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.Format).To(BeTrue())
			Expect(opts.JSON).To(BeFalse())
			Expect(opts.ShowHelp).To(BeFalse())
			Expect(opts.Command).To(Equal([]string{"-j", "--help"}))
		})

		It("treats a bare dash as the command", func() {
			opts, err := parser.Parse([]string{"-", "arg"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.Command).To(Equal([]string{"-", "arg"}))
		})
	})

	Describe("unknown options", func() {
		It("rejects an unknown short option", func() {
			_, err := parser.Parse([]string{"-x", "true"})

			Expect(err).To(MatchError(options.ErrUnknownOption))
		})

		It("rejects an unknown long option", func() {
			_, err := parser.Parse([]string{"--frmt", "true"})

			Expect(err).To(MatchError(options.ErrUnknownOption))
		})
	})

	Describe("missing command", func() {
		It("is an error in top-level mode", func() {
			_, err := parser.Parse([]string{"-f"})

			Expect(err).To(MatchError(options.ErrMissingCommand))
		})

		It("is excused by help in top-level mode", func() {
			opts, err := parser.Parse([]string{"-fh"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.ShowHelp).To(BeTrue())
			Expect(opts.Command).To(BeEmpty())
		})

		It("is excused by version in top-level mode", func() {
			opts, err := parser.Parse([]string{"-V"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.ShowVersion).To(BeTrue())
		})
	})

	Describe("embedded mode", func() {
		BeforeEach(func() {
			parser = options.New(options.ModeEmbedded)
		})

		It("parses help syntactically but still requires a command", func() {
			_, err := parser.Parse([]string{"-fh"})

			Expect(err).To(MatchError(options.ErrMissingCommand))
		})

		It("keeps the command alongside inert help and version flags", func() {
			opts, err := parser.Parse([]string{"-fh", "sleep", "1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(opts.Format).To(BeTrue())
			Expect(opts.ShowHelp).To(BeTrue())
			Expect(opts.Command).To(Equal([]string{"sleep", "1"}))
		})
	})
})

var _ = Describe("Mode", func() {
	It("names both modes", func() {
		Expect(options.ModeTopLevel.String()).To(Equal("top-level"))
		Expect(options.ModeEmbedded.String()).To(Equal("embedded"))
	})
})
