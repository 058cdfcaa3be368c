package trace_test

import (
	"bytes"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tagesim/trace"
)

var _ = Describe("Reader", func() {
	It("should parse hex and decimal records", func() {
		r := trace.NewReader(strings.NewReader(
			"0x400a10 T\n" +
				"4196880,0\n" +
				"0X1F taken\n" +
				"16\tnot-taken\n"))

		records, err := trace.ReadAll(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(Equal([]trace.Record{
			{PC: 0x400a10, Taken: true},
			{PC: 4196880, Taken: false},
			{PC: 0x1f, Taken: true},
			{PC: 16, Taken: false},
		}))
	})

	It("should skip blank lines and comments", func() {
		r := trace.NewReader(strings.NewReader(
			"# header\n\n   \n0x10 1 # loop back edge\n"))

		rec, err := r.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(rec).To(Equal(trace.Record{PC: 0x10, Taken: true}))

		_, err = r.Next()
		Expect(err).To(Equal(io.EOF))
	})

	It("should report the line of a bad outcome", func() {
		r := trace.NewReader(strings.NewReader("0x10 T\n\n0x14 maybe\n"))

		_, err := r.Next()
		Expect(err).ToNot(HaveOccurred())

		_, err = r.Next()
		Expect(err).To(MatchError(ContainSubstring("line 3")))
		Expect(err).To(MatchError(ContainSubstring("maybe")))
	})

	It("should report the line of a bad pc", func() {
		r := trace.NewReader(strings.NewReader("0xZZ T\n"))
		_, err := r.Next()
		Expect(err).To(MatchError(ContainSubstring("line 1")))
		Expect(err).To(MatchError(ContainSubstring("invalid pc")))
	})

	It("should reject lines with the wrong number of fields", func() {
		r := trace.NewReader(strings.NewReader("0x10 T extra\n"))
		_, err := r.Next()
		Expect(err).To(MatchError(ContainSubstring("expected <pc> <outcome>")))
	})
})

var _ = Describe("SliceSource", func() {
	It("should replay records then return EOF", func() {
		src := trace.NewSliceSource([]trace.Record{{PC: 1, Taken: true}})

		rec, err := src.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(rec.PC).To(Equal(uint64(1)))

		_, err = src.Next()
		Expect(err).To(Equal(io.EOF))
	})
})

var _ = Describe("WriteTo", func() {
	It("should write records the reader can parse back", func() {
		records := []trace.Record{
			{PC: 0x400a10, Taken: true},
			{PC: 0x400a18, Taken: false},
		}

		var buf bytes.Buffer
		Expect(trace.WriteTo(&buf, records)).To(Succeed())
		Expect(buf.String()).To(Equal("0x400a10 T\n0x400a18 N\n"))

		parsed, err := trace.ReadAll(trace.NewReader(&buf))
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(Equal(records))
	})
})

var _ = Describe("History", func() {
	It("should shift outcomes in at bit 0", func() {
		var h trace.History
		h.Push(true)
		h.Push(false)
		h.Push(true)
		Expect(h.Value()).To(Equal(uint64(0b101)))
	})

	It("should drop outcomes older than 64 branches", func() {
		var h trace.History
		h.Push(true)
		for i := 0; i < 64; i++ {
			h.Push(false)
		}
		Expect(h.Value()).To(Equal(uint64(0)))
	})
})
