package tage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tagesim/timing/tage"
)

var _ = Describe("Config", func() {
	It("should describe the reference geometry", func() {
		config := tage.DefaultConfig()
		Expect(config.BimodalSize).To(Equal(uint32(4096)))
		Expect(config.TaggedSize).To(Equal(uint32(1024)))
		Expect(config.BimodalCounterBits).To(Equal(uint(2)))
		Expect(config.PredictionCounterBits).To(Equal(uint(3)))
		Expect(config.UsefulnessCounterBits).To(Equal(uint(2)))
		Expect(config.MetaCounterBits).To(Equal(uint(4)))
		Expect(config.HistoryLengths).To(Equal([tage.NumComponents]uint{4, 8, 16, 32}))
		Expect(config.Validate()).To(Succeed())
	})

	It("should reject a tagged size that is not a power of two", func() {
		config := tage.DefaultConfig()
		config.TaggedSize = 1000
		Expect(config.Validate()).To(MatchError(ContainSubstring("tagged_size")))
	})

	It("should reject a tagged size too small to fold into", func() {
		config := tage.DefaultConfig()
		config.TaggedSize = 128
		Expect(config.Validate()).To(HaveOccurred())
	})

	It("should reject an empty bimodal table", func() {
		config := tage.DefaultConfig()
		config.BimodalSize = 0
		Expect(config.Validate()).To(MatchError(ContainSubstring("bimodal_size")))
	})

	It("should reject history lengths that do not grow", func() {
		config := tage.DefaultConfig()
		config.HistoryLengths = [tage.NumComponents]uint{4, 8, 8, 32}
		Expect(config.Validate()).To(MatchError(ContainSubstring("strictly increasing")))
	})

	It("should reject history longer than the hash input", func() {
		config := tage.DefaultConfig()
		config.HistoryLengths = [tage.NumComponents]uint{4, 8, 16, 40}
		Expect(config.Validate()).To(HaveOccurred())
	})

	It("should reject a one-bit prediction counter", func() {
		config := tage.DefaultConfig()
		config.PredictionCounterBits = 1
		Expect(config.Validate()).To(MatchError(ContainSubstring("prediction_counter_bits")))
	})

	It("should refuse to build a predictor from a bad config", func() {
		config := tage.DefaultConfig()
		config.TaggedSize = 3
		p, err := tage.New(config)
		Expect(err).To(HaveOccurred())
		Expect(p).To(BeNil())
	})
})
