package hooking

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
)

var _ = Describe("MetricsHook", func() {
	var reg *prometheus.Registry

	BeforeEach(func() {
		reg = prometheus.NewRegistry()
	})

	It("should count invocations per position", func() {
		h, err := NewMetricsHook(reg, "test_total", "Test hook invocations.")
		Expect(err).ToNot(HaveOccurred())

		added := &HookPos{Name: "Added"}
		h.Func(HookCtx{Pos: added})
		h.Func(HookCtx{Pos: added})
		h.Func(HookCtx{})

		path := filepath.Join(GinkgoT().TempDir(), "metrics.prom")
		Expect(prometheus.WriteToTextfile(path, reg)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`pdptw_test_total{pos="Added"} 2`))
		Expect(string(data)).To(ContainSubstring(`pdptw_test_total{pos="unknown"} 1`))
	})

	It("should fail to register the same counter twice", func() {
		_, err := NewMetricsHook(reg, "test_total", "Test hook invocations.")
		Expect(err).ToNot(HaveOccurred())

		_, err = NewMetricsHook(reg, "test_total", "Test hook invocations.")
		Expect(err).To(HaveOccurred())
	})
})
