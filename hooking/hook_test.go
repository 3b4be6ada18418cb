package hooking

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

type recordingHook struct {
	name  string
	calls *[]string
}

func (h *recordingHook) Func(ctx HookCtx) {
	*h.calls = append(*h.calls, h.name+":"+ctx.Pos.Name)
}

var _ = Describe("HookableBase", func() {
	var (
		base  *HookableBase
		calls []string
		pos   *HookPos
	)

	BeforeEach(func() {
		base = &HookableBase{}
		calls = nil
		pos = &HookPos{Name: "Added"}
	})

	It("should invoke hooks in registration order", func() {
		base.AcceptHook(&recordingHook{name: "a", calls: &calls})
		base.AcceptHook(&recordingHook{name: "b", calls: &calls})

		Invoke(base.Hooks(), HookCtx{Pos: pos})

		Expect(base.NumHooks()).To(Equal(2))
		Expect(calls).To(Equal([]string{"a:Added", "b:Added"}))
	})

	It("should invoke only the hooks of the snapshot", func() {
		base.AcceptHook(&recordingHook{name: "a", calls: &calls})
		snapshot := base.Hooks()
		base.AcceptHook(&recordingHook{name: "b", calls: &calls})

		Invoke(snapshot, HookCtx{Pos: pos})

		Expect(calls).To(Equal([]string{"a:Added"}))
	})

	It("should panic on a duplicated hook", func() {
		h := &recordingHook{name: "a", calls: &calls}
		base.AcceptHook(h)

		Expect(func() { base.AcceptHook(h) }).To(Panic())
	})

	It("should return a copy of the hooks", func() {
		base.AcceptHook(&recordingHook{name: "a", calls: &calls})

		hooks := base.Hooks()
		hooks[0] = nil

		Expect(base.Hooks()[0]).ToNot(BeNil())
	})
})

var _ = Describe("LogHook", func() {
	It("should log the position, item, and detail", func() {
		var buf bytes.Buffer
		h := NewLogHook(zerolog.New(&buf), zerolog.InfoLevel)

		h.Func(HookCtx{
			Pos:    &HookPos{Name: "Duplicate"},
			Item:   "scenario-1",
			Detail: "entry-7",
		})

		Expect(buf.String()).To(ContainSubstring(`"pos":"Duplicate"`))
		Expect(buf.String()).To(ContainSubstring(`"detail":"entry-7"`))
		Expect(buf.String()).To(ContainSubstring(`"message":"scenario-1"`))
	})

	It("should respect the logger level", func() {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
		h := NewLogHook(logger, zerolog.DebugLevel)

		h.Func(HookCtx{Item: "quiet"})

		Expect(buf.Len()).To(Equal(0))
	})
})
