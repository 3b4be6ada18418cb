package catalog_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pdptw/catalog"
	"github.com/sarchlab/pdptw/event"
	"github.com/sarchlab/pdptw/hooking"
	"github.com/sarchlab/pdptw/model"
	"github.com/sarchlab/pdptw/scenario"
	"github.com/sarchlab/pdptw/stopcondition"
	"github.com/sarchlab/pdptw/units"
)

type capturingHook struct {
	ctxs []hooking.HookCtx
}

func (h *capturingHook) Func(ctx hooking.HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

type hookFunc func(ctx hooking.HookCtx)

func (f hookFunc) Func(ctx hooking.HookCtx) { f(ctx) }

type depotModel struct{}

func (depotModel) Name() string { return "depot" }

func newDepotModel() model.Model { return depotModel{} }

var _ = Describe("Catalog", func() {
	var (
		mockCtrl *gomock.Controller
		pc       scenario.ProblemClassID
	)

	build := func(id string, events ...event.TimedEvent) *scenario.DefaultScenario {
		return scenario.NewBuilder(pc, id).AddEvents(events...).Build()
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pc = scenario.ProblemClassID("catalog-test")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("without a recorder", func() {
		var c *catalog.Catalog

		BeforeEach(func() {
			c = catalog.MakeBuilder().Build()
		})

		It("should start empty", func() {
			Expect(c.Len()).To(Equal(0))
			Expect(c.Entries()).To(BeEmpty())
			c.Flush()
		})

		It("should add distinct scenarios", func() {
			idA, addedA := c.Add(build("a"))
			idB, addedB := c.Add(build("b"))

			Expect(addedA).To(BeTrue())
			Expect(addedB).To(BeTrue())
			Expect(idA).ToNot(Equal(idB))
			Expect(c.Len()).To(Equal(2))
		})

		It("should return the stored id for an equal scenario", func() {
			first := build("a", event.NewTimeOutEvent(5))
			id, _ := c.Add(first)

			again, added := c.Add(build("a", event.NewTimeOutEvent(5)))

			Expect(added).To(BeFalse())
			Expect(again).To(Equal(id))
			Expect(c.Len()).To(Equal(1))

			s, ok := c.Get(id)
			Expect(ok).To(BeTrue())
			Expect(s).To(BeIdenticalTo(first))
		})

		It("should not find unknown ids", func() {
			s, ok := c.Get("missing")

			Expect(ok).To(BeFalse())
			Expect(s).To(BeNil())
		})

		It("should list entries in insertion order as a copy", func() {
			idA, _ := c.Add(build("a"))
			idB, _ := c.Add(build("b"))

			entries := c.Entries()
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].ID).To(Equal(idA))
			Expect(entries[1].ID).To(Equal(idB))

			entries[0] = catalog.Entry{}
			Expect(c.Entries()[0].ID).To(Equal(idA))
		})

		It("should deduplicate concurrent additions", func() {
			var wg sync.WaitGroup
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					c.Add(build("same", event.NewTimeOutEvent(1)))
				}()
			}
			wg.Wait()

			Expect(c.Len()).To(Equal(1))
		})
	})

	Context("with hooks", func() {
		It("should report additions and duplicates", func() {
			c := catalog.MakeBuilder().Build()
			hook := &capturingHook{}
			c.AcceptHook(hook)

			first := build("a")
			id, _ := c.Add(first)
			dup := build("a")
			c.Add(dup)

			Expect(c.NumHooks()).To(Equal(1))
			Expect(hook.ctxs).To(HaveLen(2))

			Expect(hook.ctxs[0].Pos).To(BeIdenticalTo(catalog.HookPosAdded))
			Expect(hook.ctxs[0].Domain).To(BeIdenticalTo(c))
			Expect(hook.ctxs[0].Item).To(Equal(catalog.Entry{ID: id, Scenario: first}))
			Expect(hook.ctxs[0].Detail).To(BeNil())

			Expect(hook.ctxs[1].Pos).To(BeIdenticalTo(catalog.HookPosDuplicate))
			Expect(hook.ctxs[1].Item.(catalog.Entry).ID).To(Equal(id))
			Expect(hook.ctxs[1].Detail).To(BeIdenticalTo(dup))
		})

		It("should let hooks read the catalog", func() {
			c := catalog.MakeBuilder().Build()
			var seen int
			c.AcceptHook(hookFunc(func(ctx hooking.HookCtx) {
				seen = ctx.Domain.(*catalog.Catalog).Len()
			}))

			c.Add(build("a"))

			Expect(seen).To(Equal(1))
		})
	})

	Context("with a recorder", func() {
		var recorder *MockDataRecorder

		BeforeEach(func() {
			recorder = NewMockDataRecorder(mockCtrl)
		})

		It("should create the manifest table on build", func() {
			recorder.EXPECT().CreateTable("manifest", catalog.Summary{})

			catalog.MakeBuilder().
				WithRecorder(recorder).
				WithTableName("manifest").
				Build()
		})

		It("should record one row per added scenario", func() {
			recorder.EXPECT().CreateTable(catalog.DefaultTableName, catalog.Summary{})
			c := catalog.MakeBuilder().WithRecorder(recorder).Build()

			s := build("a", event.NewTimeOutEvent(5))
			var row catalog.Summary
			recorder.EXPECT().
				InsertData(catalog.DefaultTableName, gomock.Any()).
				Do(func(_ string, entry any) { row = entry.(catalog.Summary) })

			id, _ := c.Add(s)
			c.Add(build("a", event.NewTimeOutEvent(5)))

			Expect(row).To(Equal(catalog.Summarize(id, s)))
		})

		It("should flush the recorder", func() {
			recorder.EXPECT().CreateTable(catalog.DefaultTableName, catalog.Summary{})
			recorder.EXPECT().Flush()

			catalog.MakeBuilder().WithRecorder(recorder).Build().Flush()
		})
	})

	Describe("Summarize", func() {
		It("should describe a scenario without creating models", func() {
			calls := 0
			supplier := model.SupplierFunc(func() model.Model {
				calls++
				return newDepotModel()
			})

			s := scenario.NewBuilder(pc, "7").
				WithDistanceUnit(units.Meter).
				WithSpeedUnit(units.MetersPerSecond).
				WithTimeUnit(units.Second).
				WithTickSize(10).
				WithScenarioLength(3600).
				WithStopCondition(stopcondition.AnyTardiness).
				AddEvents(
					event.NewAddDepotEvent(0, event.Point{}),
					event.NewTimeOutEvent(3600),
				).
				AddModels(supplier, supplier).
				Build()

			Expect(catalog.Summarize("x", s)).To(Equal(catalog.Summary{
				ID:            "x",
				ProblemClass:  "catalog-test",
				Instance:      "7",
				Events:        2,
				EventTypes:    2,
				Models:        2,
				TickSize:      10,
				WindowBegin:   0,
				WindowEnd:     3600,
				DistanceUnit:  "m",
				SpeedUnit:     "m/s",
				TimeUnit:      "s",
				StopCondition: stopcondition.AnyTardiness.String(),
			}))
			Expect(calls).To(Equal(0))
		})

		It("should tolerate a missing stop condition", func() {
			s := scenario.NewBuilder(pc, "7").WithStopCondition(nil).Build()

			Expect(catalog.Summarize("x", s).StopCondition).To(Equal("none"))
		})
	})
})
