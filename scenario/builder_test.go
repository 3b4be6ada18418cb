package scenario

import (
	"iter"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pdptw/event"
	"github.com/sarchlab/pdptw/model"
	"github.com/sarchlab/pdptw/units"
)

var (
	pingType = &event.Type{Name: "Ping"}
	pongType = &event.Type{Name: "Pong"}
)

func distinctTypes(events []event.TimedEvent) map[*event.Type]bool {
	types := make(map[*event.Type]bool)
	for _, e := range events {
		types[e.EventType()] = true
	}

	return types
}

var _ = Describe("Builder", func() {
	var (
		mockCtrl *gomock.Controller
		pc       ProblemClassID
		builder  *Builder
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pc = ProblemClassID("test-class")
		builder = NewBuilder(pc, "instance-1")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should start empty with the default settings", func() {
		Expect(builder.Settings()).To(Equal(DefaultSettings()))
		Expect(builder.ProblemClass()).To(Equal(pc))
		Expect(builder.InstanceID()).To(Equal("instance-1"))

		s := builder.Build()
		Expect(s.Events()).To(BeEmpty())
		Expect(s.SupportedEventTypes().Len()).To(Equal(0))
		Expect(s.CreateModels()).To(BeEmpty())
	})

	It("should keep the event types in sync with the events", func() {
		events := []event.TimedEvent{
			event.New(pingType, 30),
			event.New(pingType, 10),
			event.New(pongType, 20),
			event.New(event.AddParcel, 0),
			event.New(pongType, 40),
		}

		for i, e := range events {
			builder.AddEvent(e)

			types := builder.eventTypes
			want := distinctTypes(events[:i+1])
			Expect(types.Len()).To(Equal(len(want)))
			for t := range want {
				Expect(types.Contains(t)).To(BeTrue())
			}
		}

		s := builder.Build()
		Expect(s.Events()).To(Equal(events))
		Expect(s.SupportedEventTypes().Types()).
			To(Equal([]*event.Type{pingType, pongType, event.AddParcel}))
	})

	It("should add events from a slice in order", func() {
		e1 := event.New(pingType, 1)
		e2 := event.New(pongType, 2)

		a := NewBuilder(pc, "x").AddEvent(e1).AddEvent(e2).Build()
		b := NewBuilder(pc, "x").AddEvents(e1, e2).Build()

		Expect(a.Equal(b)).To(BeTrue())
		Expect(b.Events()).To(Equal([]event.TimedEvent{e1, e2}))
	})

	It("should add events from a sequence", func() {
		seq := func(yield func(event.TimedEvent) bool) {
			for i := range 3 {
				if !yield(event.New(pingType, int64(i))) {
					return
				}
			}
		}

		s := builder.AddEventSeq(seq).Build()

		Expect(s.Len()).To(Equal(3))
		Expect(s.SupportedEventTypes().Contains(pingType)).To(BeTrue())
	})

	It("should keep the events added before a sequence fails", func() {
		var seq iter.Seq[event.TimedEvent] = func(
			yield func(event.TimedEvent) bool,
		) {
			yield(event.New(pingType, 1))
			yield(event.New(pongType, 2))
			panic("source failed")
		}

		Expect(func() { builder.AddEventSeq(seq) }).To(Panic())

		s := builder.Build()
		Expect(s.Len()).To(Equal(2))
		Expect(s.SupportedEventTypes().Len()).To(Equal(2))
	})

	It("should accumulate models without removing duplicates", func() {
		supplier := NewMockSupplier(mockCtrl)
		other := NewMockSupplier(mockCtrl)

		s := builder.
			AddModel(supplier).
			AddModels(other, supplier).
			Build()

		Expect(s.ModelSuppliers()).
			To(Equal([]model.Supplier{supplier, other, supplier}))
	})

	It("should copy settings from a builder of another family", func() {
		base := newFleetBuilder().
			WithVehicles(4).
			WithTickSize(500).
			WithDistanceUnit(units.Meter)

		b := NewBuilderFrom(base, pc, "derived")

		Expect(b.Settings()).To(Equal(base.Settings()))
		Expect(b.InstanceID()).To(Equal("derived"))
		Expect(b.Build().Events()).To(BeEmpty())
	})

	It("should not copy events or models from a base builder", func() {
		base := NewBuilder(pc, "base").
			WithTickSize(3).
			AddEvent(event.New(pingType, 1)).
			AddModel(NewMockSupplier(mockCtrl))

		s := NewBuilderFrom(base, pc, "derived").Build()

		Expect(s.TickSize()).To(Equal(int64(3)))
		Expect(s.Len()).To(Equal(0))
		Expect(s.ModelSuppliers()).To(BeEmpty())
	})

	It("should build equal but distinct scenarios", func() {
		builder.
			AddEvent(event.New(pingType, 1)).
			AddModel(NewMockSupplier(mockCtrl))

		a := builder.Build()
		b := builder.Build()

		Expect(a).ToNot(BeIdenticalTo(b))
		Expect(a.Equal(b)).To(BeTrue())
		Expect(b.Equal(a)).To(BeTrue())
	})

	It("should not change built scenarios when reused", func() {
		builder.AddEvent(event.New(pingType, 1))
		before := builder.Build()

		builder.
			AddEvent(event.New(pongType, 2)).
			AddModel(NewMockSupplier(mockCtrl)).
			WithTickSize(1)

		Expect(before.Len()).To(Equal(1))
		Expect(before.SupportedEventTypes().Contains(pongType)).To(BeFalse())
		Expect(before.ModelSuppliers()).To(BeEmpty())
		Expect(before.TickSize()).To(Equal(DefaultTickSize))
		Expect(before.Equal(builder.Build())).To(BeFalse())
	})

	It("should carry every setting into the scenario", func() {
		cond := NewMockCondition(mockCtrl)

		s := builder.
			WithTimeUnit(units.Second).
			WithTickSize(2).
			WithSpeedUnit(units.MetersPerSecond).
			WithDistanceUnit(units.Meter).
			WithScenarioLength(5000).
			WithStopCondition(cond).
			Build()

		Expect(s.TimeUnit()).To(Equal(units.Second))
		Expect(s.TickSize()).To(Equal(int64(2)))
		Expect(s.SpeedUnit()).To(Equal(units.MetersPerSecond))
		Expect(s.DistanceUnit()).To(Equal(units.Meter))
		Expect(s.TimeWindow().Begin).To(Equal(int64(0)))
		Expect(s.TimeWindow().End).To(Equal(int64(5000)))
		Expect(s.StopCondition()).To(BeIdenticalTo(cond))
		Expect(s.ProblemClass()).To(Equal(pc))
		Expect(s.ProblemInstanceID()).To(Equal("instance-1"))
	})
})
