// Package catalog keeps a set of distinct scenarios and records a manifest
// of them.
package catalog

import (
	"slices"
	"sync"

	"github.com/rs/xid"

	"github.com/sarchlab/pdptw/datarecording"
	"github.com/sarchlab/pdptw/hooking"
	"github.com/sarchlab/pdptw/model"
	"github.com/sarchlab/pdptw/scenario"
)

// DefaultTableName is the manifest table used when none is given.
const DefaultTableName = "scenarios"

// Hook positions of a catalog. The item of both is the stored Entry. The
// detail of HookPosDuplicate is the scenario that was rejected.
var (
	HookPosAdded     = &hooking.HookPos{Name: "ScenarioAdded"}
	HookPosDuplicate = &hooking.HookPos{Name: "DuplicateScenario"}
)

// An Entry is a scenario stored in a catalog.
type Entry struct {
	ID       string
	Scenario scenario.Scenario
}

func (e Entry) String() string {
	return e.ID + " " + e.Scenario.ProblemInstanceID()
}

// Summary is the flat manifest row of a scenario.
type Summary struct {
	ID            string
	ProblemClass  string
	Instance      string
	Events        int
	EventTypes    int
	Models        int
	TickSize      int64
	WindowBegin   int64
	WindowEnd     int64
	DistanceUnit  string
	SpeedUnit     string
	TimeUnit      string
	StopCondition string
}

type modelLister interface {
	ModelSuppliers() []model.Supplier
}

// Summarize describes s as a manifest row. It never creates models.
func Summarize(id string, s scenario.Scenario) Summary {
	sum := Summary{
		ID:            id,
		Instance:      s.ProblemInstanceID(),
		Events:        len(s.Events()),
		EventTypes:    s.SupportedEventTypes().Len(),
		TickSize:      s.TickSize(),
		WindowBegin:   s.TimeWindow().Begin,
		WindowEnd:     s.TimeWindow().End,
		DistanceUnit:  s.DistanceUnit().Symbol(),
		SpeedUnit:     s.SpeedUnit().Symbol(),
		TimeUnit:      s.TimeUnit().Symbol(),
		StopCondition: "none",
	}

	if pc := s.ProblemClass(); pc != nil {
		sum.ProblemClass = pc.ID()
	}

	if c := s.StopCondition(); c != nil {
		sum.StopCondition = c.String()
	}

	if l, ok := s.(modelLister); ok {
		sum.Models = len(l.ModelSuppliers())
	}

	return sum
}

// Builder can build catalogs.
type Builder struct {
	recorder  datarecording.DataRecorder
	tableName string
}

// MakeBuilder creates a builder with the default table name and no recorder.
func MakeBuilder() Builder {
	return Builder{tableName: DefaultTableName}
}

// WithRecorder sets where the manifest is recorded.
func (b Builder) WithRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// WithTableName sets the name of the manifest table.
func (b Builder) WithTableName(name string) Builder {
	b.tableName = name
	return b
}

// Build creates a catalog. If a recorder is set, the manifest table is
// created.
func (b Builder) Build() *Catalog {
	c := &Catalog{
		recorder:  b.recorder,
		tableName: b.tableName,
		index:     make(map[string]int),
	}

	if c.recorder != nil {
		c.recorder.CreateTable(c.tableName, Summary{})
	}

	return c
}

// Catalog stores scenarios that are pairwise unequal. It is safe for
// concurrent use. Hooks run after the catalog is updated, outside its lock.
type Catalog struct {
	hooking.HookableBase

	mu        sync.Mutex
	recorder  datarecording.DataRecorder
	tableName string
	entries   []Entry
	index     map[string]int
}

// Add stores s unless an equal scenario is already stored. It returns the ID
// of the stored scenario and whether s was added.
func (c *Catalog) Add(s scenario.Scenario) (string, bool) {
	entry, added, hooks := c.add(s)

	ctx := hooking.HookCtx{Domain: c, Pos: HookPosAdded, Item: entry}
	if !added {
		ctx.Pos = HookPosDuplicate
		ctx.Detail = s
	}

	hooking.Invoke(hooks, ctx)

	return entry.ID, added
}

func (c *Catalog) add(s scenario.Scenario) (Entry, bool, []hooking.Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hooks := c.HookableBase.Hooks()

	for _, e := range c.entries {
		if e.Scenario.Equal(s) {
			return e, false, hooks
		}
	}

	entry := Entry{ID: xid.New().String(), Scenario: s}
	c.index[entry.ID] = len(c.entries)
	c.entries = append(c.entries, entry)

	if c.recorder != nil {
		c.recorder.InsertData(c.tableName, Summarize(entry.ID, s))
	}

	return entry, true, hooks
}

// AcceptHook registers a hook.
func (c *Catalog) AcceptHook(hook hooking.Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.HookableBase.AcceptHook(hook)
}

// NumHooks returns the number of hooks registered.
func (c *Catalog) NumHooks() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.HookableBase.NumHooks()
}

// Hooks returns the hooks registered.
func (c *Catalog) Hooks() []hooking.Hook {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.HookableBase.Hooks()
}

// Get returns the scenario stored under id.
func (c *Catalog) Get(id string) (scenario.Scenario, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return nil, false
	}

	return c.entries[i].Scenario, true
}

// Len returns the number of stored scenarios.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Entries returns the stored scenarios in the order they were added.
func (c *Catalog) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.entries)
}

// Flush writes the buffered manifest rows.
func (c *Catalog) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recorder != nil {
		c.recorder.Flush()
	}
}
