package gekko

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

type namer interface{ Name() string }

func (r *MockResource2) Name() string { return r.name }

func TestApp_addResources(t *testing.T) {
	app := newApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	assert.Panics(t, func() { app.addResources(MockResource1{}) }, "non-pointer resources are rejected")
}

func TestApp_Resource(t *testing.T) {
	app := newApp()
	_, ok := Resource[MockResource1](app)
	assert.False(t, ok)

	r := NewMockResource1("one")
	app.addResources(r)
	got, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Same(t, r, got)
}

func TestApp_SystemInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("test", false, &buf, &buf)

	app := NewAppBuilder().
		UseModule(LoggingModule{Logger: logger}).
		Build()
	app.addResources(NewMockResource1("r1"), NewMockResource2("r2"))

	var (
		gotR1     *MockResource1
		gotNamer  namer
		gotLogger Logger
		gotCmd    *Commands
	)
	app.UseSystem(System(func(cmd *Commands, r1 *MockResource1, n namer, log Logger) {
		gotCmd, gotR1, gotNamer, gotLogger = cmd, r1, n, log
	}))
	app.Step()

	require.NotNil(t, gotCmd)
	assert.Equal(t, "r1", gotR1.name)
	assert.Equal(t, "r2", gotNamer.Name())
	assert.Same(t, logger, gotLogger)
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := newApp()
	app.UseSystem(System(func(*MockResource1) {}))

	assert.Panics(t, app.Step)
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	app := newApp()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseSystem(System(record("update-2")).InStage(Update))
	app.Step()

	assert.Equal(t, []string{"prelude", "update", "update-2", "render"}, order)
	assert.Equal(t, uint64(1), app.Frame())
}

func TestApp_UseStage(t *testing.T) {
	app := newApp()
	physics := Stage{Name: "Physics"}
	app.UseStage(physics, AfterStage(Update))
	app.UseStage(Stage{Name: "Input"}, BeforeStage(PreUpdate))

	assert.Equal(t, []string{
		"Prelude", "Input", "PreUpdate", "Update", "Physics", "PostUpdate",
		"PreRender", "Render", "PostRender", "Finale",
	}, app.Stages())

	assert.Panics(t, func() { app.UseStage(physics, AfterStage(Update)) })
	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, AfterStage(Stage{Name: "missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(42)) })
	assert.Panics(t, func() { app.UseSystem(System(func() {}).InStage(Stage{Name: "missing"})) })
}

func TestApp_CommandsFlushAfterStage(t *testing.T) {
	type Marker struct{ N int }

	app := newApp()
	var eid EntityId
	var existedInSameStage, existedInNextStage bool

	app.UseSystem(System(func(cmd *Commands) {
		if app.Frame() == 0 {
			eid = cmd.AddEntity(Marker{N: 1})
			existedInSameStage = cmd.EntityExists(eid)
		}
	}).InStage(Update))
	app.UseSystem(System(func(cmd *Commands) {
		if app.Frame() == 0 {
			existedInNextStage = cmd.EntityExists(eid)
		}
	}).InStage(PostUpdate))
	app.Step()

	assert.False(t, existedInSameStage)
	assert.True(t, existedInNextStage)
}

func TestApp_FlushOrder(t *testing.T) {
	type A struct{ V int }
	type B struct{ V int }

	app := newApp()
	cmd := app.Commands()

	keep := cmd.AddEntity(A{1})
	doomed := cmd.AddEntity(A{2})
	cmd.RemoveEntity(doomed)
	cmd.AddComponents(keep, B{3})
	cmd.RemoveComponents(keep, A{})
	app.FlushCommands()

	assert.False(t, cmd.EntityExists(doomed), "an entity removed in the same flush is never added")
	assert.Equal(t, []EntityId{keep}, cmd.Entities())
	_, hasA := GetComponent[A](cmd, keep)
	assert.False(t, hasA)
	b, ok := GetComponent[B](cmd, keep)
	require.True(t, ok)
	assert.Equal(t, 3, b.V)
	assert.Equal(t, []any{B{3}}, cmd.GetAllComponents(keep))
}

func TestApp_RunUntilQuit(t *testing.T) {
	app := newApp()
	app.UseSystem(System(func(cmd *Commands) {
		if app.Frame() == 2 {
			cmd.Quit()
		}
	}))
	app.Run()

	assert.True(t, app.Quitting())
	assert.Equal(t, uint64(3), app.Frame())
}
