package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

type spawningModule struct {
	order *[]string
	name  string
}

func (m spawningModule) Install(app *App, commands *Commands) {
	*m.order = append(*m.order, m.name)
	commands.AddEntity(NameComponent{Name: m.name})
}

func TestAppBuilder_Defaults(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.Equal(t, []string{
		"Prelude", "PreUpdate", "Update", "PostUpdate",
		"PreRender", "Render", "PostRender", "Finale",
	}, app.Stages())
	assert.False(t, app.Quitting())
	assert.Equal(t, uint64(0), app.Frame())
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	assert.Len(t, builder.modules, 1)
	assert.False(t, mockModule.installed, "modules install on Build")
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	var order []string
	module := &MockModule{}

	app := NewAppBuilder().
		UseModule(module).
		UseModule(spawningModule{order: &order, name: "first"}, spawningModule{order: &order, name: "second"}).
		Build()

	assert.True(t, module.installed)
	assert.Equal(t, []string{"first", "second"}, order)

	// Entities spawned while installing exist before the first frame.
	cmd := app.Commands()
	require.Len(t, cmd.Entities(), 2)
	n, ok := GetComponent[NameComponent](cmd, cmd.Entities()[0])
	require.True(t, ok)
	assert.Equal(t, "first", n.Name)
}
