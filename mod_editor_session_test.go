package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorSession_Inspect(t *testing.T) {
	var s EditorSession
	_, ok := s.Inspected()
	assert.False(t, ok)

	s.Inspect(0)
	eid, ok := s.Inspected()
	assert.True(t, ok, "entity 0 is a valid selection")
	assert.Equal(t, EntityId(0), eid)

	s.ClearInspection()
	_, ok = s.Inspected()
	assert.False(t, ok)
}

func TestEditorSession_ClearsRemovedEntity(t *testing.T) {
	app := NewAppBuilder().UseModule(EditorSessionModule{}).Build()
	session, ok := Resource[EditorSession](app)
	require.True(t, ok)

	cmd := app.Commands()
	eid := cmd.AddEntity(NameComponent{Name: "doomed"})
	app.FlushCommands()
	session.Inspect(eid)

	app.Step()
	_, ok = session.Inspected()
	assert.True(t, ok)

	cmd.RemoveEntity(eid)
	app.Step()
	_, ok = session.Inspected()
	assert.False(t, ok)
}
