package gekko

// EditorSession is the editor's selection state: at most one inspected
// entity.
type EditorSession struct {
	inspected EntityId
	has       bool
}

func (s *EditorSession) Inspect(eid EntityId) {
	s.inspected = eid
	s.has = true
}

func (s *EditorSession) ClearInspection() {
	s.inspected = 0
	s.has = false
}

func (s *EditorSession) Inspected() (EntityId, bool) {
	return s.inspected, s.has
}

type EditorSessionModule struct{}

func (EditorSessionModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&EditorSession{})
	app.UseSystem(
		System(editorSessionSystem).
			InStage(PostUpdate),
	)
}

// editorSessionSystem drops the selection once its entity is gone.
func editorSessionSystem(cmd *Commands, session *EditorSession, log Logger) {
	eid, ok := session.Inspected()
	if !ok || cmd.EntityExists(eid) {
		return
	}
	log.Debugf("inspected entity %d was removed, clearing selection", eid)
	session.ClearInspection()
}
