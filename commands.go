package gekko

// Commands is handed to systems. Structural changes (entities, components)
// are buffered and applied when the current stage finishes; reads see the
// world as it was at the start of the stage.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) AddEntity(components ...any) EntityId {
	eid := cmd.app.ecs.nextEntityId()
	cmd.app.pendingAdditions = append(cmd.app.pendingAdditions, pendingAdd{
		eid:        eid,
		components: components,
	})
	return eid
}

func (cmd *Commands) AddComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompAdds = append(cmd.app.pendingCompAdds, pendingCompChange{
		eid:        entityId,
		components: components,
	})
}

// RemoveComponents takes zero values (or pointers) of the component types
// to drop.
func (cmd *Commands) RemoveComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompRemovals = append(cmd.app.pendingCompRemovals, pendingCompChange{
		eid:        entityId,
		components: components,
	})
}

func (cmd *Commands) RemoveEntity(entityId EntityId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, entityId)
}

// Quit stops App.Run after the current frame.
func (cmd *Commands) Quit() {
	cmd.app.requestQuit()
}

func (cmd *Commands) EntityExists(entityId EntityId) bool {
	_, ok := cmd.app.ecs.entityIndex[entityId]
	return ok
}

// GetAllComponents returns copies of an entity's components in component
// registration order.
func (cmd *Commands) GetAllComponents(entityId EntityId) []any {
	var res []any
	for _, ptr := range cmd.app.ecs.componentPointers(entityId) {
		res = append(res, reflectDeref(ptr))
	}
	return res
}

// Entities lists every live entity in ascending id order.
func (cmd *Commands) Entities() []EntityId {
	return cmd.app.ecs.entities()
}

// GetComponent returns a pointer to the stored component, valid until the
// next flush.
func GetComponent[T any](cmd *Commands, entityId EntityId) (*T, bool) {
	return getComponent[T](cmd.app.ecs, entityId)
}
