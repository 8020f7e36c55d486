package gekko

const defaultEntityName = "Entity"

type EntityListItem struct {
	Id   EntityId
	Name string
}

// EntityList lists all entities by ascending id. Entities without a
// NameComponent are called "Entity".
func EntityList(cmd *Commands) []EntityListItem {
	ids := cmd.Entities()
	items := make([]EntityListItem, 0, len(ids))
	for _, eid := range ids {
		name := defaultEntityName
		if n, ok := GetComponent[NameComponent](cmd, eid); ok && n.Name != "" {
			name = n.Name
		}
		items = append(items, EntityListItem{Id: eid, Name: name})
	}
	return items
}
