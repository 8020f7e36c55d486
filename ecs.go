package gekko

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

type EntityId uint64
type archetypeKey []componentId
type componentId uint32
type set[T comparable] = map[T]struct{}

// Ecs stores components in archetypes: one table per distinct set of
// component types, one typed column per component.
type Ecs struct {
	// Creation order, so iteration is deterministic.
	archetypes  []*archetype
	archByKey   map[string]*archetype
	entityIndex map[EntityId]*archetype

	idGeneratorLock sync.Mutex
	entityIdCounter EntityId

	componentIdCounterLock sync.Mutex
	componentTypeIdMap     map[reflect.Type]componentId
	componentIdTypeMap     []reflect.Type
}

func MakeEcs() Ecs {
	return Ecs{
		archByKey:          make(map[string]*archetype),
		entityIndex:        make(map[EntityId]*archetype),
		componentTypeIdMap: make(map[reflect.Type]componentId),
	}
}

type archetype struct {
	key           archetypeKey
	entities      []EntityId
	rows          map[EntityId]int
	componentData map[componentId]any // typed slices via reflection
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	entityId := ecs.nextEntityId()
	return ecs.insertEntity(entityId, components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	if _, exists := ecs.entityIndex[entityId]; exists {
		ecs.addComponents(entityId, components...)
		return entityId
	}

	arch := ecs.getOrMakeArchetype(ecs.getArchetypeKey(components...))
	row := ecs.appendRow(arch, entityId)
	for _, component := range components {
		ecs.writeComponent(arch, row, component)
	}
	ecs.entityIndex[entityId] = arch

	return entityId
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	arch, ok := ecs.entityIndex[entityId]
	if !ok {
		return
	}
	ecs.removeRow(arch, entityId)
	delete(ecs.entityIndex, entityId)
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	src, ok := ecs.entityIndex[entityId]
	if !ok {
		return
	}
	dstKey := combineArchetypeKeys(src.key, ecs.getArchetypeKey(components...))
	dst, row := ecs.moveEntity(entityId, src, dstKey)
	for _, component := range components {
		ecs.writeComponent(dst, row, component)
	}
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	src, ok := ecs.entityIndex[entityId]
	if !ok {
		return
	}

	removeSet := make(set[componentId])
	for _, c := range components {
		removeSet[ecs.getComponentId(componentType(c))] = struct{}{}
	}

	var dstKey archetypeKey
	for _, compId := range src.key {
		if _, shouldRemove := removeSet[compId]; !shouldRemove {
			dstKey = append(dstKey, compId)
		}
	}
	ecs.moveEntity(entityId, src, dstKey)
}

// moveEntity relocates an entity into the archetype for dstKey, carrying
// over the components both archetypes share.
func (ecs *Ecs) moveEntity(entityId EntityId, src *archetype, dstKey archetypeKey) (*archetype, int) {
	dst := ecs.getOrMakeArchetype(dstKey)
	if dst == src {
		return src, src.rows[entityId]
	}

	srcRow := src.rows[entityId]
	dstRow := ecs.appendRow(dst, entityId)
	for _, id := range dst.key {
		if srcCol, ok := src.componentData[id]; ok {
			reflectSliceSet(dst.componentData[id], dstRow, reflectSliceGet(srcCol, srcRow))
		}
	}
	ecs.removeRow(src, entityId)
	ecs.entityIndex[entityId] = dst
	return dst, dstRow
}

func (ecs *Ecs) appendRow(arch *archetype, entityId EntityId) int {
	row := len(arch.entities)
	for _, id := range arch.key {
		arch.componentData[id] = reflectSliceAppend(
			arch.componentData[id],
			reflect.Zero(ecs.componentIdTypeMap[id]),
		)
	}
	arch.entities = append(arch.entities, entityId)
	arch.rows[entityId] = row
	return row
}

// removeRow swaps the last row into the freed slot.
func (ecs *Ecs) removeRow(arch *archetype, entityId EntityId) {
	row, ok := arch.rows[entityId]
	if !ok {
		return
	}
	last := len(arch.entities) - 1
	for id, col := range arch.componentData {
		arch.componentData[id] = reflectSliceSwapRemove(col, row)
	}
	moved := arch.entities[last]
	arch.entities[row] = moved
	arch.rows[moved] = row
	arch.entities = arch.entities[:last]
	delete(arch.rows, entityId)
}

func (ecs *Ecs) writeComponent(dstArch *archetype, dstRow int, component any) {
	reflectValue := reflect.ValueOf(component)
	if reflectValue.Kind() == reflect.Pointer {
		reflectValue = reflectValue.Elem()
	}

	id := ecs.getComponentId(reflectValue.Type())
	reflectSliceSet(dstArch.componentData[id], dstRow, reflectValue)
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType != nil && compType.Kind() == reflect.Pointer {
		compType = compType.Elem()
	}
	if compType == nil || compType.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected Component to be a struct or a pointer to a struct, got %T", component))
	}
	return compType
}

func (ecs *Ecs) getOrMakeArchetype(key archetypeKey) *archetype {
	k := key.String()
	if arch, ok := ecs.archByKey[k]; ok {
		return arch
	}

	arch := &archetype{
		key:           key,
		rows:          make(map[EntityId]int),
		componentData: make(map[componentId]any),
	}
	for _, id := range arch.key {
		arch.componentData[id] = reflectSliceMake(ecs.componentIdTypeMap[id])
	}

	ecs.archetypes = append(ecs.archetypes, arch)
	ecs.archByKey[k] = arch
	return arch
}

// Archetype's canonical key: the sorted, deduplicated component ids.
func (ecs *Ecs) getArchetypeKey(components ...any) archetypeKey {
	var res archetypeKey
	for _, component := range components {
		res = append(res, ecs.getComponentId(componentType(component)))
	}
	return dedupAndSortArchetypeKey(res)
}

func (key archetypeKey) String() string {
	var b strings.Builder
	for i, id := range key {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

func combineArchetypeKeys(a archetypeKey, b archetypeKey) archetypeKey {
	return dedupAndSortArchetypeKey(append(slices.Clone(a), b...))
}

func dedupAndSortArchetypeKey(key archetypeKey) archetypeKey {
	res := slices.Clone(key)
	slices.Sort(res)
	return slices.Compact(res)
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idGeneratorLock.Lock()
	defer ecs.idGeneratorLock.Unlock()

	id := ecs.entityIdCounter
	ecs.entityIdCounter += 1

	return id
}

func (ecs *Ecs) getComponentId(componentType reflect.Type) componentId {
	ecs.componentIdCounterLock.Lock()
	defer ecs.componentIdCounterLock.Unlock()

	if id, ok := ecs.componentTypeIdMap[componentType]; ok {
		return id
	}
	id := componentId(len(ecs.componentIdTypeMap))
	ecs.componentTypeIdMap[componentType] = id
	ecs.componentIdTypeMap = append(ecs.componentIdTypeMap, componentType)
	return id
}

func (ecs *Ecs) getComponentType(componentId componentId) reflect.Type {
	if int(componentId) < len(ecs.componentIdTypeMap) {
		return ecs.componentIdTypeMap[componentId]
	}
	panic("ComponentID not registered")
}

// componentPointers returns a pointer to each stored component of an entity.
func (ecs *Ecs) componentPointers(entityId EntityId) []any {
	arch, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil
	}
	row := arch.rows[entityId]
	res := make([]any, 0, len(arch.key))
	for _, id := range arch.key {
		res = append(res, reflectSliceAddr(arch.componentData[id], row))
	}
	return res
}

func (ecs *Ecs) entities() []EntityId {
	res := make([]EntityId, 0, len(ecs.entityIndex))
	for eid := range ecs.entityIndex {
		res = append(res, eid)
	}
	slices.Sort(res)
	return res
}

func getComponent[T any](ecs *Ecs, entityId EntityId) (*T, bool) {
	arch, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil, false
	}
	col, ok := arch.componentData[ecs.getComponentId(reflect.TypeFor[T]())]
	if !ok {
		return nil, false
	}
	return &col.([]T)[arch.rows[entityId]], true
}
