package gekko

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	assert.Empty(t, ecs.archetypes)
	assert.Empty(t, ecs.entityIndex)
	assert.Equal(t, EntityId(0), ecs.entityIdCounter)
	assert.Empty(t, ecs.componentIdTypeMap)
}

func TestEcs_AddEntity(t *testing.T) {
	type TestComponent struct{ x string }

	ecs := MakeEcs()
	entityId := ecs.addEntity()
	entityId2 := ecs.addEntity(TestComponent{x: "test"})

	require.Contains(t, ecs.entityIndex, entityId)
	require.Contains(t, ecs.entityIndex, entityId2)
	assert.NotSame(t, ecs.entityIndex[entityId], ecs.entityIndex[entityId2],
		"entities with different components share an archetype")

	c, ok := getComponent[TestComponent](&ecs, entityId2)
	require.True(t, ok)
	assert.Equal(t, "test", c.x)
}

func TestEcs_AddComponents(t *testing.T) {
	type TestComponent0 struct{ a int }
	type TestComponent1 struct{ x string }
	type TestComponent2 struct{ y string }
	type TestComponent3 struct{ z string }

	ecs := MakeEcs()
	entityId := ecs.addEntity(TestComponent0{a: 1337})
	ecs.addComponents(entityId, TestComponent1{x: "test"}, TestComponent2{y: "hello"})
	ecs.addComponents(entityId, &TestComponent3{z: "test-2"})

	arch := ecs.entityIndex[entityId]
	assert.Len(t, arch.componentData, 4)

	c0, ok := getComponent[TestComponent0](&ecs, entityId)
	require.True(t, ok)
	assert.Equal(t, 1337, c0.a)
	c3, ok := getComponent[TestComponent3](&ecs, entityId)
	require.True(t, ok)
	assert.Equal(t, "test-2", c3.z)
}

func TestEcs_AddComponentsOverwritesExisting(t *testing.T) {
	type Health struct{ HP int }

	ecs := MakeEcs()
	id := ecs.addEntity(Health{HP: 10})
	before := ecs.entityIndex[id]
	ecs.addComponents(id, Health{HP: 3})

	assert.Same(t, before, ecs.entityIndex[id])
	h, _ := getComponent[Health](&ecs, id)
	assert.Equal(t, 3, h.HP)
}

func TestEcs_RemoveComponents(t *testing.T) {
	type A struct{ V int }
	type B struct{ V int }

	ecs := MakeEcs()
	id := ecs.addEntity(A{1}, B{2})
	other := ecs.addEntity(A{5}, B{6})
	ecs.removeComponents(id, B{})

	_, hasB := getComponent[B](&ecs, id)
	assert.False(t, hasB)
	a, ok := getComponent[A](&ecs, id)
	require.True(t, ok)
	assert.Equal(t, 1, a.V)

	// The entity left behind in the old archetype keeps its data.
	b, ok := getComponent[B](&ecs, other)
	require.True(t, ok)
	assert.Equal(t, 6, b.V)
}

func TestEcs_AddInvalidComponentShouldPanic(t *testing.T) {
	ecs := MakeEcs()
	assert.Panics(t, func() { ecs.addEntity(123) })
}

func TestEcs_ComponentRegistration(t *testing.T) {
	type Position struct{ x, y float64 }

	ecs := MakeEcs()
	id1 := ecs.getComponentId(reflect.TypeOf(Position{}))
	id2 := ecs.getComponentId(reflect.TypeOf(Position{}))

	assert.Equal(t, id1, id2)
	assert.Equal(t, reflect.TypeOf(Position{}), ecs.getComponentType(id1))
	assert.Panics(t, func() { ecs.getComponentType(id1 + 1) })
}

func TestEcs_ArchetypeKeyExtension(t *testing.T) {
	assert.Equal(t, archetypeKey{1, 2, 3}, dedupAndSortArchetypeKey([]componentId{3, 1, 2, 1, 3}))

	a := archetypeKey{1, 2, 3}
	assert.Equal(t, archetypeKey{1, 2, 3, 4}, combineArchetypeKeys(a, []componentId{4, 3, 2, 1}))
	assert.Equal(t, archetypeKey{1, 2, 3}, a, "combining must not modify its input")
	assert.Equal(t, "1,2,3", a.String())
}

func TestEcs_RemoveEntitySwapsLastRow(t *testing.T) {
	type Position struct{ X, Y float64 }

	ecs := MakeEcs()
	id1 := ecs.addEntity(Position{1, 2})
	id2 := ecs.addEntity(Position{3, 4})
	id3 := ecs.addEntity(Position{5, 6})
	ecs.removeEntity(id1)

	assert.NotContains(t, ecs.entityIndex, id1)
	p3, ok := getComponent[Position](&ecs, id3)
	require.True(t, ok)
	assert.Equal(t, Position{5, 6}, *p3)
	p2, _ := getComponent[Position](&ecs, id2)
	assert.Equal(t, Position{3, 4}, *p2)

	// Removing twice is harmless.
	ecs.removeEntity(id1)
	assert.Equal(t, []EntityId{id2, id3}, ecs.entities())
}

func TestEcs_ComponentPointers(t *testing.T) {
	type A struct{ V int }
	type B struct{ S string }

	ecs := MakeEcs()
	id := ecs.addEntity(B{"b"}, A{1})
	ptrs := ecs.componentPointers(id)
	require.Len(t, ptrs, 2)

	// Component ids follow first registration: B before A.
	ptrs[0].(*B).S = "changed"
	b, _ := getComponent[B](&ecs, id)
	assert.Equal(t, "changed", b.S)
	assert.Nil(t, ecs.componentPointers(999))
}
