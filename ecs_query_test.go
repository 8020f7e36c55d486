package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_Map(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b float32 }
	type Comp3 struct{}

	ecs := MakeEcs()
	ecs.addEntity(Comp1{a: 1})                                 // comp1 only                       -- shouldn't match
	id2 := ecs.addEntity(Comp1{a: 2}, Comp2{b: 1.37})          // comp1 & comp2                    -- should match
	id3 := ecs.addEntity(Comp1{a: 3}, Comp2{b: 4.20}, Comp3{}) // comp1 & comp2 + something extra  -- should match
	ecs.addEntity(Comp1{a: 4}, Comp3{})                        // comp1 + something extra          -- shouldn't match
	ecs.addEntity(Comp2{b: 3.14})                              // comp2 only                       -- shouldn't match

	query := Query2[Comp1, Comp2]{ecs: &ecs}

	var ids []EntityId
	var as []Comp1
	var bs []Comp2
	query.Map(func(entityId EntityId, comp1 *Comp1, comp2 *Comp2) bool {
		ids = append(ids, entityId)
		as = append(as, *comp1)
		bs = append(bs, *comp2)
		return true
	})

	assert.Equal(t, []EntityId{id2, id3}, ids)
	assert.Equal(t, []Comp1{{a: 2}, {a: 3}}, as)
	assert.Equal(t, []Comp2{{b: 1.37}, {b: 4.20}}, bs)
}

func TestQuery_MapOptional(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b int }

	ecs := MakeEcs()
	id1 := ecs.addEntity(Comp1{a: 1})
	id2 := ecs.addEntity(Comp1{a: 2}, Comp2{b: 20})

	seen := map[EntityId]*Comp2{}
	Query2[Comp1, Comp2]{ecs: &ecs}.Map(func(eid EntityId, _ *Comp1, c2 *Comp2) bool {
		seen[eid] = c2
		return true
	}, Comp2{})

	assert.Len(t, seen, 2)
	assert.Nil(t, seen[id1])
	assert.Equal(t, 20, seen[id2].b)
}

func TestQuery_MapStopsEarlyAndMutates(t *testing.T) {
	type Counter struct{ n int }

	ecs := MakeEcs()
	for i := 0; i < 5; i++ {
		ecs.addEntity(Counter{n: i})
	}

	visited := 0
	Query1[Counter]{ecs: &ecs}.Map(func(eid EntityId, c *Counter) bool {
		c.n += 100
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)

	var values []int
	Query1[Counter]{ecs: &ecs}.Map(func(eid EntityId, c *Counter) bool {
		values = append(values, c.n)
		return true
	})
	assert.Equal(t, []int{100, 101, 2, 3, 4}, values)
}

func TestQuery_Map3(t *testing.T) {
	type A struct{}
	type B struct{}
	type C struct{ v int }

	ecs := MakeEcs()
	ecs.addEntity(A{}, B{})
	id := ecs.addEntity(A{}, B{}, C{v: 9})

	count := 0
	Query3[A, B, C]{ecs: &ecs}.Map(func(eid EntityId, _ *A, _ *B, c *C) bool {
		assert.Equal(t, id, eid)
		assert.Equal(t, 9, c.v)
		count++
		return true
	})
	assert.Equal(t, 1, count)
}
