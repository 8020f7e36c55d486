package gekko

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// ComponentView is one registered component rendered for editing.
type ComponentView struct {
	Name string
	Text string
}

func AddComponentByName(cmd *Commands, reg *ComponentRegistry, eid EntityId, name string) error {
	if !cmd.EntityExists(eid) {
		return fmt.Errorf("%w: %d", ErrNoSuchEntity, eid)
	}
	info, ok := reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	cmd.AddComponents(eid, info.New())
	return nil
}

func RemoveComponentByName(cmd *Commands, reg *ComponentRegistry, eid EntityId, name string) error {
	if !cmd.EntityExists(eid) {
		return fmt.Errorf("%w: %d", ErrNoSuchEntity, eid)
	}
	info, ok := reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	cmd.RemoveComponents(eid, info.New())
	return nil
}

// InspectEntity renders every registered component of eid as indented JSON
// limited to the registered fields, sorted by component name.
func InspectEntity(cmd *Commands, reg *ComponentRegistry, eid EntityId) ([]ComponentView, error) {
	if !cmd.EntityExists(eid) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchEntity, eid)
	}

	var views []ComponentView
	for _, ptr := range cmd.app.ecs.componentPointers(eid) {
		name, ok := reg.nameOf(reflect.TypeOf(ptr).Elem())
		if !ok {
			continue
		}
		info, _ := reg.Lookup(name)
		all, err := jsonFields(ptr)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", name, err)
		}
		shown := make(map[string]json.RawMessage, len(info.Fields))
		for _, f := range info.Fields {
			shown[f] = all[f]
		}
		text, err := json.MarshalIndent(shown, "", " ")
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", name, err)
		}
		views = append(views, ComponentView{Name: name, Text: string(text)})
	}
	slices.SortFunc(views, func(a, b ComponentView) int { return strings.Compare(a.Name, b.Name) })
	return views, nil
}

// ApplyComponentEdit parses text as a JSON object and copies the registered
// fields it contains onto the live component. Other keys are ignored. On
// any error the component is left as it was.
func ApplyComponentEdit(cmd *Commands, reg *ComponentRegistry, eid EntityId, name, text string) error {
	if !cmd.EntityExists(eid) {
		return fmt.Errorf("%w: %d", ErrNoSuchEntity, eid)
	}
	info, ok := reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}

	var target reflect.Value
	for _, ptr := range cmd.app.ecs.componentPointers(eid) {
		if n, ok := reg.nameOf(reflect.TypeOf(ptr).Elem()); ok && n == name {
			target = reflect.ValueOf(ptr)
			break
		}
	}
	if !target.IsValid() {
		return fmt.Errorf("entity %d has no %s component", eid, name)
	}

	var edit map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &edit); err != nil {
		return fmt.Errorf("edit %s: %w", name, err)
	}
	allowed := make(map[string]json.RawMessage, len(info.Fields))
	for _, f := range info.Fields {
		if v, ok := edit[f]; ok {
			allowed[f] = v
		}
	}
	patch, err := json.Marshal(allowed)
	if err != nil {
		return fmt.Errorf("edit %s: %w", name, err)
	}

	updated := reflect.New(target.Elem().Type())
	updated.Elem().Set(target.Elem())
	if err := json.Unmarshal(patch, updated.Interface()); err != nil {
		return fmt.Errorf("edit %s: %w", name, err)
	}
	target.Elem().Set(updated.Elem())
	return nil
}
