package gekko

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrUnknownComponent = errors.New("unknown component")
	ErrNoSuchEntity     = errors.New("no such entity")
)

// ComponentInfo describes a component the inspector may show, add or edit.
// Fields are the JSON keys an edit is allowed to change.
type ComponentInfo struct {
	Name   string
	New    func() any
	Fields []string
}

type ComponentRegistry struct {
	byName map[string]ComponentInfo
	byType map[reflect.Type]string
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byName: make(map[string]ComponentInfo),
		byType: make(map[reflect.Type]string),
	}
}

// Register adds a component kind. New must return a pointer to a struct
// whose JSON form has every listed field.
func (r *ComponentRegistry) Register(info ComponentInfo) error {
	if info.Name == "" || info.New == nil {
		return errors.New("component needs a name and a constructor")
	}
	if _, exists := r.byName[info.Name]; exists {
		return fmt.Errorf("component %q already registered", info.Name)
	}
	sample := info.New()
	t := reflect.TypeOf(sample)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("component %q: constructor must return a struct pointer, got %T", info.Name, sample)
	}

	fields, err := jsonFields(sample)
	if err != nil {
		return fmt.Errorf("component %q: %w", info.Name, err)
	}
	for _, f := range info.Fields {
		if _, ok := fields[f]; !ok {
			return fmt.Errorf("component %q has no field %q", info.Name, f)
		}
	}

	info.Fields = slices.Clone(info.Fields)
	r.byName[info.Name] = info
	r.byType[t.Elem()] = info.Name
	return nil
}

// RegisterComponent registers T under name with a zero-value constructor.
func RegisterComponent[T any](r *ComponentRegistry, name string, fields ...string) error {
	return r.Register(ComponentInfo{
		Name:   name,
		New:    func() any { return new(T) },
		Fields: fields,
	})
}

func (r *ComponentRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *ComponentRegistry) Lookup(name string) (ComponentInfo, bool) {
	info, ok := r.byName[name]
	return info, ok
}

func (r *ComponentRegistry) nameOf(t reflect.Type) (string, bool) {
	name, ok := r.byType[t]
	return name, ok
}

func (r *ComponentRegistry) mustRegister(info ComponentInfo) {
	if err := r.Register(info); err != nil {
		panic(err)
	}
}

func jsonFields(v any) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ComponentRegistryModule installs a registry holding the editor's own
// components. Setup may register more.
type ComponentRegistryModule struct {
	Setup func(r *ComponentRegistry)
}

func (mod ComponentRegistryModule) Install(app *App, cmd *Commands) {
	r := NewComponentRegistry()
	r.mustRegister(ComponentInfo{
		Name:   "Transform",
		New:    func() any { t := NewTransformComponent(mgl32.Vec3{}); return &t },
		Fields: []string{"position", "rotation", "scale"},
	})
	r.mustRegister(ComponentInfo{
		Name:   "Camera",
		New:    func() any { c := DefaultConfig().CameraComponent(); return &c },
		Fields: []string{"position", "yaw", "pitch", "fov_y", "near", "far", "orthographic", "ortho_height"},
	})
	r.mustRegister(ComponentInfo{
		Name:   "Name",
		New:    func() any { return &NameComponent{Name: "Entity"} },
		Fields: []string{"name"},
	})
	if mod.Setup != nil {
		mod.Setup(r)
	}
	cmd.AddResources(r)
}
