package level

import (
	"iter"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/prismengine/geomod/pkg/geom"
)

// Engine limits on light records, extra lights are dropped by the reader.
const (
	MaxDirectionalLights = 20
	MaxPointLights       = 8
)

type LightType byte

const (
	LightTypeDirectional LightType = iota
	LightTypePoint
)

// Light is a light source. Direction, FOV and Aspect are only written for
// directional lights.
type Light struct {
	Type      LightType
	Shadows   bool
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Direction mgl32.Vec3
	FOV       float32
	Aspect    float32
}

func (l Light) Kind() Kind {
	switch {
	case l.Type == LightTypeDirectional && l.Shadows:
		return "DLES"
	case l.Type == LightTypeDirectional:
		return "DLEN"
	case l.Shadows:
		return "PLES"
	default:
		return "PLEN"
	}
}

// Store holds the primitives of a level keyed by name. Entries are written
// in the order their names were first inserted. A Store is not safe for
// concurrent use.
type Store struct {
	names   []string
	entries map[string]Descriptor
	lights  []Light
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]Descriptor),
	}
}

// isNilDescriptor reports whether d is nil or a typed nil pointer.
func isNilDescriptor(d Descriptor) bool {
	switch d := d.(type) {
	case *PlaneUV:
		return d == nil
	case *CylinderUV:
		return d == nil
	case *PlaneNP:
		return d == nil
	case *CylinderNP:
		return d == nil
	}
	return d == nil
}

// Insert stores d under name. Inserting an existing name replaces its
// descriptor but keeps its original position. Names end a record line, so
// they may not contain whitespace.
func (s *Store) Insert(name string, d Descriptor) error {
	if name == "" {
		return configError("<unnamed>", ErrConfiguration, "primitive name must not be empty")
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return configError(strconv.Quote(name), ErrConfiguration, "primitive name must not contain whitespace")
	}
	if d == nil {
		return configError(name, ErrConfiguration, "descriptor must not be nil")
	}

	if _, ok := s.entries[name]; !ok {
		s.names = append(s.names, name)
	}
	s.entries[name] = d
	return nil
}

func (s *Store) Get(name string) (Descriptor, bool) {
	d, ok := s.entries[name]
	return d, ok
}

func (s *Store) Len() int {
	return len(s.names)
}

func (s *Store) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// All yields every entry in insertion order.
func (s *Store) All() iter.Seq2[string, Descriptor] {
	return func(yield func(string, Descriptor) bool) {
		for _, name := range s.names {
			if !yield(name, s.entries[name]) {
				return
			}
		}
	}
}

func (s *Store) countLights(type_ LightType) int {
	count := 0
	for _, light := range s.lights {
		if light.Type == type_ {
			count++
		}
	}
	return count
}

func (s *Store) AddLight(light Light) error {
	switch light.Type {
	case LightTypeDirectional:
		if s.countLights(light.Type) >= MaxDirectionalLights {
			return configError("light", ErrConfiguration, "too many directional lights (max %d)", MaxDirectionalLights)
		}
		if !geom.IsFinite(light.FOV, light.Aspect) || light.FOV <= 0 || light.Aspect <= 0 {
			return configError("light", ErrConfiguration, "directional light needs a positive fov and aspect")
		}
	case LightTypePoint:
		if s.countLights(light.Type) >= MaxPointLights {
			return configError("light", ErrConfiguration, "too many point lights (max %d)", MaxPointLights)
		}
	default:
		return configError("light", ErrConfiguration, "unknown light type %d", light.Type)
	}
	if !geom.IsFiniteVec(light.Position, light.Color, light.Direction) {
		return configError("light", geom.ErrNonFinite, "invalid vector")
	}

	s.lights = append(s.lights, light)
	return nil
}

func (s *Store) Lights() []Light {
	lights := make([]Light, len(s.lights))
	copy(lights, s.lights)
	return lights
}
