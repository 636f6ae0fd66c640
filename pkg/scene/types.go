package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type PrimitiveType string

const (
	PrimitiveTypePlane    PrimitiveType = "plane"
	PrimitiveTypeCylinder PrimitiveType = "cylinder"
	PrimitiveTypePolygon  PrimitiveType = "polygon"
	PrimitiveTypePrism    PrimitiveType = "prism"
	PrimitiveTypeBox      PrimitiveType = "box"
)

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Vector is written as a three element sequence, e.g. [0, 1, 0].
type Vector mgl32.Vec3

func (v *Vector) UnmarshalYAML(node *yaml.Node) error {
	var values []float32
	if err := node.Decode(&values); err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(values))
	}
	copy(v[:], values)
	return nil
}

func (v Vector) MarshalYAML() (interface{}, error) {
	return []float32{v[0], v[1], v[2]}, nil
}

func (v Vector) Vec3() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

type Step struct {
	Duration Vector `yaml:"duration"`
	From     Vector `yaml:"from"`
	To       Vector `yaml:"to"`
}

type Animation struct {
	Name  string `yaml:"name"`
	Loop  bool   `yaml:"loop"`
	Steps []Step `yaml:"steps"`
}

type Model struct {
	Location Vector `yaml:"location"`
	Scale    Vector `yaml:"scale"`
	Object   string `yaml:"object"`
	Texture  string `yaml:"texture"`
	Normals  string `yaml:"normals"`
}

type Primitive struct {
	Name string        `yaml:"name"`
	Type PrimitiveType `yaml:"type"`
	// Unset values default to 0, or to the configured box settings for
	// boxes.
	Epsilon  *float32 `yaml:"epsilon"`
	Friction *float32 `yaml:"friction"`

	Center Vector  `yaml:"center"`
	U      Vector  `yaml:"u"`
	V      Vector  `yaml:"v"`
	ULen   float32 `yaml:"ulen"`
	VLen   float32 `yaml:"vlen"`
	TLen   float32 `yaml:"tlen"`

	Points []Vector `yaml:"points"`

	Hidden     bool        `yaml:"hidden"`
	Model      *Model      `yaml:"model"`
	Animations []Animation `yaml:"animations"`
}

type Light struct {
	Type      LightType `yaml:"type"`
	Shadows   bool      `yaml:"shadows"`
	Position  Vector    `yaml:"position"`
	Direction Vector    `yaml:"direction"`
	Color     Vector    `yaml:"color"`
	FOV       float32   `yaml:"fov"`
	Aspect    float32   `yaml:"aspect"`
}

// Document describes a whole level.
type Document struct {
	Primitives []Primitive `yaml:"primitives"`
	Lights     []Light     `yaml:"lights"`
}
