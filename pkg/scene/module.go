package scene

import (
	"bytes"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	fp "github.com/repeale/fp-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/prismengine/geomod/pkg/level"
)

// Decode parses a scene document. Unknown keys are rejected.
func Decode(data []byte) (*Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	document := Document{}
	err := decoder.Decode(&document)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse scene")
	}

	return &document, nil
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	document, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return document, nil
}

var toVec3 = fp.Map(func(v Vector) mgl32.Vec3 { return v.Vec3() })

func valueOr(value *float32, fallback float32) float32 {
	if value == nil {
		return fallback
	}
	return *value
}

func addPrimitive(b *level.Builder, p *Primitive) error {
	epsilon, friction := valueOr(p.Epsilon, 0), valueOr(p.Friction, 0)

	switch p.Type {
	case PrimitiveTypePlane:
		return b.AddPlane(p.Name, epsilon, friction, p.Center.Vec3(), p.U.Vec3(), p.V.Vec3(), p.ULen, p.VLen)
	case PrimitiveTypeCylinder:
		return b.AddCylinder(p.Name, epsilon, friction, p.Center.Vec3(), p.U.Vec3(), p.V.Vec3(), p.ULen, p.VLen, p.TLen)
	case PrimitiveTypePolygon:
		return b.AddPolygon(p.Name, epsilon, friction, toVec3(p.Points))
	case PrimitiveTypePrism:
		return b.AddPrism(p.Name, epsilon, friction, toVec3(p.Points), p.TLen)
	case PrimitiveTypeBox:
		// Per-box values override the configured box settings.
		box := *b
		box.Box.Epsilon = valueOr(p.Epsilon, b.Box.Epsilon)
		box.Box.Friction = valueOr(p.Friction, b.Box.Friction)
		return box.MakeBox(p.Name, p.Center.Vec3(), p.U.Vec3(), p.V.Vec3(), p.ULen, p.VLen, p.TLen)
	}

	return errors.Errorf("unknown primitive type %q", p.Type)
}

// targets lists the store entries a primitive produced.
func targets(p *Primitive) []string {
	if p.Type != PrimitiveTypeBox {
		return []string{p.Name}
	}

	names := make([]string, 6)
	for i := range names {
		names[i] = level.BoxFace(p.Name, i)
	}
	return names
}

func decorate(b *level.Builder, p *Primitive, name string) error {
	for _, animation := range p.Animations {
		track := level.AnimationTrack{
			Loop:  animation.Loop,
			Steps: make([]level.AnimationStep, 0, len(animation.Steps)),
		}
		for _, step := range animation.Steps {
			track.Steps = append(track.Steps, level.AnimationStep{
				Duration: step.Duration.Vec3(),
				InitLoc:  step.From.Vec3(),
				FinalLoc: step.To.Vec3(),
			})
		}

		err := b.Animate(name, animation.Name, track)
		if err != nil {
			return err
		}
	}

	if p.Hidden {
		err := b.Hide(name)
		if err != nil {
			return err
		}
	}

	if p.Model != nil {
		err := b.AttachModel(name, level.Model{
			Location:    p.Model.Location.Vec3(),
			Scale:       p.Model.Scale.Vec3(),
			ObjPath:     p.Model.Object,
			TexturePath: p.Model.Texture,
			NormalPath:  p.Model.Normals,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func toLight(l *Light) (level.Light, error) {
	light := level.Light{
		Shadows:   l.Shadows,
		Position:  l.Position.Vec3(),
		Direction: l.Direction.Vec3(),
		Color:     l.Color.Vec3(),
		FOV:       l.FOV,
		Aspect:    l.Aspect,
	}

	switch l.Type {
	case LightTypeDirectional:
		light.Type = level.LightTypeDirectional
	case LightTypePoint:
		light.Type = level.LightTypePoint
	default:
		return light, errors.Errorf("unknown light type %q", l.Type)
	}

	return light, nil
}

// Apply feeds every primitive and light of the document to the builder.
// Box animations and flags are applied to each of the six faces.
func Apply(b *level.Builder, document *Document) error {
	for i := range document.Primitives {
		p := &document.Primitives[i]

		err := addPrimitive(b, p)
		if err != nil {
			return errors.Wrapf(err, "primitive %d (%s)", i, p.Name)
		}

		for _, name := range targets(p) {
			err = decorate(b, p, name)
			if err != nil {
				return errors.Wrapf(err, "primitive %d (%s)", i, p.Name)
			}
		}

		log.Debug().
			Str("name", p.Name).
			Str("type", string(p.Type)).
			Msg("added primitive")
	}

	for i := range document.Lights {
		light, err := toLight(&document.Lights[i])
		if err == nil {
			err = b.Store.AddLight(light)
		}
		if err != nil {
			return errors.Wrapf(err, "light %d", i)
		}
	}

	return nil
}

func Build(document *Document, box level.BoxSettings) (*level.Store, error) {
	store := level.NewStore()
	err := Apply(level.NewBuilder(store, box), document)
	if err != nil {
		return nil, err
	}
	return store, nil
}
