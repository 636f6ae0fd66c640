package level

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	opt "github.com/repeale/fp-go/option"

	"github.com/prismengine/geomod/pkg/geom"
)

// BoxSettings are applied to every face generated by MakeBox.
type BoxSettings struct {
	Epsilon  float32
	Friction float32
}

var DefaultBoxSettings = BoxSettings{
	Epsilon:  0.01,
	Friction: 0.8,
}

// Builder constructs descriptors and inserts them into a Store.
type Builder struct {
	Store *Store
	Box   BoxSettings
}

func NewBuilder(store *Store, box BoxSettings) *Builder {
	return &Builder{
		Store: store,
		Box:   box,
	}
}

func checkProperties(name string, epsilon, friction float32) error {
	if !geom.IsFinite(epsilon) || epsilon < 0 {
		return configError(name, ErrConfiguration, "epsilon must be finite and not negative (%v)", epsilon)
	}
	if !geom.IsFinite(friction) || friction < 0 {
		return configError(name, ErrConfiguration, "friction must be finite and not negative (%v)", friction)
	}
	return nil
}

func checkExtents(name string, extents ...float32) error {
	for _, extent := range extents {
		if !geom.IsFinite(extent) || extent < 0 {
			return configError(name, ErrConfiguration, "extent must be finite and not negative (%v)", extent)
		}
	}
	return nil
}

func checkVectors(name string, vectors ...mgl32.Vec3) error {
	if !geom.IsFiniteVec(vectors...) {
		return configError(name, geom.ErrNonFinite, "invalid vector")
	}
	return nil
}

func checkPoints(name string, points []mgl32.Vec3) error {
	if len(points) < 3 {
		return configError(name, ErrConfiguration, "need at least 3 points, got %d", len(points))
	}
	return checkVectors(name, points...)
}

// AddPlane stores a PlaneUV. The basis is stored as given.
func (b *Builder) AddPlane(name string, epsilon, friction float32, center, u, v mgl32.Vec3, ulen, vlen float32) error {
	if err := checkProperties(name, epsilon, friction); err != nil {
		return err
	}
	if err := checkExtents(name, ulen, vlen); err != nil {
		return err
	}
	if err := checkVectors(name, center, u, v); err != nil {
		return err
	}

	return b.Store.Insert(name, &PlaneUV{
		Properties: NewProperties(epsilon, friction),
		Center:     center,
		U:          u,
		V:          v,
		ULen:       ulen,
		VLen:       vlen,
	})
}

func (b *Builder) AddCylinder(name string, epsilon, friction float32, center, u, v mgl32.Vec3, ulen, vlen, tlen float32) error {
	if err := checkProperties(name, epsilon, friction); err != nil {
		return err
	}
	if err := checkExtents(name, ulen, vlen, tlen); err != nil {
		return err
	}
	if err := checkVectors(name, center, u, v); err != nil {
		return err
	}

	return b.Store.Insert(name, &CylinderUV{
		Properties: NewProperties(epsilon, friction),
		Center:     center,
		U:          u,
		V:          v,
		ULen:       ulen,
		VLen:       vlen,
		TLen:       tlen,
	})
}

func (b *Builder) AddPolygon(name string, epsilon, friction float32, points []mgl32.Vec3) error {
	if err := checkProperties(name, epsilon, friction); err != nil {
		return err
	}
	if err := checkPoints(name, points); err != nil {
		return err
	}

	return b.Store.Insert(name, &PlaneNP{
		Properties: NewProperties(epsilon, friction),
		Points:     append([]mgl32.Vec3(nil), points...),
	})
}

// AddPrism stores a CylinderNP. The engine derives the extrusion direction
// from the first three points.
func (b *Builder) AddPrism(name string, epsilon, friction float32, points []mgl32.Vec3, tlen float32) error {
	if err := checkProperties(name, epsilon, friction); err != nil {
		return err
	}
	if err := checkPoints(name, points); err != nil {
		return err
	}
	if err := checkExtents(name, tlen); err != nil {
		return err
	}

	return b.Store.Insert(name, &CylinderNP{
		Properties: NewProperties(epsilon, friction),
		Points:     append([]mgl32.Vec3(nil), points...),
		TLen:       tlen,
	})
}

// BoxFace is the name of face i of the box called name.
func BoxFace(name string, i int) string {
	return fmt.Sprintf("%s_%d", name, i)
}

// MakeBox stores the six faces of a closed box as planes name_0 to name_5.
// Faces come in opposing pairs along u, v and t = u x v, and each face swaps
// the in-plane basis of its opposite so both wind outwards.
func (b *Builder) MakeBox(name string, center, u, v mgl32.Vec3, ulen, vlen, tlen float32) error {
	if name == "" {
		return configError("<unnamed>", ErrConfiguration, "box name must not be empty")
	}
	if err := checkProperties(name, b.Box.Epsilon, b.Box.Friction); err != nil {
		return err
	}
	if err := checkExtents(name, ulen, vlen, tlen); err != nil {
		return err
	}
	if err := checkVectors(name, center); err != nil {
		return err
	}

	u, v, t, err := geom.Basis(u, v)
	if err != nil {
		return configError(name, err, "invalid box basis")
	}

	faces := []struct {
		offset     mgl32.Vec3
		u, v       mgl32.Vec3
		ulen, vlen float32
	}{
		{u.Mul(ulen / 2), t, v, tlen, vlen},
		{u.Mul(-ulen / 2), v, t, vlen, tlen},
		{v.Mul(vlen / 2), u, t, ulen, tlen},
		{v.Mul(-vlen / 2), t, u, tlen, ulen},
		{t.Mul(tlen / 2), v, u, vlen, ulen},
		{t.Mul(-tlen / 2), u, v, ulen, vlen},
	}

	for i, face := range faces {
		err := b.AddPlane(
			BoxFace(name, i),
			b.Box.Epsilon,
			b.Box.Friction,
			center.Add(face.offset),
			face.u,
			face.v,
			face.ulen,
			face.vlen,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// properties looks up the properties of an existing primitive.
func (b *Builder) properties(name string) (*Properties, error) {
	d, ok := b.Store.Get(name)
	if !ok {
		return nil, configError(name, ErrConfiguration, "no such primitive")
	}
	if isNilDescriptor(d) {
		return nil, configError(name, ErrConfiguration, "primitive has no descriptor")
	}
	return d.Props(), nil
}

// Animate attaches a track to an existing primitive. Setting a track name
// twice replaces the earlier track.
func (b *Builder) Animate(name, trackName string, track AnimationTrack) error {
	props, err := b.properties(name)
	if err != nil {
		return err
	}
	if trackName == "" || strings.ContainsAny(trackName, " \t\r\n") {
		return configError(name, ErrConfiguration, "invalid animation name %q", trackName)
	}
	if len(track.Steps) == 0 {
		return configError(name, ErrConfiguration, "animation %s has no steps", trackName)
	}
	for _, step := range track.Steps {
		if err := checkVectors(name, step.Duration, step.InitLoc, step.FinalLoc); err != nil {
			return err
		}
	}

	if opt.IsNone(props.Animations) {
		props.Animations = opt.Some(NewAnimations())
	}

	track.Steps = append([]AnimationStep(nil), track.Steps...)
	props.Animations.Value.Set(trackName, track)
	return nil
}

// Hide marks a primitive as collidable but not drawn.
func (b *Builder) Hide(name string) error {
	props, err := b.properties(name)
	if err != nil {
		return err
	}

	props.Hidden = true
	return nil
}

func (b *Builder) AttachModel(name string, model Model) error {
	props, err := b.properties(name)
	if err != nil {
		return err
	}
	if err := checkVectors(name, model.Location, model.Scale); err != nil {
		return err
	}

	for _, path := range []string{model.ObjPath, model.TexturePath, model.NormalPath} {
		if path == "" || strings.ContainsAny(path, " \t\r\n") {
			return configError(name, ErrConfiguration, "invalid model path %q", path)
		}
	}

	props.Model = opt.Some(model)
	return nil
}
