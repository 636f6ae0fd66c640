package level

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	opt "github.com/repeale/fp-go/option"
)

// Kind is the record token the engine uses to recognise a primitive.
type Kind string

const (
	KindPlaneUV    Kind = "PUVL"
	KindCylinderUV Kind = "CUVL"
	KindPlaneNP    Kind = "PNSP"
	KindCylinderNP Kind = "CNPH"
)

func (k Kind) String() string {
	return string(k)
}

type AnimationStep struct {
	Duration mgl32.Vec3
	InitLoc  mgl32.Vec3
	FinalLoc mgl32.Vec3
}

type AnimationTrack struct {
	Steps []AnimationStep
	// Loop selects cyclic playback, otherwise the track plays once.
	Loop bool
}

// Animations maps track names to tracks, remembering the order in which
// names were first set.
type Animations struct {
	names  []string
	tracks map[string]AnimationTrack
}

func NewAnimations() *Animations {
	return &Animations{
		tracks: make(map[string]AnimationTrack),
	}
}

func (a *Animations) Set(name string, track AnimationTrack) {
	if _, ok := a.tracks[name]; !ok {
		a.names = append(a.names, name)
	}
	a.tracks[name] = track
}

func (a *Animations) Get(name string) (AnimationTrack, bool) {
	track, ok := a.tracks[name]
	return track, ok
}

func (a *Animations) Len() int {
	return len(a.names)
}

func (a *Animations) All() iter.Seq2[string, AnimationTrack] {
	return func(yield func(string, AnimationTrack) bool) {
		for _, name := range a.names {
			if !yield(name, a.tracks[name]) {
				return
			}
		}
	}
}

// Model is a mesh the engine binds to the preceding primitive.
type Model struct {
	Location    mgl32.Vec3
	Scale       mgl32.Vec3
	ObjPath     string
	TexturePath string
	NormalPath  string
}

// Properties are shared by every primitive.
type Properties struct {
	// Collision tolerance.
	Epsilon    float32
	Friction   float32
	Animations opt.Option[*Animations]
	Hidden     bool
	Model      opt.Option[Model]
}

func NewProperties(epsilon, friction float32) Properties {
	return Properties{
		Epsilon:    epsilon,
		Friction:   friction,
		Animations: opt.None[*Animations](),
		Model:      opt.None[Model](),
	}
}

func (p *Properties) Props() *Properties {
	return p
}

// Descriptor is one of *PlaneUV, *CylinderUV, *PlaneNP or *CylinderNP.
type Descriptor interface {
	Kind() Kind
	Props() *Properties
	descriptor()
}

// PlaneUV is a rectangle spanned by U and V around Center.
type PlaneUV struct {
	Properties
	Center mgl32.Vec3
	U      mgl32.Vec3
	V      mgl32.Vec3
	ULen   float32
	VLen   float32
}

func (p *PlaneUV) Kind() Kind {
	return KindPlaneUV
}

func (p *PlaneUV) descriptor() {}

// CylinderUV extrudes a PlaneUV by TLen.
type CylinderUV struct {
	Properties
	Center mgl32.Vec3
	U      mgl32.Vec3
	V      mgl32.Vec3
	ULen   float32
	VLen   float32
	TLen   float32
}

func (c *CylinderUV) Kind() Kind {
	return KindCylinderUV
}

func (c *CylinderUV) descriptor() {}

// PlaneNP is a polygon given by its boundary points.
type PlaneNP struct {
	Properties
	Points []mgl32.Vec3
}

func (p *PlaneNP) Kind() Kind {
	return KindPlaneNP
}

func (p *PlaneNP) descriptor() {}

// CylinderNP extrudes a polygon by TLen.
type CylinderNP struct {
	Properties
	Points []mgl32.Vec3
	TLen   float32
}

func (c *CylinderNP) Kind() Kind {
	return KindCylinderNP
}

func (c *CylinderNP) descriptor() {}

var _ Descriptor = (*PlaneUV)(nil)
var _ Descriptor = (*CylinderUV)(nil)
var _ Descriptor = (*PlaneNP)(nil)
var _ Descriptor = (*CylinderNP)(nil)
