package scene

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismengine/geomod/pkg/level"
)

const courtyard = "PUVL  0.01  0.8  0 0 0  1 0 0  0 0 1  10  10  //floor\n" +
	"PNSP  0.02  0.5  4  -1 0 5  1 0 5  1 3 5  -1 3 5  //gate\n" +
	"LANI  1  1 0 0  0 0 0  1 0 0  ONCE  open\n" +
	"CNPH  0.01  0.9  3  4 0 4  5 0 4  5 0 5  4  //pillar\n" +
	"MDLO  4.5 0 4.5  1 1 1  models/pillar.obj  textures/stone.png  textures/flat_nmap.png\n" +
	"PUVL  0.01  0.8  -2.5 0.5 -3  0 0 1  0 1 0  1  1  //crate_0\n" +
	"HIDE\n" +
	"PUVL  0.01  0.8  -3.5 0.5 -3  0 1 0  0 0 1  1  1  //crate_1\n" +
	"HIDE\n" +
	"PUVL  0.01  0.8  -3 1 -3  1 0 0  0 0 1  1  1  //crate_2\n" +
	"HIDE\n" +
	"PUVL  0.01  0.8  -3 0 -3  0 0 1  1 0 0  1  1  //crate_3\n" +
	"HIDE\n" +
	"PUVL  0.01  0.8  -3 0.5 -2.5  0 1 0  1 0 0  1  1  //crate_4\n" +
	"HIDE\n" +
	"PUVL  0.01  0.8  -3 0.5 -3.5  1 0 0  0 1 0  1  1  //crate_5\n" +
	"HIDE\n" +
	"DLES  0 20 0  0 -1 0  1 1 0.9  90  1\n" +
	"PLEN  0 2 5  1 0.5 0\n"

func TestLoadCourtyard(t *testing.T) {
	document, err := Load("testdata/courtyard.yaml")
	require.NoError(t, err)
	require.Len(t, document.Primitives, 4)
	require.Len(t, document.Lights, 2)

	store, err := Build(document, level.DefaultBoxSettings)
	require.NoError(t, err)
	assert.Equal(t, 9, store.Len())

	var buffer bytes.Buffer
	require.NoError(t, store.Encode(&buffer))
	assert.Equal(t, courtyard, buffer.String())
}

func TestBoxAnimationsApplyToEveryFace(t *testing.T) {
	document, err := Decode([]byte(`
primitives:
  - name: lift
    type: box
    center: [0, 0, 0]
    u: [1, 0, 0]
    v: [0, 1, 0]
    ulen: 2
    vlen: 0.5
    tlen: 2
    animations:
      - name: up
        loop: true
        steps:
          - duration: [2, 0, 0]
            from: [0, 0, 0]
            to: [0, 4, 0]
`))
	require.NoError(t, err)

	store, err := Build(document, level.BoxSettings{Epsilon: 0.1, Friction: 1})
	require.NoError(t, err)

	for name, d := range store.All() {
		animations := d.Props().Animations.Value
		require.NotNil(t, animations, name)
		track, ok := animations.Get("up")
		require.True(t, ok, name)
		assert.True(t, track.Loop)
		assert.Equal(t, float32(0.1), d.Props().Epsilon)
	}
}

func TestBoxOverridesSettings(t *testing.T) {
	document, err := Decode([]byte(`
primitives:
  - name: crate
    type: box
    epsilon: 0.5
    friction: 0.1
    center: [0, 0, 0]
    u: [1, 0, 0]
    v: [0, 1, 0]
    ulen: 1
    vlen: 1
    tlen: 1
  - name: slab
    type: box
    friction: 0
    center: [0, 5, 0]
    u: [1, 0, 0]
    v: [0, 1, 0]
    ulen: 1
    vlen: 1
    tlen: 1
`))
	require.NoError(t, err)

	box := level.BoxSettings{Epsilon: 0.01, Friction: 0.8}
	store, err := Build(document, box)
	require.NoError(t, err)
	require.Equal(t, 12, store.Len())

	for i := 0; i < 6; i++ {
		d, ok := store.Get(level.BoxFace("crate", i))
		require.True(t, ok)
		assert.Equal(t, float32(0.5), d.Props().Epsilon)
		assert.Equal(t, float32(0.1), d.Props().Friction)

		d, ok = store.Get(level.BoxFace("slab", i))
		require.True(t, ok)
		assert.Equal(t, float32(0.01), d.Props().Epsilon)
		assert.Equal(t, float32(0), d.Props().Friction)
	}

	// Overrides are validated like the configured settings.
	document, err = Decode([]byte(`
primitives:
  - name: crate
    type: box
    epsilon: -1
    center: [0, 0, 0]
    u: [1, 0, 0]
    v: [0, 1, 0]
    ulen: 1
    vlen: 1
    tlen: 1
`))
	require.NoError(t, err)
	_, err = Build(document, box)
	assert.ErrorIs(t, err, level.ErrConfiguration)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte(`
primitives:
  - name: floor
    type: plane
    colour: red
`))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Decode([]byte(`
primitives:
  - name: floor
    type: plane
    center: [0, 0]
`))
	assert.Error(t, err, "vectors need three components")

	_, err = Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestBuildInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown type": `
primitives:
  - name: blob
    type: sphere
`,
		"degenerate box": `
primitives:
  - name: crate
    type: box
    u: [0, 0, 0]
    v: [0, 1, 0]
`,
		"too few points": `
primitives:
  - name: line
    type: polygon
    points: [[0, 0, 0], [1, 0, 0]]
`,
		"unknown light": `
lights:
  - type: ambient
`,
		"name with whitespace": `
primitives:
  - name: "floor\nHIDE"
    type: plane
`,
		"bad model path": `
primitives:
  - name: floor
    type: plane
    model:
      object: ""
      texture: a.png
      normals: b.png
`,
	}

	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			document, err := Decode([]byte(source))
			require.NoError(t, err)

			_, err = Build(document, level.DefaultBoxSettings)
			assert.Error(t, err)
		})
	}
}

func TestBuildConfigurationErrors(t *testing.T) {
	document, err := Decode([]byte(`
primitives:
  - name: crate
    type: box
    u: [1, 0, 0]
    v: [2, 0, 0]
    ulen: 1
    vlen: 1
    tlen: 1
`))
	require.NoError(t, err)

	_, err = Build(document, level.DefaultBoxSettings)
	assert.ErrorIs(t, err, level.ErrConfiguration)
}

func TestVectorMarshal(t *testing.T) {
	value, err := Vector{1, 2, 3}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, value)
}
