package level

import (
	"bufio"
	"bytes"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"

	"github.com/prismengine/geomod/pkg/geom"
)

const (
	separator     = "  "
	commentPrefix = "//"
	hideToken     = "HIDE"
	modelToken    = "MDLO"
	animToken     = "LANI"
	loopToken     = "LOOP"
	onceToken     = "ONCE"
)

type EncodeOptions struct {
	// Header lines are written first as '#' comments, which the engine
	// skips.
	Header []string
}

type record []string

func (r *record) put(tokens ...string) {
	*r = append(*r, tokens...)
}

func (r *record) putScalar(values ...float32) {
	for _, value := range values {
		r.put(geom.FormatScalar(value))
	}
}

func (r *record) putVec(vectors ...mgl32.Vec3) {
	for _, v := range vectors {
		r.put(geom.FormatVec3(v))
	}
}

func (r *record) line() string {
	return strings.Join(*r, separator) + "\n"
}

// EncodeAnimations yields one LANI line per track.
func EncodeAnimations(animations *Animations) iter.Seq[string] {
	return func(yield func(string) bool) {
		if animations == nil {
			return
		}

		for name, track := range animations.All() {
			r := record{animToken, strconv.Itoa(len(track.Steps))}
			for _, step := range track.Steps {
				r.putVec(step.Duration, step.InitLoc, step.FinalLoc)
			}

			if track.Loop {
				r.put(loopToken)
			} else {
				r.put(onceToken)
			}
			r.put(name)

			if !yield(r.line()) {
				return
			}
		}
	}
}

func putPoints(r *record, points []mgl32.Vec3) {
	r.put(strconv.Itoa(len(points)))
	r.putVec(points...)
}

// EncodeDescriptor renders the primitive line for a single entry.
func EncodeDescriptor(name string, d Descriptor) (string, error) {
	r := record{}

	switch d := d.(type) {
	case *PlaneUV:
		if d == nil {
			break
		}
		r.put(d.Kind().String())
		r.putScalar(d.Epsilon, d.Friction)
		r.putVec(d.Center, d.U, d.V)
		r.putScalar(d.ULen, d.VLen)
	case *CylinderUV:
		if d == nil {
			break
		}
		r.put(d.Kind().String())
		r.putScalar(d.Epsilon, d.Friction)
		r.putVec(d.Center, d.U, d.V)
		r.putScalar(d.ULen, d.VLen, d.TLen)
	case *PlaneNP:
		if d == nil {
			break
		}
		r.put(d.Kind().String())
		r.putScalar(d.Epsilon, d.Friction)
		putPoints(&r, d.Points)
	case *CylinderNP:
		if d == nil {
			break
		}
		r.put(d.Kind().String())
		r.putScalar(d.Epsilon, d.Friction)
		putPoints(&r, d.Points)
		r.putScalar(d.TLen)
	}

	if len(r) == 0 {
		return "", &UnknownVariantError{Name: name, Descriptor: d}
	}

	r.put(commentPrefix + name)
	return r.line(), nil
}

func encodeModel(model Model) string {
	r := record{modelToken}
	r.putVec(model.Location, model.Scale)
	r.put(model.ObjPath, model.TexturePath, model.NormalPath)
	return r.line()
}

func encodeLight(light Light) string {
	r := record{light.Kind().String()}
	if light.Type == LightTypeDirectional {
		r.putVec(light.Position, light.Direction, light.Color)
		r.putScalar(light.FOV, light.Aspect)
	} else {
		r.putVec(light.Position, light.Color)
	}
	return r.line()
}

// Lines yields every line of the level file in order. Iteration stops at
// the first entry that cannot be encoded and yields its error.
func (s *Store) Lines(options EncodeOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, header := range options.Header {
			for _, line := range strings.Split(header, "\n") {
				if !yield("# "+line+"\n", nil) {
					return
				}
			}
		}

		for name, d := range s.All() {
			line, err := EncodeDescriptor(name, d)
			if err != nil {
				yield("", err)
				return
			}
			if !yield(line, nil) {
				return
			}

			props := d.Props()
			if opt.IsSome(props.Animations) {
				for line := range EncodeAnimations(props.Animations.Value) {
					if !yield(line, nil) {
						return
					}
				}
			}

			if props.Hidden {
				if !yield(hideToken+"\n", nil) {
					return
				}
			}

			if opt.IsSome(props.Model) {
				if !yield(encodeModel(props.Model.Value), nil) {
					return
				}
			}

			log.Debug().
				Str("name", name).
				Str("kind", d.Kind().String()).
				Msg("encoded primitive")
		}

		for _, light := range s.lights {
			if !yield(encodeLight(light), nil) {
				return
			}
		}
	}
}

// EncodeWith writes the level to w. The output is flushed even when encoding
// fails partway; bytes already written are not rolled back.
func (s *Store) EncodeWith(w io.Writer, options EncodeOptions) (err error) {
	out := bufio.NewWriter(w)
	defer func() {
		flushErr := out.Flush()
		if flushErr != nil && err == nil {
			err = &IOError{Err: errors.WithStack(flushErr)}
		}
	}()

	for line, lineErr := range s.Lines(options) {
		if lineErr != nil {
			return lineErr
		}

		_, writeErr := out.WriteString(line)
		if writeErr != nil {
			return &IOError{Err: errors.WithStack(writeErr)}
		}
	}

	return nil
}

func (s *Store) Encode(w io.Writer) error {
	return s.EncodeWith(w, EncodeOptions{})
}

func (s *Store) Bytes(options EncodeOptions) ([]byte, error) {
	var buffer bytes.Buffer
	err := s.EncodeWith(&buffer, options)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeDigest writes the level to w and returns the xxhash of the bytes
// written.
func (s *Store) EncodeDigest(w io.Writer, options EncodeOptions) (uint64, error) {
	hash := xxhash.New()
	err := s.EncodeWith(io.MultiWriter(w, hash), options)
	if err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}

// Digest hashes the encoded level, two unmodified stores with the same
// contents always have the same digest.
func (s *Store) Digest(options EncodeOptions) (uint64, error) {
	return s.EncodeDigest(io.Discard, options)
}

// ToFile writes the level to path and returns its digest.
func (s *Store) ToFile(path string, options EncodeOptions) (digest uint64, err error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, &IOError{Err: errors.Wrapf(err, "could not create %s", path)}
	}
	defer func() {
		closeErr := out.Close()
		if closeErr != nil && err == nil {
			err = &IOError{Err: errors.Wrapf(closeErr, "could not close %s", path)}
		}
	}()

	digest, err = s.EncodeDigest(out, options)
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("path", path).
		Int("primitives", s.Len()).
		Int("lights", len(s.lights)).
		Msg("wrote level")
	return digest, nil
}
