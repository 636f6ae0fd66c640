package geom

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Vectors shorter than this cannot be normalized.
const MinLength = 1e-6

var (
	ErrZeroLength = errors.New("vector has zero length")
	ErrParallel   = errors.New("basis vectors are parallel")
	ErrNonFinite  = errors.New("vector has a NaN or infinite component")
)

func Vec(x, y, z float32) mgl32.Vec3 {
	return mgl32.Vec3{x, y, z}
}

// FormatScalar renders a scalar as the shortest decimal that parses back to
// the same float32.
func FormatScalar(value float32) string {
	return strconv.FormatFloat(float64(value), 'g', -1, 32)
}

// FormatVec3 renders the three components separated by single spaces.
func FormatVec3(v mgl32.Vec3) string {
	return FormatScalar(v.X()) + " " + FormatScalar(v.Y()) + " " + FormatScalar(v.Z())
}

// IsFinite reports whether no value is NaN or infinite.
func IsFinite(values ...float32) bool {
	for _, value := range values {
		if math.IsNaN(float64(value)) || math.IsInf(float64(value), 0) {
			return false
		}
	}
	return true
}

func IsFiniteVec(vectors ...mgl32.Vec3) bool {
	for _, v := range vectors {
		if !IsFinite(v[:]...) {
			return false
		}
	}
	return true
}

// IsZero also holds for vectors with a NaN length.
func IsZero(v mgl32.Vec3) bool {
	return !(v.Len() >= MinLength)
}

func Normalize(v mgl32.Vec3) (mgl32.Vec3, error) {
	if !IsFiniteVec(v) {
		return mgl32.Vec3{}, ErrNonFinite
	}
	if IsZero(v) {
		return mgl32.Vec3{}, ErrZeroLength
	}
	return v.Normalize(), nil
}

// Basis normalizes u and v and returns them with t = u x v. The result is
// right-handed but u and v are not forced to be orthogonal.
func Basis(u, v mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3, error) {
	nu, err := Normalize(u)
	if err != nil {
		return nu, v, mgl32.Vec3{}, errors.Wrap(err, "u")
	}

	nv, err := Normalize(v)
	if err != nil {
		return nu, nv, mgl32.Vec3{}, errors.Wrap(err, "v")
	}

	t := nu.Cross(nv)
	if IsZero(t) {
		return nu, nv, t, ErrParallel
	}

	return nu, nv, t, nil
}
