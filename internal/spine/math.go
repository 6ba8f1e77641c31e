package spine

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Rotate returns a 2x2 rotation matrix for deg degrees.
func Rotate(deg float32) mgl32.Mat2 {
	return mgl32.Rotate2D(mgl32.DegToRad(deg))
}

func Scale(v mgl32.Vec2) mgl32.Mat2 {
	return mgl32.Mat2{v.X(), 0, 0, v.Y()}
}

// LocalMat2 builds a bone's local linear transform, shear included.
func LocalMat2(rotate float32, scale, shear mgl32.Vec2) mgl32.Mat2 {
	rx := mgl32.DegToRad(rotate + shear.X())
	ry := mgl32.DegToRad(rotate + 90 + shear.Y())
	a := float32(math.Cos(float64(rx))) * scale.X()
	c := float32(math.Sin(float64(rx))) * scale.X()
	b := float32(math.Cos(float64(ry))) * scale.Y()
	d := float32(math.Sin(float64(ry))) * scale.Y()
	return mgl32.Mat2{a, c, b, d} // column major
}

// GetRotate extracts the rotation of the x axis of m, in degrees.
func GetRotate(m mgl32.Mat2) float32 {
	return mgl32.RadToDeg(float32(math.Atan2(float64(m[1]), float64(m[0]))))
}

// GetScale returns the length of both axes of m.
func GetScale(m mgl32.Mat2) mgl32.Vec2 {
	return mgl32.Vec2{m.Col(0).Len(), m.Col(1).Len()}
}

func Lerp(a, b, rate float32) float32 {
	return a + (b-a)*rate
}

// LerpRotation interpolates along the shortest arc.
func LerpRotation(a, b, rate float32) float32 {
	return a + WrapDegrees(b-a)*rate
}

// WrapDegrees maps deg into (-180, 180].
func WrapDegrees(deg float32) float32 {
	deg = float32(math.Mod(float64(deg), 360))
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

func Vec2Lerp(a, b mgl32.Vec2, rate float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(rate))
}

func Vec4Lerp(a, b mgl32.Vec4, rate float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(rate))
}

func Vec2Mul(v1, v2 mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{v1.X() * v2.X(), v1.Y() * v2.Y()}
}

func Vec2Div(v1, v2 mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{safeDiv(v1.X(), v2.X()), safeDiv(v1.Y(), v2.Y())}
}

func Vec4Mul(v1, v2 mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{v1.X() * v2.X(), v1.Y() * v2.Y(), v1.Z() * v2.Z(), v1.W() * v2.W()}
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
