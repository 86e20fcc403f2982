package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

func ksin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func ktan(x float32) float32 {
	return float32(m.Tan(float64(x)))
}

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0f.
 */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component unit vector pointing along the z axis.
 */
func NewVec3UnitZ() Vec3 {
	return Vec3{0.0, 0.0, 1.0}
}

/**
 * @brief Returns the 4-component homogeneous form of the vector.
 *
 * @param w The w component. 1 for points, 0 for directions.
 */
func (v Vec3) ToVec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec3) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a normalized copy of the supplied vector.
 * A zero-length vector produces NaN components.
 *
 * @return A normalized copy of the supplied vector
 */
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	return Vec3{
		v.X / length,
		v.Y / length,
		v.Z / length}
}

/**
 * @brief Compares all elements of the vectors and ensures the difference
 * is less than tolerance.
 *
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	return WithinTolerance(v.X, other.X, tolerance) &&
		WithinTolerance(v.Y, other.Y, tolerance) &&
		WithinTolerance(v.Z, other.Z, tolerance)
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

/**
 * @brief Returns the first three components, dropping w.
 */
func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

func (v Vec4) Compare(other Vec4, tolerance float32) bool {
	return v.ToVec3().Compare(other.ToVec3(), tolerance) &&
		WithinTolerance(v.W, other.W, tolerance)
}

// ------------------------------------------
// Matrix 4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Returns the element at the given row and column.
 */
func (mt Mat4) At(row, col int) float32 {
	return mt.Data[col*4+row]
}

/**
 * @brief Sets the element at the given row and column.
 */
func (mt *Mat4) Set(row, col int, value float32) {
	mt.Data[col*4+row] = value
}

/**
 * @brief Returns the product mt * other, so other is applied first when the
 * result transforms a column vector.
 *
 * @param other The right-hand matrix.
 * @return The result of the matrix multiplication.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.At(row, i) * other.At(i, col)
			}
			out_matrix.Set(row, col, sum)
		}
	}

	return out_matrix
}

/**
 * @brief Transforms the column vector v by the matrix.
 */
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	d := &mt.Data
	return Vec4{
		d[0]*v.X + d[4]*v.Y + d[8]*v.Z + d[12]*v.W,
		d[1]*v.X + d[5]*v.Y + d[9]*v.Z + d[13]*v.W,
		d[2]*v.X + d[6]*v.Y + d[10]*v.Z + d[14]*v.W,
		d[3]*v.X + d[7]*v.Y + d[11]*v.Z + d[15]*v.W,
	}
}

/**
 * @brief Compares all elements of both matrices against tolerance.
 */
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if !WithinTolerance(mt.Data[i], other.Data[i], tolerance) {
			return false
		}
	}
	return true
}

// ------------------------------------------
// Quaternion
// ------------------------------------------

/**
 * @brief Creates an identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

/**
 * @brief Returns the normal of the provided quaternion.
 */
func (q Quaternion) Normal() float32 {
	return ksqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

/**
 * @brief Returns a normalized copy of the provided quaternion.
 */
func (q Quaternion) Normalize() Quaternion {
	normal := q.Normal()
	return Quaternion{
		q.X / normal,
		q.Y / normal,
		q.Z / normal,
		q.W / normal}
}

/**
 * @brief Creates a rotation matrix from the given quaternion. The quaternion
 * is normalized first, so any non-zero quaternion gives a pure rotation.
 *
 * @return A rotation matrix.
 */
func (q Quaternion) ToMat4() Mat4 {
	out_matrix := NewMat4Identity()

	// https://en.wikipedia.org/wiki/Quaternions_and_spatial_rotation#Quaternion-derived_rotation_matrix
	n := q.Normalize()

	out_matrix.Set(0, 0, 1.0-2.0*n.Y*n.Y-2.0*n.Z*n.Z)
	out_matrix.Set(0, 1, 2.0*n.X*n.Y-2.0*n.Z*n.W)
	out_matrix.Set(0, 2, 2.0*n.X*n.Z+2.0*n.Y*n.W)

	out_matrix.Set(1, 0, 2.0*n.X*n.Y+2.0*n.Z*n.W)
	out_matrix.Set(1, 1, 1.0-2.0*n.X*n.X-2.0*n.Z*n.Z)
	out_matrix.Set(1, 2, 2.0*n.Y*n.Z-2.0*n.X*n.W)

	out_matrix.Set(2, 0, 2.0*n.X*n.Z-2.0*n.Y*n.W)
	out_matrix.Set(2, 1, 2.0*n.Y*n.Z+2.0*n.X*n.W)
	out_matrix.Set(2, 2, 1.0-2.0*n.X*n.X-2.0*n.Y*n.Y)

	return out_matrix
}

/**
 * @brief Creates a quaternion from the given axis and angle.
 *
 * @param axis The axis of rotation.
 * @param angle The angle of rotation.
 * @param normalize Indicates if the quaternion should be normalized.
 * @return A new quaternion.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float32, normalize bool) Quaternion {
	half_angle := 0.5 * angle
	s := ksin(half_angle)
	c := kcos(half_angle)

	q := Quaternion{s * axis.X, s * axis.Y, s * axis.Z, c}
	if normalize {
		q = q.Normalize()
	}
	return q
}

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}
