package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief A quaternion, used to represent rotational orientation. */
type Quaternion Vec4

/**
 * @brief a 4x4 matrix, typically used to represent object transformations.
 * The elements are stored column-major, Data[col*4+row], which is the layout
 * OpenGL expects when a matrix is uploaded without transposition.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}
