package math

// ComputeTranslation returns the identity matrix with its last column set to
// the homogeneous form of offset.
func ComputeTranslation(offset Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Set(0, 3, offset.X)
	out_matrix.Set(1, 3, offset.Y)
	out_matrix.Set(2, 3, offset.Z)
	return out_matrix
}

// ComputeRotation returns a rotation of angleRadians about axis. The axis does
// not need to be unit length but must not be zero.
func ComputeRotation(axis Vec3, angleRadians float32) Mat4 {
	q := NewQuatFromAxisAngle(axis.Normalized(), angleRadians, true)
	return q.ToMat4()
}

// ComputeProjectionMatrix builds an off-center perspective projection from the
// frustum bounds at the near plane. The bounds are not checked: right == left,
// top == bottom or far == near divide by zero.
func ComputeProjectionMatrix(left, right, top, bottom, near, far float32) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Set(0, 0, 2.0*near/(right-left))
	out_matrix.Set(1, 1, 2.0*near/(top-bottom))
	out_matrix.Set(2, 2, -(far+near)/(far-near))
	out_matrix.Set(0, 2, (right+left)/(right-left))
	out_matrix.Set(1, 2, (top+bottom)/(top-bottom))
	out_matrix.Set(2, 3, -2.0*far*near/(far-near))
	out_matrix.Set(3, 3, 0.0)
	out_matrix.Set(3, 2, -1.0)
	return out_matrix
}

// ComputeProjectionMatrixFOV builds a symmetric perspective projection from a
// vertical field of view in degrees and delegates to ComputeProjectionMatrix.
func ComputeProjectionMatrixFOV(fieldOfViewDegrees, aspectRatio, near, far float32) Mat4 {
	left, right, top, bottom := FrustumBounds(fieldOfViewDegrees, aspectRatio, near)
	return ComputeProjectionMatrix(left, right, top, bottom, near, far)
}

// FrustumBounds returns the near-plane bounds of a symmetric frustum.
func FrustumBounds(fieldOfViewDegrees, aspectRatio, near float32) (left, right, top, bottom float32) {
	top = near * ktan(DegToRad(fieldOfViewDegrees)*0.5)
	bottom = -top
	right = top * aspectRatio
	left = -right
	return left, right, top, bottom
}
