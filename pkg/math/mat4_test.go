package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v, want (5, 10, 15)", got)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint([3]float32{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateYFullTurn(t *testing.T) {
	// Four quarter turns bring a point back where it started.
	quarter := RotateY(float32(math.Pi / 2))
	m := quarter.Mul(quarter).Mul(quarter).Mul(quarter)
	result := m.TransformPoint([3]float32{4.5, 0, 0})

	if abs(result[0]-4.5) > 0.001 || abs(result[2]) > 0.001 {
		t.Errorf("4 x RotateY(pi/2): got %v, want (4.5, 0, 0)", result)
	}
}

func TestRotateEulerOrder(t *testing.T) {
	r := Vec3{X: 0.1, Y: 0.7}
	got := RotateEuler(r)
	want := RotateX(0.1).Mul(RotateY(0.7))

	for i := range got {
		if abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("RotateEuler element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestOrthoMapsCorners(t *testing.T) {
	m := Ortho(0, 800, 600, 0, -1, 1)

	topLeft := m.TransformPoint([3]float32{0, 0, 0})
	if abs(topLeft[0]+1) > 1e-6 || abs(topLeft[1]-1) > 1e-6 {
		t.Errorf("Ortho top-left: got %v, want (-1, 1)", topLeft)
	}
	bottomRight := m.TransformPoint([3]float32{800, 600, 0})
	if abs(bottomRight[0]-1) > 1e-6 || abs(bottomRight[1]+1) > 1e-6 {
		t.Errorf("Ortho bottom-right: got %v, want (1, -1)", bottomRight)
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 9}, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin
	eye := m.TransformPoint([3]float32{0, 0, 9})
	if abs(eye[0]) > 1e-5 || abs(eye[1]) > 1e-5 || abs(eye[2]) > 1e-5 {
		t.Errorf("LookAt eye: got %v, want origin", eye)
	}
	// The target sits in front of the camera on -Z
	target := m.TransformPoint([3]float32{0, 0, 0})
	if abs(target[2]+9) > 1e-5 {
		t.Errorf("LookAt target: got %v, want z=-9", target)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
