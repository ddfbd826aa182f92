// Package kernel defines the geometry kernel interface behind the 3D
// preview. Implementations provide solid modeling and boolean operations;
// the rest of the system only sees solids and meshes.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the solid-modeling surface the scene builder draws against.
// Solids are centered on the origin; callers position them with Translate.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	RotateZ(s Solid, radians float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
