package main

import (
	"errors"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

var (
	errNoVertex       = errors.New("mesh has no vertex")
	errNormalCount    = errors.New("number of normals doesn't match number of vertices")
	errIndexOutOfMesh = errors.New("index out of mesh")
	errNotTriangles   = errors.New("number of indices is not a multiple of 3")
)

var defaultMeshColor = mat.Vec3{0.8, 0.8, 0.8}

// mesh is a triangle list.
// Vertices are stored as an x/y/z point cloud so that the pc package
// accessors can be used for bounds and transforms.
type mesh struct {
	vertices *pc.PointCloud
	normals  []mat.Vec3
	indices  []uint32
	color    mat.Vec3
}

func newMesh(positions, normals []mat.Vec3, indices []uint32) (*mesh, error) {
	if len(positions) == 0 {
		return nil, errNoVertex
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, errNormalCount
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return nil, errIndexOutOfMesh
		}
	}
	n := len(indices)
	if indices == nil {
		n = len(positions)
	}
	if n%3 != 0 {
		return nil, errNotTriangles
	}

	vertices := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Fields: []string{"x", "y", "z"},
			Size:   []int{4, 4, 4},
			Type:   []string{"F", "F", "F"},
			Count:  []int{1, 1, 1},
			Width:  len(positions),
			Height: 1,
		},
		Points: len(positions),
	}
	vertices.Data = make([]byte, len(positions)*vertices.Stride())
	it, err := vertices.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		it.SetVec3(p)
		it.Incr()
	}

	return &mesh{
		vertices: vertices,
		normals:  normals,
		indices:  indices,
		color:    defaultMeshColor,
	}, nil
}

func (m *mesh) vertexCount() int {
	return m.vertices.Points
}

func (m *mesh) triangleCount() int {
	if m.indices != nil {
		return len(m.indices) / 3
	}
	return m.vertexCount() / 3
}

// bounds returns the axis-aligned bounds of the mesh transformed by trans.
func (m *mesh) bounds(trans mat.Mat4) (box3, error) {
	it, err := m.vertices.Vec3Iterator()
	if err != nil {
		return emptyBox3(), err
	}
	min, max, err := pc.MinMaxVec3(&transformedVec3RandomAccessor{
		Vec3RandomAccessor: it,
		trans:              trans,
	})
	if err != nil {
		return emptyBox3(), err
	}
	return box3{min: min, max: max}, nil
}

// interleaved returns non-indexed position/normal pairs for every triangle
// corner, laid out as x, y, z, nx, ny, nz.
// Face normals are generated if the mesh has no vertex normals.
func (m *mesh) interleaved() ([]float32, error) {
	it, err := m.vertices.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	index := func(i int) int {
		if m.indices != nil {
			return int(m.indices[i])
		}
		return i
	}

	nTri := m.triangleCount()
	buf := make([]float32, 0, nTri*3*6)
	for t := 0; t < nTri; t++ {
		var ids [3]int
		var ps [3]mat.Vec3
		for k := range ids {
			ids[k] = index(3*t + k)
			ps[k] = it.Vec3At(ids[k])
		}
		var face mat.Vec3
		if m.normals == nil {
			face = faceNormal(ps[0], ps[1], ps[2])
		}
		for k := range ids {
			n := face
			if m.normals != nil {
				n = m.normals[ids[k]]
			}
			buf = append(buf,
				ps[k][0], ps[k][1], ps[k][2],
				n[0], n[1], n[2],
			)
		}
	}
	return buf, nil
}

func faceNormal(p0, p1, p2 mat.Vec3) mat.Vec3 {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.NormSq() == 0 {
		return mat.Vec3{0, 0, 1}
	}
	return n.Normalized()
}
