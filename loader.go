package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/seqsense/pcgol/mat"
)

var (
	errNoScene            = errors.New("glTF has no scene")
	errSceneIndex         = errors.New("glTF scene index out of range")
	errNodeIndex          = errors.New("glTF node index out of range")
	errMeshIndex          = errors.New("glTF mesh index out of range")
	errAccessorIndex      = errors.New("glTF accessor index out of range")
	errNodeCycle          = errors.New("glTF node graph has a cycle")
	errNoPosition         = errors.New("primitive has no POSITION attribute")
	errUnsupportedPrimMod = errors.New("only TRIANGLES primitives are supported")
)

type fetchFunc func(path string) ([]byte, error)

type loadResult struct {
	model *object3D
	err   error
}

// loadModelAsync fetches and decodes a model in background.
// The scene is never touched here; the result is handed over on the channel.
func loadModelAsync(fetch fetchFunc, path string) <-chan loadResult {
	ch := make(chan loadResult, 1)
	go func() {
		b, err := fetch(path)
		if err != nil {
			ch <- loadResult{err: fmt.Errorf("fetching %s: %w", path, err)}
			return
		}
		m, err := decodeModel(bytes.NewReader(b))
		if err != nil {
			ch <- loadResult{err: fmt.Errorf("decoding %s: %w", path, err)}
			return
		}
		ch <- loadResult{model: m}
	}()
	return ch
}

// decodeModel reads a binary or JSON glTF with embedded buffers.
func decodeModel(r io.Reader) (*object3D, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, err
	}
	return modelFromDocument(doc)
}

type documentConverter struct {
	doc     *gltf.Document
	visited map[uint32]bool
	meshes  map[uint32][]*mesh
}

// modelFromDocument converts the default scene of doc to a scene graph.
func modelFromDocument(doc *gltf.Document) (*object3D, error) {
	if len(doc.Scenes) == 0 {
		return nil, errNoScene
	}
	var sceneIndex uint32
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if int(sceneIndex) >= len(doc.Scenes) {
		return nil, errSceneIndex
	}
	s := doc.Scenes[sceneIndex]

	c := &documentConverter{
		doc:     doc,
		visited: make(map[uint32]bool),
		meshes:  make(map[uint32][]*mesh),
	}
	root := newObject3D(s.Name, objectGroup)
	for _, n := range s.Nodes {
		o, err := c.node(n)
		if err != nil {
			return nil, err
		}
		root.add(o)
	}
	return root, nil
}

func (c *documentConverter) node(i uint32) (*object3D, error) {
	if int(i) >= len(c.doc.Nodes) {
		return nil, errNodeIndex
	}
	if c.visited[i] {
		return nil, errNodeCycle
	}
	c.visited[i] = true
	defer delete(c.visited, i)

	n := c.doc.Nodes[i]
	o := newObject3D(n.Name, objectGroup)
	o.base = nodeMatrix(n)

	if n.Mesh != nil {
		meshes, err := c.mesh(*n.Mesh)
		if err != nil {
			return nil, err
		}
		if len(meshes) == 1 {
			o.kind = objectMesh
			o.mesh = meshes[0]
		} else {
			for _, m := range meshes {
				child := newObject3D("", objectMesh)
				child.mesh = m
				o.add(child)
			}
		}
	}
	for _, ch := range n.Children {
		child, err := c.node(ch)
		if err != nil {
			return nil, err
		}
		o.add(child)
	}
	return o, nil
}

func (c *documentConverter) mesh(i uint32) ([]*mesh, error) {
	if m, ok := c.meshes[i]; ok {
		return m, nil
	}
	if int(i) >= len(c.doc.Meshes) {
		return nil, errMeshIndex
	}
	var out []*mesh
	for _, p := range c.doc.Meshes[i].Primitives {
		m, err := c.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		out = append(out, m)
	}
	c.meshes[i] = out
	return out, nil
}

func (c *documentConverter) primitive(p *gltf.Primitive) (*mesh, error) {
	if p.Mode != gltf.PrimitiveTriangles {
		return nil, errUnsupportedPrimMod
	}
	posIndex, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, errNoPosition
	}
	acr, err := c.accessor(posIndex)
	if err != nil {
		return nil, err
	}
	pos, err := modeler.ReadPosition(c.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	positions := make([]mat.Vec3, len(pos))
	for i, v := range pos {
		positions[i] = mat.Vec3(v)
	}

	var normals []mat.Vec3
	if normIndex, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := c.accessor(normIndex)
		if err != nil {
			return nil, err
		}
		norm, err := modeler.ReadNormal(c.doc, acr, nil)
		if err != nil {
			return nil, err
		}
		normals = make([]mat.Vec3, len(norm))
		for i, v := range norm {
			normals[i] = mat.Vec3(v)
		}
	}

	var indices []uint32
	if p.Indices != nil {
		acr, err := c.accessor(*p.Indices)
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(c.doc, acr, nil)
		if err != nil {
			return nil, err
		}
	}
	return newMesh(positions, normals, indices)
}

func (c *documentConverter) accessor(i uint32) (*gltf.Accessor, error) {
	if int(i) >= len(c.doc.Accessors) {
		return nil, errAccessorIndex
	}
	return c.doc.Accessors[i], nil
}

// nodeMatrix returns the local transform of n.
// Zero valued fields are treated as glTF defaults.
func nodeMatrix(n *gltf.Node) mat.Mat4 {
	if n.Matrix != [16]float32{} && n.Matrix != gltf.DefaultMatrix {
		return mat.Mat4(n.Matrix)
	}
	t := n.Translation
	s := mat.Vec3(n.Scale)
	if s == (mat.Vec3{}) {
		s = mat.Vec3{1, 1, 1}
	}
	return mat.Translate(t[0], t[1], t[2]).
		MulAffine(quaternionMatrix(n.Rotation)).
		MulAffine(scaling(s))
}

// quaternionMatrix converts an x, y, z, w quaternion to a rotation matrix.
func quaternionMatrix(q [4]float32) mat.Mat4 {
	if q == [4]float32{} {
		return identity()
	}
	x, y, z, w := q[0], q[1], q[2], q[3]
	return mat.Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0,
		2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0,
		2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}
