package raycursor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoShapes is returned when a glTF document contains nothing that can be loaded as a Selectable.
var ErrNoShapes = errors.New("no selectable shapes found")

type GLTFLoadOptions struct {
	// ShapeProperty is the name of the custom property (glTF node "extras") indicating which kind of shape to build
	// for the node: "box", "sphere", "mesh" or "none" to skip the node. Nodes without it use DefaultShape.
	ShapeProperty string
	// DefaultShape is the kind of shape built for mesh nodes without a ShapeProperty. ShapeGeneric isn't a valid
	// shape to build from a mesh, so it's treated as ShapeBox.
	DefaultShape ShapeKind
	// If RequireSelectableProperty is true, only nodes having a truthy SelectableProperty are loaded.
	RequireSelectableProperty bool
	// SelectableProperty is the name of the custom property marking a node as selectable.
	SelectableProperty string
	// Scene is the index of the scene to load; a negative value loads the document's default scene (or the first one).
	Scene int
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		ShapeProperty:      "rcShape",
		DefaultShape:       ShapeBox,
		SelectableProperty: "rcSelectable",
		Scene:              -1,
	}
}

// LoadGLTFFile loads Selectables from the mesh nodes of the .gltf or .glb file at the filepath given, using a
// provided GLTFLoadOptions struct to alter how the file is loaded. Passing nil for loadOptions will load the file
// using default load options. The Selectables are returned disabled.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) ([]*Selectable, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return LoadGLTFData(fileData, loadOptions)

}

// LoadGLTFData loads Selectables from the .gltf or .glb byte data given; see LoadGLTFFile().
func LoadGLTFData(data []byte, loadOptions *GLTFLoadOptions) ([]*Selectable, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glTF: %w", err)
	}

	return LoadGLTFDocument(doc, loadOptions)

}

// LoadGLTFDocument loads Selectables from the mesh nodes of an already decoded glTF document; see LoadGLTFFile().
// Each node's world transform is applied to its vertices, so the shapes are in world space.
func LoadGLTFDocument(doc *gltf.Document, loadOptions *GLTFLoadOptions) ([]*Selectable, error) {

	if loadOptions == nil {
		loadOptions = DefaultGLTFLoadOptions()
	}

	if len(doc.Scenes) == 0 {
		return nil, ErrNoShapes
	}

	sceneIndex := loadOptions.Scene
	if sceneIndex < 0 {
		sceneIndex = 0
		if doc.Scene != nil {
			sceneIndex = int(*doc.Scene)
		}
	}

	if sceneIndex >= len(doc.Scenes) {
		return nil, fmt.Errorf("glTF scene %d out of %d", sceneIndex, len(doc.Scenes))
	}

	loader := &gltfLoader{doc: doc, options: loadOptions, visited: map[int]bool{}}

	for _, nodeIndex := range doc.Scenes[sceneIndex].Nodes {
		if err := loader.loadNode(int(nodeIndex), nil); err != nil {
			return nil, err
		}
	}

	if len(loader.selectables) == 0 {
		return nil, ErrNoShapes
	}

	return loader.selectables, nil

}

type gltfLoader struct {
	doc         *gltf.Document
	options     *GLTFLoadOptions
	selectables []*Selectable
	visited     map[int]bool
}

// nodeChain is a node's transform followed by its ancestors' transforms, innermost first
type nodeChain []Transform

func (chain nodeChain) transformPoint(p Vector) Vector {
	for _, t := range chain {
		p = t.TransformPoint(p)
	}
	return p
}

func (chain nodeChain) scale() float64 {
	s := 1.0
	for _, t := range chain {
		s *= math.Abs(t.Scale.X)
	}
	return s
}

func (loader *gltfLoader) loadNode(index int, parents nodeChain) error {

	if index < 0 || index >= len(loader.doc.Nodes) {
		return fmt.Errorf("glTF node %d out of %d", index, len(loader.doc.Nodes))
	}

	// Node graphs must be trees, but don't loop forever on malformed files
	if loader.visited[index] {
		return nil
	}
	loader.visited[index] = true

	node := loader.doc.Nodes[index]

	chain := append(nodeChain{gltfNodeTransform(node)}, parents...)

	if node.Mesh != nil {
		selectable, err := loader.loadMeshNode(node, chain)
		if err != nil {
			return fmt.Errorf("glTF node %q: %w", node.Name, err)
		}
		if selectable != nil {
			loader.selectables = append(loader.selectables, selectable)
		}
	}

	for _, child := range node.Children {
		if err := loader.loadNode(int(child), chain); err != nil {
			return err
		}
	}

	return nil

}

func (loader *gltfLoader) loadMeshNode(node *gltf.Node, chain nodeChain) (*Selectable, error) {

	opt := loader.options

	if opt.RequireSelectableProperty && !truthy(nodeGetProp(node, opt.SelectableProperty)) {
		return nil, nil
	}

	kind := opt.DefaultShape
	if kind == ShapeGeneric {
		kind = ShapeBox
	}

	if value, ok := nodeGetProp(node, opt.ShapeProperty).(string); ok {
		switch strings.ToLower(value) {
		case "box":
			kind = ShapeBox
		case "sphere":
			kind = ShapeSphere
		case "mesh":
			kind = ShapeMesh
		case "none", "":
			return nil, nil
		default:
			return nil, fmt.Errorf("unknown shape %q", value)
		}
	}

	meshIndex := int(*node.Mesh)
	if meshIndex < 0 || meshIndex >= len(loader.doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of %d", meshIndex, len(loader.doc.Meshes))
	}

	vertices, indices, err := loader.readMesh(loader.doc.Meshes[meshIndex])
	if err != nil {
		return nil, err
	}

	if len(vertices) == 0 {
		return nil, nil
	}

	name := node.Name
	if name == "" {
		name = loader.doc.Meshes[meshIndex].Name
	}

	var shape Shape

	switch kind {

	case ShapeSphere:
		// Bounding sphere of the local vertices, centered on their bounds
		lo, hi := vertexBounds(vertices)
		center := lo.Lerp(hi, 0.5)
		radius := 0.0
		for _, v := range vertices {
			radius = math.Max(radius, v.DistanceTo(center))
		}
		shape = NewSphere(chain.transformPoint(center), radius*chain.scale())

	case ShapeMesh:
		world := make([]Vector, len(vertices))
		for i, v := range vertices {
			world[i] = chain.transformPoint(v)
		}
		mesh, err := NewMesh(world, indices)
		if err != nil {
			return nil, err
		}
		shape = mesh

	default:
		lo, hi := vertexBounds(vertices)
		box := NewBox(NewTransform(), lo.Lerp(hi, 0.5), hi.Sub(lo))
		var corners [8]Vector
		for i, v := range box.vertices {
			corners[i] = chain.transformPoint(v)
		}
		shape = NewShapeFromCorners(corners)

	}

	selectable := NewSelectable(name, shape)
	selectable.Data = node.Extras
	return selectable, nil

}

// readMesh reads the local vertex positions and triangle indices of every triangle primitive of the mesh.
func (loader *gltfLoader) readMesh(mesh *gltf.Mesh) ([]Vector, []int, error) {

	vertices := []Vector{}
	indices := []int{}

	for _, prim := range mesh.Primitives {

		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIndex, exists := prim.Attributes[gltf.POSITION]
		if !exists {
			continue
		}

		if int(posIndex) >= len(loader.doc.Accessors) || (prim.Indices != nil && int(*prim.Indices) >= len(loader.doc.Accessors)) {
			return nil, nil, fmt.Errorf("primitive accessor out of %d", len(loader.doc.Accessors))
		}

		positions, err := modeler.ReadPosition(loader.doc, loader.doc.Accessors[posIndex], nil)
		if err != nil {
			return nil, nil, fmt.Errorf("reading positions: %w", err)
		}

		offset := len(vertices)
		for _, p := range positions {
			vertices = append(vertices, Vector{float64(p[0]), float64(p[1]), float64(p[2])})
		}

		if prim.Indices != nil {
			primIndices, err := modeler.ReadIndices(loader.doc, loader.doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, nil, fmt.Errorf("reading indices: %w", err)
			}
			for _, i := range primIndices {
				indices = append(indices, offset+int(i))
			}
		} else {
			for i := range positions {
				indices = append(indices, offset+i)
			}
		}

	}

	return vertices, indices, nil

}

func gltfNodeTransform(node *gltf.Node) Transform {

	mtData := node.Matrix

	matrix := [16]float64{}
	nonZero := false
	identity := true
	for i := range mtData {
		matrix[i] = float64(mtData[i])
		if matrix[i] != 0 {
			nonZero = true
		}
		want := 0.0
		if i%5 == 0 {
			want = 1
		}
		if matrix[i] != want {
			identity = false
		}
	}

	if nonZero && !identity {
		return NewTransformFromMatrix(matrix)
	}

	t := NewTransform().
		WithPosition(Vector{float64(node.Translation[0]), float64(node.Translation[1]), float64(node.Translation[2])}).
		WithRotation(NewQuaternion(float64(node.Rotation[0]), float64(node.Rotation[1]), float64(node.Rotation[2]), float64(node.Rotation[3])))

	if scale := (Vector{float64(node.Scale[0]), float64(node.Scale[1]), float64(node.Scale[2])}); !scale.IsZero() {
		t = t.WithScale(scale)
	}

	return t

}

func vertexBounds(vertices []Vector) (lo, hi Vector) {
	lo, hi = vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi
}

func nodeGetProp(node *gltf.Node, propName string) interface{} {
	if node.Extras == nil || propName == "" {
		return nil
	}
	if dataMap, isMap := node.Extras.(map[string]interface{}); isMap {
		return dataMap[propName]
	}
	return nil
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		v = strings.ToLower(v)
		return v == "true" || v == "yes" || v == "1"
	}
	return false
}
