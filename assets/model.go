package assets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"portal-site/core"
)

// ModelData is a decoded glTF scene flattened to a list of primitives. The
// node hierarchy is collapsed; decor props are placed as one unit by whoever
// builds meshes from this.
type ModelData struct {
	Name       string
	Primitives []MeshPrimitive
}

// MeshPrimitive is one drawable primitive with its base color baked in.
type MeshPrimitive struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	BaseColor core.Color
}

// LoadModel opens a .glb or .gltf file. Primitives that fail to decode are
// skipped so one bad accessor does not take the whole prop down; the file
// itself failing to open is an error.
func LoadModel(path string) (*ModelData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	baseColors := make([]core.Color, len(doc.Materials))
	for i, gm := range doc.Materials {
		baseColors[i] = core.ColorWhite
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			baseColors[i] = core.Color{
				R: float32(cf[0]), G: float32(cf[1]),
				B: float32(cf[2]), A: float32(cf[3]),
			}
		}
	}

	model := &ModelData{Name: path}
	for _, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			p, err := readPrimitive(doc, gm.Name, pi, *prim)
			if err != nil {
				continue
			}
			p.BaseColor = core.ColorWhite
			if prim.Material != nil && *prim.Material < len(baseColors) {
				p.BaseColor = baseColors[*prim.Material]
			}
			model.Primitives = append(model.Primitives, p)
		}
	}

	if len(model.Primitives) == 0 {
		return nil, fmt.Errorf("gltf %q: no readable primitives", path)
	}
	return model, nil
}

func readPrimitive(doc *gltf.Document, meshName string, primIdx int, prim gltf.Primitive) (MeshPrimitive, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}
	p := MeshPrimitive{Name: name}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return p, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return p, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	p.Positions = make([]mgl32.Vec3, len(positions))
	p.Normals = make([]mgl32.Vec3, len(positions))
	p.UVs = make([]mgl32.Vec2, len(positions))
	for i, pos := range positions {
		p.Positions[i] = mgl32.Vec3{pos[0], pos[1], pos[2]}
		p.Normals[i] = mgl32.Vec3{0, 0, 1}
		if i < len(normals) {
			p.Normals[i] = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		if i < len(uvs) {
			p.UVs[i] = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
	}

	if prim.Indices != nil {
		p.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return p, fmt.Errorf("indices: %w", err)
		}
	}
	return p, nil
}
