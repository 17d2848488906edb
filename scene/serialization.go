package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrEmptySnapshot marks a snapshot file that parsed but holds neither a
// camera nor any nodes. Applying one would be a no-op, which almost always
// means the wrong file was loaded.
var ErrEmptySnapshot = errors.New("snapshot holds no camera and no nodes")

// vec3JSON keeps the on-disk form stable and independent of the math library.
type vec3JSON struct {
	X, Y, Z float64
}

func toVec3JSON(v mgl64.Vec3) vec3JSON { return vec3JSON{v.X(), v.Y(), v.Z()} }

func (v vec3JSON) vec() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

type nodeJSON struct {
	Name      string
	Position  vec3JSON
	RotationZ float64
	Scale     vec3JSON
	Visible   bool
	Children  []nodeJSON
}

type cameraJSON struct {
	Position    vec3JSON
	Target      vec3JSON
	FOV         float64
	AspectRatio float64
}

// SceneData is a snapshot of every node transform in the graph. The debug
// dump writes it so the transforms the per-frame sync computed can be
// inspected or replayed; meshes and textures are rebuilt from code and never
// serialized.
type SceneData struct {
	Camera *cameraJSON
	Nodes  []nodeJSON
}

// SnapshotScene captures the current transforms of the whole graph.
func SnapshotScene(s *Scene) *SceneData {
	data := &SceneData{}
	if s.Camera != nil {
		data.Camera = &cameraJSON{
			Position:    toVec3JSON(s.Camera.Position),
			Target:      toVec3JSON(s.Camera.Target),
			FOV:         s.Camera.FOV,
			AspectRatio: s.Camera.AspectRatio,
		}
	}
	for _, n := range s.Root.Children {
		data.Nodes = append(data.Nodes, snapshotNode(n))
	}
	return data
}

func snapshotNode(n *Node) nodeJSON {
	nj := nodeJSON{
		Name:      n.Name,
		Position:  toVec3JSON(n.Transform.Position),
		RotationZ: n.Transform.RotationZ,
		Scale:     toVec3JSON(n.Transform.Scale),
		Visible:   n.Visible,
	}
	for _, c := range n.Children {
		nj.Children = append(nj.Children, snapshotNode(c))
	}
	return nj
}

// ApplyToScene pushes the snapshot's transforms back onto the graph, matching
// nodes by name. Nodes the snapshot does not mention are left alone, as are
// snapshot entries with no live counterpart.
func (d *SceneData) ApplyToScene(s *Scene) {
	if d.Camera != nil && s.Camera != nil {
		s.Camera.SetPosition(d.Camera.Position.vec())
		s.Camera.LookAt(d.Camera.Target.vec(), s.Camera.Up)
	}
	for _, nj := range d.Nodes {
		applyNode(s.Root, nj)
	}
}

func applyNode(root *Node, nj nodeJSON) {
	n := root.Find(nj.Name)
	if n == nil {
		return
	}
	n.SetPosition(nj.Position.vec())
	n.SetRotationZ(nj.RotationZ)
	n.SetScale(nj.Scale.vec())
	n.Visible = nj.Visible
	for _, c := range nj.Children {
		applyNode(n, c)
	}
}

// SaveScene writes a snapshot of the scene to a JSON file.
func SaveScene(s *Scene, path string) error {
	data, err := json.MarshalIndent(SnapshotScene(s), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene %q: %w", path, err)
	}
	return nil
}

// LoadScene reads a snapshot written by SaveScene.
func LoadScene(path string) (*SceneData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}
	var data SceneData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal scene %q: %w", path, err)
	}
	if data.Camera == nil && len(data.Nodes) == 0 {
		return nil, fmt.Errorf("scene %q: %w", path, ErrEmptySnapshot)
	}
	return &data, nil
}
