package scene

import (
	"portal-site/core"
)

// Scene manages a collection of nodes and the active camera
type Scene struct {
	Root       *Node
	Camera     *Camera
	ClearColor core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		ClearColor: core.Color{R: 0.07, G: 0.04, B: 0.12, A: 1},
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

// GetVisibleNodes returns all nodes with meshes that are visible. Hiding a
// node hides its whole subtree.
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node

	var walk func(*Node)
	walk = func(node *Node) {
		if !node.Visible {
			return
		}
		if node.Mesh != nil {
			visible = append(visible, node)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(s.Root)

	return visible
}
