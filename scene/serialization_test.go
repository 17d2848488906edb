package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/smartystreets/goconvey/convey"
)

func buildSnapshotScene() *Scene {
	s := NewScene()
	s.SetCamera(NewCamera(0.9, 16.0/9.0, 0.1, 100))

	group := NewNode("group")
	group.SetPosition(mgl64.Vec3{1, 2, -8})
	group.SetRotationZ(0.5)
	s.AddNode(group)

	child := NewNode("child")
	child.SetScale(mgl64.Vec3{3, 4, 1})
	child.Visible = false
	group.AddChild(child)

	return s
}

func TestSceneSnapshotRoundTrip(t *testing.T) {
	Convey("A saved snapshot restores transforms by name", t, func() {
		path := filepath.Join(t.TempDir(), "scene.json")
		src := buildSnapshotScene()
		So(SaveScene(src, path), ShouldBeNil)

		data, err := LoadScene(path)
		So(err, ShouldBeNil)
		So(data.Camera, ShouldNotBeNil)
		So(data.Camera.FOV, ShouldAlmostEqual, 0.9, 1e-12)

		Convey("applying onto a fresh graph lands every field", func() {
			dst := NewScene()
			dst.SetCamera(NewCamera(1.2, 1, 0.1, 100))
			group := NewNode("group")
			dst.AddNode(group)
			child := NewNode("child")
			group.AddChild(child)

			data.ApplyToScene(dst)

			So(group.Transform.Position, ShouldResemble, mgl64.Vec3{1, 2, -8})
			So(group.Transform.RotationZ, ShouldAlmostEqual, 0.5, 1e-12)
			So(child.Transform.Scale, ShouldResemble, mgl64.Vec3{3, 4, 1})
			So(child.Visible, ShouldBeFalse)
			So(dst.Camera.Position, ShouldResemble, src.Camera.Position)
		})

		Convey("unknown snapshot nodes are skipped quietly", func() {
			dst := NewScene()
			data.ApplyToScene(dst)
			So(dst.Root.Children, ShouldBeEmpty)
		})
	})
}

func TestLoadSceneRejectsEmptySnapshot(t *testing.T) {
	Convey("A snapshot with nothing to apply is an error", t, func() {
		path := filepath.Join(t.TempDir(), "empty.json")
		So(os.WriteFile(path, []byte(`{}`), 0644), ShouldBeNil)

		data, err := LoadScene(path)
		So(data, ShouldBeNil)
		So(errors.Is(err, ErrEmptySnapshot), ShouldBeTrue)
	})
}

func TestSnapshotKeepsUnmentionedNodes(t *testing.T) {
	Convey("Nodes absent from the snapshot keep their state", t, func() {
		dst := NewScene()
		extra := NewNode("extra")
		extra.SetPosition(mgl64.Vec3{9, 9, 9})
		dst.AddNode(extra)

		data := &SceneData{Nodes: []nodeJSON{{
			Name:     "other",
			Position: vec3JSON{1, 1, 1},
			Scale:    vec3JSON{1, 1, 1},
			Visible:  true,
		}}}
		data.ApplyToScene(dst)

		So(extra.Transform.Position, ShouldResemble, mgl64.Vec3{9, 9, 9})
	})
}
