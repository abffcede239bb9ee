package models

import (
	"github.com/qmuntal/gltf"
	"github.com/taigrr/spin/pkg/math3d"
)

// NodePose is the placement of one node of a scene.
type NodePose struct {
	Node   int
	Parent int // -1 for a scene root
	Local  math3d.Transform
	World  math3d.Transform
}

// NodeTransform returns the local transform of n.
//
// A node carries either a matrix or translation, rotation and scale. The
// zero rotation and zero scale of a Node built in code stand for the
// glTF defaults, the identity rotation and unit scale.
func NodeTransform(n *gltf.Node) math3d.Transform {
	if m := math3d.Mat4(n.Matrix); m != (math3d.Mat4{}) && m != math3d.Identity() {
		return math3d.TransformFromMat4(m)
	}

	t := math3d.NewTransform()
	t.Position = math3d.V3(n.Translation[0], n.Translation[1], n.Translation[2])
	if q, err := math3d.QuatFromSlice(n.Rotation[:]); err == nil {
		if q, err := q.NormalizeSafe(); err == nil {
			t.Rotation = q
		}
	}
	if s := math3d.V3(n.Scale[0], n.Scale[1], n.Scale[2]); s != math3d.Zero3() {
		t.Scale = s
	}
	return t
}

// NodePoses walks the default scene of doc, or its first scene when none
// is marked default, and returns every reachable node parent first.
// Each node is visited once even if the document links it twice.
func NodePoses(doc *gltf.Document) []NodePose {
	if len(doc.Scenes) == 0 {
		return nil
	}
	scene := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		scene = *doc.Scene
	}

	var poses []NodePose
	visited := make(map[int]bool, len(doc.Nodes))

	var walk func(idx, parent int, parentWorld math3d.Transform)
	walk = func(idx, parent int, parentWorld math3d.Transform) {
		if idx < 0 || idx >= len(doc.Nodes) || visited[idx] {
			return
		}
		visited[idx] = true

		n := doc.Nodes[idx]
		local := NodeTransform(n)
		world := parentWorld.Mul(local)
		poses = append(poses, NodePose{Node: idx, Parent: parent, Local: local, World: world})

		for _, child := range n.Children {
			walk(child, idx, world)
		}
	}

	for _, root := range doc.Scenes[scene].Nodes {
		walk(root, -1, math3d.NewTransform())
	}
	return poses
}
