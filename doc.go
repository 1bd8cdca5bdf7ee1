// Package moka is the retained-mode scene graph behind the Moka settlement
// simulation, drawn with [Ebitengine].
//
// Moka provides the node tree, transform hierarchy, update/draw traversal,
// pairwise subtree collision, a follow camera, tweens, TexturePacker atlases
// and TrueType labels. The simulation itself (layers, houses, mosquitoes)
// lives in package world.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root].
// Children inherit their parent's transform. A node owns its children;
// Parent is only a back-reference used to compose world transforms.
//
//	scene := moka.NewScene()
//	layer := moka.NewContainer("doors")
//	scene.Root().AddChild(layer)
//
//	door := moka.NewRectNode("door-1", moka.Rect{X: 128, Y: 192, Width: 64, Height: 64})
//	layer.AddChild(door)
//
// A frame is one [Scene.Update] pass followed by one [Scene.Draw] pass.
// Node kinds hook into both through [Node.OnUpdate] and [Node.OnDraw].
//
// # Collision
//
// [Node.CheckSceneCollision] tests every node with geometry in one subtree
// against every node with geometry in another and collects intersecting
// pairs into a [PairSet]:
//
//	pairs := moka.NewPairSet()
//	mosquitoes.CheckSceneCollision(doors, pairs, true)
//	for _, p := range pairs.Pairs() {
//		// p.First is a mosquito, p.Second a door
//	}
//
// Rectangles that share only an edge intersect. [Node.CheckSceneOverlap]
// runs the same check with [Rect.Overlaps], which ignores edge contact.
//
// # References
//
// Code outside the tree refers to nodes through a [Handle], which resolves
// as stale once the node is disposed.
//
// [Ebitengine]: https://ebitengine.org
package moka
