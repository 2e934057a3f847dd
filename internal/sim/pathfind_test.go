package sim

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// wallWalkable is a minimal Walkable for tests: every cell is passable
// except those listed in blocked.
type wallWalkable struct {
	width, height int
	blocked       map[[2]int]bool
}

func (w wallWalkable) CanOccupy(x, z int) bool {
	if x < 0 || z < 0 || x >= w.width || z >= w.height {
		return false
	}
	return !w.blocked[[2]int{x, z}]
}

func TestScenario2PathfindAroundObstacle(t *testing.T) {
	Convey("Given a 10x10 grid with a wall at x=5 from z=1 to z=8", t, func() {
		blocked := map[[2]int]bool{}
		for z := 1; z <= 8; z++ {
			blocked[[2]int{5, z}] = true
		}
		walk := wallWalkable{width: 10, height: 10, blocked: blocked}

		Convey("FindPath from (0,4) to (9,4) succeeds and avoids the wall", func() {
			path, err := FindPath(context.Background(), walk, 10, 10, 0, 4, PointGoal{X: 9, Z: 4})
			So(err, ShouldBeNil)
			So(len(path), ShouldBeGreaterThan, 0)

			for _, step := range path {
				So(blocked[[2]int{step[0], step[1]}], ShouldBeFalse)
			}

			last := path[len(path)-1]
			So(last, ShouldResemble, [2]int{9, 4})
		})

		Convey("the simplified path around the wall needs only a few waypoints", func() {
			path, err := FindPath(context.Background(), walk, 10, 10, 0, 4, PointGoal{X: 9, Z: 4})
			So(err, ShouldBeNil)
			// FindPath returns the simplified path, so len(path) counts
			// waypoints (direction changes), not grid steps; a detour
			// around either open end (z=0 or z=9) needs only a handful,
			// so a generous upper bound keeps this robust to the exact
			// tie-breaking the open set uses.
			So(len(path), ShouldBeLessThanOrEqualTo, 20)
		})

		Convey("an unreachable goal surrounded by blocked cells returns ErrNoPath", func() {
			sealed := map[[2]int]bool{}
			for _, off := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
				sealed[[2]int{5 + off[0], 4 + off[1]}] = true
			}
			walk := wallWalkable{width: 10, height: 10, blocked: sealed}
			_, err := FindPath(context.Background(), walk, 10, 10, 0, 0, PointGoal{X: 5, Z: 4})
			So(err, ShouldEqual, ErrNoPath)
		})
	})
}
