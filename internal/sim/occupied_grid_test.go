package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOccupiedGridFootprintBookkeeping(t *testing.T) {
	Convey("Given an empty 10x10 occupied grid", t, func() {
		g := NewOccupiedGrid(10, 10)

		Convey("every cell starts empty and free", func() {
			cell, ok := g.At(3, 4)
			So(ok, ShouldBeTrue)
			So(cell.Kind, ShouldEqual, CellEmpty)
			So(g.IsFreeFor(3, 4), ShouldBeTrue)
		})

		Convey("out-of-bounds coordinates report not-ok and are never free", func() {
			_, ok := g.At(-1, 0)
			So(ok, ShouldBeFalse)
			So(g.IsFreeFor(10, 0), ShouldBeFalse)
		})

		Convey("PlaceFootprint marks every cell of the rect occupied by the unit", func() {
			id := UnitId{}
			rect := DiscreteRect{X: 2, Y: 2, Width: 2, Height: 2}
			g.PlaceFootprint(rect, id)

			rect.ForEachCell(func(x, z int) {
				cell, _ := g.At(x, z)
				So(cell.Kind, ShouldEqual, CellUnit)
				So(cell.Unit, ShouldEqual, id)
				So(g.IsFreeFor(x, z), ShouldBeFalse)
			})
		})

		Convey("RepositionFootprint clears the old rect and occupies the new one", func() {
			id := UnitId{}
			old := DiscreteRect{X: 0, Y: 0, Width: 1, Height: 1}
			newRect := DiscreteRect{X: 5, Y: 5, Width: 1, Height: 1}
			g.PlaceFootprint(old, id)

			g.RepositionFootprint(old, newRect, id)

			oldCell, _ := g.At(0, 0)
			So(oldCell.Kind, ShouldEqual, CellEmpty)
			newCell, _ := g.At(5, 5)
			So(newCell.Kind, ShouldEqual, CellUnit)
			So(newCell.Unit, ShouldEqual, id)
		})

		Convey("a building-passable cell is free only while open", func() {
			owner := UnitId{}
			g.SetBuildingPassable(1, 1, owner, true)
			So(g.IsFreeFor(1, 1), ShouldBeTrue)

			g.SetBuildingPassable(1, 1, owner, false)
			So(g.IsFreeFor(1, 1), ShouldBeFalse)
		})

		Convey("a feature cell is never free", func() {
			g.SetFeature(4, 4, FeatureId{})
			So(g.IsFreeFor(4, 4), ShouldBeFalse)
		})
	})
}

func TestDiscreteRectPerimeterAndExpansion(t *testing.T) {
	Convey("Given a 3x3 rect at (2,2)", t, func() {
		r := DiscreteRect{X: 2, Y: 2, Width: 3, Height: 3}

		Convey("cells inside the rect are not on its perimeter", func() {
			So(r.IsOnPerimeter(3, 3), ShouldBeFalse)
			So(r.Contains(3, 3), ShouldBeTrue)
		})

		Convey("cells one cell outside, including diagonally, are on the perimeter", func() {
			So(r.IsOnPerimeter(1, 1), ShouldBeTrue)
			So(r.IsOnPerimeter(5, 3), ShouldBeTrue)
			So(r.IsOnPerimeter(3, 5), ShouldBeTrue)
		})

		Convey("cells two cells away are not on the perimeter", func() {
			So(r.IsOnPerimeter(0, 2), ShouldBeFalse)
		})

		Convey("ExpandToInclude grows the rect to cover a new point", func() {
			grown := r.ExpandToInclude(10, 2)
			So(grown.Contains(10, 2), ShouldBeTrue)
			So(grown.Contains(2, 2), ShouldBeTrue)
		})
	})
}
