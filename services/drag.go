// services/drag.go
package services

import (
	"math"

	"leeterboard-client/models"
)

// DragMoveThreshold is the displacement, in percentage points, past which a
// pointer interaction counts as a drag instead of a click.
const DragMoveThreshold = 0.3

// DragState is the pointer-drag machine for repositioning placed items:
// idle, or dragging one item. It is driven by three events (down, move,
// up-or-leave) and holds no reference to any UI.
type DragState struct {
	active  bool
	itemID  string
	offsetX float64
	offsetY float64
	startX  float64
	startY  float64
	moved   bool
}

func (d *DragState) Active() bool { return d.active }
func (d *DragState) ItemID() string { return d.itemID }
func (d *DragState) Moved() bool { return d.moved }

// Begin transitions idle -> dragging on pointer-down over a placed item. The
// offset between pointer and item position is captured so the item does not
// jump to the cursor. Pointer coordinates are percent-of-scene.
func (d *DragState) Begin(item models.RoomItem, pointerX, pointerY float64) bool {
	if !item.Placed {
		return false
	}
	d.active = true
	d.itemID = item.ID
	d.offsetX = pointerX - item.X
	d.offsetY = pointerY - item.Y
	d.startX = item.X
	d.startY = item.Y
	d.moved = false
	return true
}

// Move computes the item's new position for a pointer-move: pointer minus the
// captured offset, clamped to the scene on both axes. The moved flag latches
// once displacement from the start position crosses the threshold.
func (d *DragState) Move(pointerX, pointerY float64) (x, y float64, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	x = ClampPercent(pointerX - d.offsetX)
	y = ClampPercent(pointerY - d.offsetY)
	if !d.moved && (math.Abs(x-d.startX) > DragMoveThreshold || math.Abs(y-d.startY) > DragMoveThreshold) {
		d.moved = true
	}
	return x, y, true
}

// End transitions back to idle on pointer-up or pointer-leave; both commit
// the same way. Returns which item was held and whether it actually moved.
func (d *DragState) End() (itemID string, moved bool) {
	if !d.active {
		return "", false
	}
	itemID, moved = d.itemID, d.moved
	*d = DragState{}
	return itemID, moved
}

// ClampPercent bounds a scene coordinate to [0, 100].
func ClampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
