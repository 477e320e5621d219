// services/room.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"leeterboard-client/models"
)

// RoomAPI is the slice of the backend client the room editor needs.
type RoomAPI interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	PurchaseRoomItem(ctx context.Context, userID, itemID string) (*models.User, error)
	SaveRoomLayout(ctx context.Context, userID string, items []models.RoomItemState) (*models.User, error)
}

// HydrateRoomItems left-joins the catalog with a user's saved states. The
// catalog drives order and enumeration; saved ids outside it are ignored.
// An owned item with no saved placement defaults to placed at the catalog
// position.
func HydrateRoomItems(catalog []models.RoomCatalogItem, saved []models.RoomItemState) []models.RoomItem {
	savedByID := make(map[string]models.RoomItemState, len(saved))
	for _, state := range saved {
		savedByID[state.ID] = state
	}

	items := make([]models.RoomItem, 0, len(catalog))
	for _, entry := range catalog {
		item := models.RoomItem{
			RoomCatalogItem: entry,
			Owned:           entry.DefaultOwned,
			X:               entry.DefaultX,
			Y:               entry.DefaultY,
		}
		if state, ok := savedByID[entry.ID]; ok {
			item.Owned = state.Owned
			item.Placed = state.Placed
			if state.X != nil {
				item.X = *state.X
			}
			if state.Y != nil {
				item.Y = *state.Y
			}
		} else {
			item.Placed = item.Owned
		}
		items = append(items, item)
	}
	return items
}

// ToLayoutPayload projects items down to what the backend stores. Catalog
// presentation fields never go over the wire.
func ToLayoutPayload(items []models.RoomItem) []models.RoomItemState {
	payload := make([]models.RoomItemState, 0, len(items))
	for _, item := range items {
		x, y := item.X, item.Y
		payload = append(payload, models.RoomItemState{
			ID:     item.ID,
			Owned:  item.Owned,
			Placed: item.Placed,
			X:      &x,
			Y:      &y,
		})
	}
	return payload
}

// RoomEditor owns one room screen's state: the merged item list, the point
// balance, drag state and the in-flight guards. Each screen instance gets its
// own editor and re-fetches on open; nothing is shared across instances.
//
// Saves are full-snapshot and last-write-wins. Each save carries a sequence
// number; a response belonging to anything but the newest issued save is
// discarded so a slow early response cannot overwrite a newer one.
type RoomEditor struct {
	mu sync.Mutex

	api     RoomAPI
	userID  string
	catalog []models.RoomCatalogItem

	items  []models.RoomItem
	points int

	saving       bool
	purchasingID string
	saveSeq      uint64

	drag         DragState
	dragSnapshot []models.RoomItem

	lastError string
}

func NewRoomEditor(api RoomAPI, userID string) *RoomEditor {
	catalog := models.DefaultRoomCatalog
	return &RoomEditor{
		api:     api,
		userID:  userID,
		catalog: catalog,
		items:   HydrateRoomItems(catalog, nil),
	}
}

// Load fetches the authoritative user and replaces local state with it.
func (e *RoomEditor) Load(ctx context.Context) error {
	if e.userID == "" {
		e.setError("Log in to earn points and decorate.")
		return errors.New("no user session")
	}

	user, err := e.api.GetUser(ctx, e.userID)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == 401 || apiErr.Status == 404) {
			e.setError("Log back in to save your bathroom progress.")
		} else {
			e.setError("Could not load your room right now.")
		}
		return err
	}

	e.mu.Lock()
	e.applyUserLocked(user)
	e.lastError = ""
	e.mu.Unlock()
	return nil
}

func (e *RoomEditor) applyUserLocked(user *models.User) {
	e.points = user.Points
	e.items = HydrateRoomItems(e.catalog, user.RoomItems)
}

// SetPoints pushes a fresh balance from the periodic refresh without touching
// the item list (a poll response must not clobber an in-progress drag).
func (e *RoomEditor) SetPoints(points int) {
	e.mu.Lock()
	e.points = points
	e.mu.Unlock()
}

func (e *RoomEditor) Points() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.points
}

func (e *RoomEditor) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastError
}

func (e *RoomEditor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Items returns a copy of the current merged item list in catalog order.
func (e *RoomEditor) Items() []models.RoomItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneItems(e.items)
}

// PlacedItems are owned items currently in the room.
func (e *RoomEditor) PlacedItems() []models.RoomItem {
	return e.filter(func(item models.RoomItem) bool { return item.Owned && item.Placed })
}

// StashedItems are owned items not currently in the room.
func (e *RoomEditor) StashedItems() []models.RoomItem {
	return e.filter(func(item models.RoomItem) bool { return item.Owned && !item.Placed })
}

// ShopItems are items the user does not own yet.
func (e *RoomEditor) ShopItems() []models.RoomItem {
	return e.filter(func(item models.RoomItem) bool { return !item.Owned })
}

func (e *RoomEditor) filter(keep func(models.RoomItem) bool) []models.RoomItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.RoomItem
	for _, item := range e.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// TogglePlacement flips placed for an owned item, optimistically, then
// persists. A failed save restores the pre-toggle snapshot. Unowned ids and
// toggles while a save is in flight are no-ops.
func (e *RoomEditor) TogglePlacement(ctx context.Context, itemID string) error {
	e.mu.Lock()
	idx := findItem(e.items, itemID)
	if idx < 0 || !e.items[idx].Owned || e.saving {
		e.mu.Unlock()
		return nil
	}
	previous := cloneItems(e.items)
	e.items[idx].Placed = !e.items[idx].Placed
	e.mu.Unlock()

	return e.persist(ctx, previous)
}

// Purchase buys a shop item. Already-owned ids and overlapping purchases are
// no-ops; an unaffordable item fails locally without a network call. Purchases
// are never optimistic: the server's response replaces points and items.
func (e *RoomEditor) Purchase(ctx context.Context, itemID string) error {
	e.mu.Lock()
	if e.purchasingID != "" {
		e.mu.Unlock()
		return nil
	}
	idx := findItem(e.items, itemID)
	if idx < 0 || e.items[idx].Owned {
		e.mu.Unlock()
		return nil
	}
	if e.userID == "" {
		e.lastError = "Log in to buy bathroom upgrades."
		e.mu.Unlock()
		return errors.New("no user session")
	}
	if e.items[idx].Cost > e.points {
		e.lastError = "Not enough points yet, keep grinding!"
		e.mu.Unlock()
		return fmt.Errorf("item %s costs %d, balance is %d", itemID, e.items[idx].Cost, e.points)
	}
	e.purchasingID = itemID
	e.mu.Unlock()

	user, err := e.api.PurchaseRoomItem(ctx, e.userID, itemID)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.purchasingID = ""
	if err != nil {
		e.lastError = userMessage(err, "Could not complete purchase.")
		return err
	}
	e.applyUserLocked(user)
	e.lastError = ""
	return nil
}

// BeginDrag starts a drag on pointer-down over a placed item. The pre-drag
// item list is snapshotted for rollback if the eventual save fails.
func (e *RoomEditor) BeginDrag(itemID string, pointerX, pointerY float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := findItem(e.items, itemID)
	if idx < 0 {
		return false
	}
	if !e.drag.Begin(e.items[idx], pointerX, pointerY) {
		return false
	}
	e.dragSnapshot = cloneItems(e.items)
	return true
}

// DragTo repositions the dragged item for a pointer-move. Local only, no
// network traffic per move.
func (e *RoomEditor) DragTo(pointerX, pointerY float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	x, y, ok := e.drag.Move(pointerX, pointerY)
	if !ok {
		return
	}
	idx := findItem(e.items, e.drag.ItemID())
	if idx < 0 {
		return
	}
	e.items[idx].X = x
	e.items[idx].Y = y
	e.items[idx].Placed = true
}

// EndDrag handles pointer-up and pointer-leave identically. A real drag
// persists the full layout; a plain click toggles placement instead.
func (e *RoomEditor) EndDrag(ctx context.Context) error {
	e.mu.Lock()
	itemID, moved := e.drag.End()
	snapshot := e.dragSnapshot
	e.dragSnapshot = nil
	e.mu.Unlock()

	if itemID == "" {
		return nil
	}
	if moved {
		return e.persist(ctx, snapshot)
	}
	return e.TogglePlacement(ctx, itemID)
}

// Dragging reports whether a drag is in progress.
func (e *RoomEditor) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drag.Active()
}

// persist sends the current full layout. previous is the known-good item list
// restored on failure; nil means nothing to roll back. Only the newest issued
// save may touch state when its response lands.
func (e *RoomEditor) persist(ctx context.Context, previous []models.RoomItem) error {
	e.mu.Lock()
	if e.userID == "" {
		if previous != nil {
			e.items = previous
		}
		e.lastError = "Log in to save your layout changes."
		e.mu.Unlock()
		return errors.New("no user session")
	}
	e.saveSeq++
	seq := e.saveSeq
	payload := ToLayoutPayload(e.items)
	e.saving = true
	e.mu.Unlock()

	user, err := e.api.SaveRoomLayout(ctx, e.userID, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.saveSeq {
		// A newer save owns the state now; this response is stale either way.
		return err
	}
	e.saving = false
	if err != nil {
		if previous != nil {
			e.items = previous
		}
		e.lastError = userMessage(err, "Could not save your layout right now.")
		return err
	}
	e.applyUserLocked(user)
	e.lastError = ""
	return nil
}

func (e *RoomEditor) setError(message string) {
	e.mu.Lock()
	e.lastError = message
	e.mu.Unlock()
}

func findItem(items []models.RoomItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func cloneItems(items []models.RoomItem) []models.RoomItem {
	out := make([]models.RoomItem, len(items))
	copy(out, items)
	return out
}

// userMessage maps an error to what the user should see: backend detail when
// the backend sent one, the given fallback otherwise.
func userMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
