// Package model holds the workspace/item entities and the collection
// operations that keep their slot and selection invariants.
//
// The package never tracks cursors. Callers own the "current" indices and
// must clamp them after Remove and re-run Select after every mutation.
package model

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an index does not address a member
// of the collection.
var ErrIndexOutOfRange = errors.New("index out of range")

// Slotted is implemented by pointers to entities that live in a
// slot-ordered collection.
type Slotted[T any] interface {
	*T
	SlotIndex() int
	SetSlot(int)
	SetSelected(bool)
}

// Insert appends v to list and assigns it the last slot.
func Insert[T any, P Slotted[T]](list []T, v T) []T {
	list = append(list, v)
	P(&list[len(list)-1]).SetSlot(len(list) - 1)
	return list
}

// Remove deletes the entity at index and shifts every following slot
// down by one.
func Remove[T any, P Slotted[T]](list []T, index int) ([]T, error) {
	if index < 0 || index >= len(list) {
		return list, fmt.Errorf("remove %d of %d: %w", index, len(list), ErrIndexOutOfRange)
	}
	list = append(list[:index], list[index+1:]...)
	for i := index; i < len(list); i++ {
		P(&list[i]).SetSlot(i)
	}
	return list, nil
}

// Edit applies fn to the entity at index in place.
func Edit[T any, P Slotted[T]](list []T, index int, fn func(P)) error {
	if index < 0 || index >= len(list) {
		return fmt.Errorf("edit %d of %d: %w", index, len(list), ErrIndexOutOfRange)
	}
	fn(P(&list[index]))
	return nil
}

// Move swaps the entities at from and to and re-slots both.
func Move[T any, P Slotted[T]](list []T, from, to int) error {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return fmt.Errorf("move %d to %d of %d: %w", from, to, len(list), ErrIndexOutOfRange)
	}
	list[from], list[to] = list[to], list[from]
	P(&list[from]).SetSlot(from)
	P(&list[to]).SetSlot(to)
	return nil
}

// Reslot rewrites every slot to match storage order.
func Reslot[T any, P Slotted[T]](list []T) {
	for i := range list {
		P(&list[i]).SetSlot(i)
	}
}

// Select marks the entity whose slot equals target as selected and clears
// the flag on every other member. A target outside the collection clears
// every flag.
func Select[T any, P Slotted[T]](list []T, target int) {
	for i := range list {
		p := P(&list[i])
		p.SetSelected(p.SlotIndex() == target)
	}
}
