// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

// Stack is a generic LIFO used for state navigation history.
// Pop and Peek on an empty stack return the zero value.
type Stack[T any] struct {
	items []T
}

// Push places an element on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (item T) {
	n := len(s.items)
	if n == 0 {
		return
	}
	item = s.items[n-1]
	s.items = s.items[:n-1]
	return
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (item T) {
	if n := len(s.items); n > 0 {
		item = s.items[n-1]
	}
	return
}

// Len reports how many elements the stack holds.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear drops every element.
func (s *Stack[T]) Clear() {
	s.items = nil
}
