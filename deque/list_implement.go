package deque

import (
	"poisson/model"
)

type ListDeque struct {
	head *node
	tail *node

	size int
}

type node struct {
	val  model.Point
	pre  *node
	next *node
}

// 工厂方法，head 和 tail 为哨兵节点
func NewListDeque() *ListDeque {
	head := &node{}
	tail := &node{}
	head.next = tail
	tail.pre = head

	return &ListDeque{
		head: head,
		tail: tail,
	}
}

func (ld *ListDeque) Size() int {
	return ld.size
}

func (ld *ListDeque) IsEmpty() bool {
	return ld.size == 0
}

func (ld *ListDeque) Get(i int) model.Point {
	if i < 0 || i >= ld.size {
		panic("index out of length")
	}
	iter := ld.head.next
	for k := 0; k < i; k++ {
		iter = iter.next
	}
	return iter.val
}

func (ld *ListDeque) Traverse(f func(i int, p model.Point)) {
	k := 0
	for iter := ld.head.next; iter != ld.tail; iter = iter.next {
		f(k, iter.val)
		k++
	}
}

func (ld *ListDeque) Slice() model.Series {
	return collect(ld)
}

func (ld *ListDeque) AddFirst(p model.Point) {
	n := &node{val: p, pre: ld.head, next: ld.head.next}
	ld.head.next.pre = n
	ld.head.next = n
	ld.size++
}

func (ld *ListDeque) AddLast(p model.Point) {
	n := &node{val: p, pre: ld.tail.pre, next: ld.tail}
	ld.tail.pre.next = n
	ld.tail.pre = n
	ld.size++
}

func (ld *ListDeque) RemoveFirst() (model.Point, bool) {
	if ld.size == 0 {
		return model.Point{}, false
	}
	n := ld.head.next
	ld.head.next = n.next
	n.next.pre = ld.head
	ld.size--
	return n.val, true
}

func (ld *ListDeque) RemoveLast() (model.Point, bool) {
	if ld.size == 0 {
		return model.Point{}, false
	}
	n := ld.tail.pre
	ld.tail.pre = n.pre
	n.pre.next = ld.tail
	ld.size--
	return n.val, true
}
