/**
 *
 * 双端队列，元素类型为网格点 model.Point
 * 用于在数值解序列前后补充边界点，数组实现具有更好的局部性，链表实现用于对照
 *
 */

package deque

import "poisson/model"

type Deque interface {
	// 队列的长度
	Size() int

	// 获取队列中对应下标的元素
	Get(i int) model.Point

	// 正向遍历
	Traverse(f func(i int, p model.Point))

	// 在队列结尾增加一个元素
	AddLast(p model.Point)

	// 在队列结尾删除一个元素
	RemoveLast() (model.Point, bool)

	// 在队列头部增加一个元素
	AddFirst(p model.Point)

	// 在队列头部删除一个元素
	RemoveFirst() (model.Point, bool)

	// 按顺序导出全部元素
	Slice() model.Series

	IsEmpty() bool
}

// 将队列按顺序拷贝到新的序列中
func collect(d Deque) model.Series {
	s := make(model.Series, 0, d.Size())
	d.Traverse(func(_ int, p model.Point) {
		s = append(s, p)
	})
	return s
}
