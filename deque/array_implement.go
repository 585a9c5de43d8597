package deque

import (
	"poisson/model"
)

const (
	// 数组大小基数
	base = 8
)

// 两个数组一个负责头部操作，一个负责尾部操作
// head 中的元素从后往前填充，tail 中的元素从前往后填充
type ArrDeque struct {
	head arrStruct
	tail arrStruct

	// 元素个数
	size int
}

type arrStruct struct {
	arr   []model.Point
	start int
	end   int
}

func (a *arrStruct) len() int {
	return a.end - a.start
}

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity <= 0 {
		capacity = base
	}
	remainder := capacity % base
	if remainder != 0 {
		capacity = capacity - remainder + base
	}
	return &ArrDeque{
		head: arrStruct{
			arr:   make([]model.Point, capacity),
			start: capacity,
			end:   capacity,
		},
		tail: arrStruct{
			arr:   make([]model.Point, capacity),
			start: 0,
			end:   0,
		},
	}
}

func (ad *ArrDeque) Size() int {
	return ad.size
}

func (ad *ArrDeque) IsEmpty() bool {
	return ad.size == 0
}

func (ad *ArrDeque) Get(i int) model.Point {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	l1 := ad.head.len()
	if i < l1 {
		return ad.head.arr[ad.head.start+i]
	}
	return ad.tail.arr[ad.tail.start+i-l1]
}

func (ad *ArrDeque) Traverse(f func(i int, p model.Point)) {
	k := 0
	for z := ad.head.start; z < ad.head.end; z++ {
		f(k, ad.head.arr[z])
		k++
	}
	for z := ad.tail.start; z < ad.tail.end; z++ {
		f(k, ad.tail.arr[z])
		k++
	}
}

func (ad *ArrDeque) Slice() model.Series {
	return collect(ad)
}

func (ad *ArrDeque) AddFirst(p model.Point) {
	if ad.head.start == 0 { // 头部数组已满，扩容并把已有元素移到新数组的尾部
		n := len(ad.head.arr)
		if n == 0 {
			n = base
		}
		arr := make([]model.Point, 2*n)
		l := ad.head.len()
		copy(arr[len(arr)-l:], ad.head.arr[ad.head.start:ad.head.end])
		ad.head.arr = arr
		ad.head.start, ad.head.end = len(arr)-l, len(arr)
	}
	ad.head.start--
	ad.head.arr[ad.head.start] = p
	ad.size++
}

func (ad *ArrDeque) AddLast(p model.Point) {
	if ad.tail.end == len(ad.tail.arr) {
		ad.tail.arr = append(ad.tail.arr, p)
		ad.tail.arr = ad.tail.arr[:cap(ad.tail.arr)]
	} else {
		ad.tail.arr[ad.tail.end] = p
	}
	ad.tail.end++
	ad.size++
}

func (ad *ArrDeque) RemoveFirst() (model.Point, bool) {
	if ad.size == 0 {
		return model.Point{}, false
	}
	ad.size--
	if ad.head.len() > 0 {
		p := ad.head.arr[ad.head.start]
		ad.head.start++
		return p, true
	}
	p := ad.tail.arr[ad.tail.start]
	ad.tail.start++
	if ad.tail.len() == 0 {
		ad.tail.start, ad.tail.end = 0, 0
	}
	return p, true
}

func (ad *ArrDeque) RemoveLast() (model.Point, bool) {
	if ad.size == 0 {
		return model.Point{}, false
	}
	ad.size--
	if ad.tail.len() > 0 {
		ad.tail.end--
		p := ad.tail.arr[ad.tail.end]
		if ad.tail.len() == 0 {
			ad.tail.start, ad.tail.end = 0, 0
		}
		return p, true
	}
	ad.head.end--
	p := ad.head.arr[ad.head.end]
	if ad.head.len() == 0 {
		ad.head.start, ad.head.end = len(ad.head.arr), len(ad.head.arr)
	}
	return p, true
}
