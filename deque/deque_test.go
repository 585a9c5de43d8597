package deque

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poisson/model"
)

func implementations() map[string]func() Deque {
	return map[string]func() Deque{
		"arr":  func() Deque { return NewArrDeque(3) },
		"list": func() Deque { return NewListDeque() },
	}
}

func pt(x float64) model.Point {
	return model.Point{X: x, U: x * 10}
}

func TestDeque_AddFirstAddLast(t *testing.T) {
	for name, newDeque := range implementations() {
		t.Run(name, func(t *testing.T) {
			d := newDeque()
			require.True(t, d.IsEmpty())

			// 超过初始容量，触发扩容
			for i := 1; i <= 20; i++ {
				d.AddLast(pt(float64(i)))
			}
			for i := 0; i >= -20; i-- {
				d.AddFirst(pt(float64(i)))
			}
			require.Equal(t, 41, d.Size())

			s := d.Slice()
			require.Len(t, s, 41)
			for i, p := range s {
				assert.Equal(t, float64(i-20), p.X)
				assert.Equal(t, d.Get(i), p)
			}
		})
	}
}

func TestDeque_Remove(t *testing.T) {
	for name, newDeque := range implementations() {
		t.Run(name, func(t *testing.T) {
			d := newDeque()
			_, ok := d.RemoveFirst()
			require.False(t, ok)
			_, ok = d.RemoveLast()
			require.False(t, ok)

			d.AddFirst(pt(2))
			d.AddFirst(pt(1))
			d.AddLast(pt(3))

			// 头部元素耗尽后从尾部数组取
			p, ok := d.RemoveFirst()
			require.True(t, ok)
			assert.Equal(t, pt(1), p)
			p, ok = d.RemoveFirst()
			require.True(t, ok)
			assert.Equal(t, pt(2), p)
			p, ok = d.RemoveFirst()
			require.True(t, ok)
			assert.Equal(t, pt(3), p)
			require.True(t, d.IsEmpty())

			// 尾部元素耗尽后从头部数组取
			d.AddFirst(pt(5))
			d.AddFirst(pt(4))
			p, ok = d.RemoveLast()
			require.True(t, ok)
			assert.Equal(t, pt(5), p)
			p, ok = d.RemoveLast()
			require.True(t, ok)
			assert.Equal(t, pt(4), p)
			require.True(t, d.IsEmpty())

			d.AddLast(pt(7))
			assert.Equal(t, model.Series{pt(7)}, d.Slice())
		})
	}
}

func TestArrDeque_GetOutOfRange(t *testing.T) {
	d := NewArrDeque(8)
	d.AddLast(pt(1))
	assert.Panics(t, func() { d.Get(1) })
	assert.Panics(t, func() { d.Get(-1) })
}

func BenchmarkArrDeque_AddFirst(b *testing.B) {
	d := NewArrDeque(4000)
	for i := 0; i < b.N; i++ {
		d.AddFirst(pt(1))
		d.RemoveFirst()
	}
}

func BenchmarkListDeque_AddLast(b *testing.B) {
	d := NewListDeque()
	for i := 0; i < b.N; i++ {
		d.AddLast(pt(1))
		d.RemoveLast()
	}
}
