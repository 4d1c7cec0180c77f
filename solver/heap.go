/******************************************************************************************[Heap.h]
Copyright (c) 2003-2006, Niklas Een, Niklas Sorensson
Copyright (c) 2007-2010, Niklas Sorensson

Permission is hereby granted, free of charge, to any person obtaining a copy of this software and
associated documentation files (the "Software"), to deal in the Software without restriction,
including without limitation the rights to use, copy, modify, merge, publish, distribute,
sublicense, and/or sell copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all copies or
substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT
NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM,
DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT
OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
**************************************************************************************************/

package solver

// A binary heap over variable ids with support for decrease key,
// ordered by activity with ties broken by lowest id. This is strongly
// inspired from Minisat's mtl/Heap.h.

type varHeap struct {
	activity []float64 // Activity of each variable. This is the store's slice, not a copy.
	content  []Var     // Actual content.
	indices  []int     // Reverse heap, i.e position of each var in content; -1 means absence.
}

// newVarHeap builds a heap containing every variable in [1, nbVars].
func newVarHeap(activity []float64, nbVars int) *varHeap {
	h := &varHeap{
		activity: activity,
		indices:  make([]int, nbVars+1),
	}
	for i := range h.indices {
		h.indices[i] = -1
	}
	for v := Var(1); v <= Var(nbVars); v++ {
		h.insert(v)
	}
	return h
}

func (h *varHeap) lt(i, j Var) bool {
	return h.activity[i] > h.activity[j] || (h.activity[i] == h.activity[j] && i < j)
}

// Traversal functions.
func left(i int) int   { return i*2 + 1 }
func right(i int) int  { return (i + 1) * 2 }
func parent(i int) int { return (i - 1) >> 1 }

func (h *varHeap) percolateUp(i int) {
	x := h.content[i]
	p := parent(i)
	for i != 0 && h.lt(x, h.content[p]) {
		h.content[i] = h.content[p]
		h.indices[h.content[p]] = i
		i = p
		p = parent(p)
	}
	h.content[i] = x
	h.indices[x] = i
}

func (h *varHeap) percolateDown(i int) {
	x := h.content[i]
	for left(i) < len(h.content) {
		var child int
		if right(i) < len(h.content) && h.lt(h.content[right(i)], h.content[left(i)]) {
			child = right(i)
		} else {
			child = left(i)
		}
		if !h.lt(h.content[child], x) {
			break
		}
		h.content[i] = h.content[child]
		h.indices[h.content[i]] = i
		i = child
	}
	h.content[i] = x
	h.indices[x] = i
}

func (h *varHeap) empty() bool { return len(h.content) == 0 }

func (h *varHeap) contains(v Var) bool {
	return h.indices[v] >= 0
}

// decrease notifies the heap that v's activity grew, moving it up.
func (h *varHeap) decrease(v Var) {
	h.percolateUp(h.indices[v])
}

func (h *varHeap) insert(v Var) {
	h.indices[v] = len(h.content)
	h.content = append(h.content, v)
	h.percolateUp(h.indices[v])
}

func (h *varHeap) removeMin() Var {
	x := h.content[0]
	h.content[0] = h.content[len(h.content)-1]
	h.indices[h.content[0]] = 0
	h.indices[x] = -1
	h.content = h.content[:len(h.content)-1]
	if len(h.content) > 1 {
		h.percolateDown(0)
	}
	return x
}
