package dataset

import (
	roaring "github.com/RoaringBitmap/roaring"
)

// LabelBitmaps holds roaring bitmaps keyed by label id.
// Example: intent id -> bitmap of example indices carrying that intent.
type LabelBitmaps struct {
	Intent map[int]*roaring.Bitmap
	Slot   map[int]*roaring.Bitmap
}

func NewLabelBitmaps() *LabelBitmaps {
	return &LabelBitmaps{
		Intent: make(map[int]*roaring.Bitmap),
		Slot:   make(map[int]*roaring.Bitmap),
	}
}

func (lb *LabelBitmaps) AddIntent(label int, example uint32) {
	bm, ok := lb.Intent[label]
	if !ok {
		bm = roaring.New()
		lb.Intent[label] = bm
	}
	bm.Add(example)
}

func (lb *LabelBitmaps) AddSlot(label int, example uint32) {
	bm, ok := lb.Slot[label]
	if !ok {
		bm = roaring.New()
		lb.Slot[label] = bm
	}
	bm.Add(example)
}

// ExamplesWithIntent returns a copy of the bitmap of example indices whose
// intent equals label.
func (lb *LabelBitmaps) ExamplesWithIntent(label int) *roaring.Bitmap {
	return lb.clone(lb.Intent[label])
}

// ExamplesWithSlots returns the intersection of the slot bitmaps: example
// indices containing every one of the given slot labels.
func (lb *LabelBitmaps) ExamplesWithSlots(labels ...int) *roaring.Bitmap {
	if len(labels) == 0 {
		return roaring.New()
	}
	res := lb.clone(lb.Slot[labels[0]])
	for _, l := range labels[1:] {
		bm, ok := lb.Slot[l]
		if !ok {
			// Unknown label: the intersection is empty.
			return roaring.New()
		}
		res.And(bm)
	}
	return res
}

func (lb *LabelBitmaps) clone(b *roaring.Bitmap) *roaring.Bitmap {
	if b == nil {
		return roaring.New()
	}
	c := roaring.New()
	c.Or(b) // copy
	return c
}
