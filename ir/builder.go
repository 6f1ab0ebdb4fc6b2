package ir

// Builder constructs a Function programmatically for tests and the
// CLI's synthetic-program mode. It bundles the trivial one-slot-per-
// value frame allocator §9 allows for bring-up ("An alternative
// systems-language implementation may bundle a trivial single-pass
// allocator ... for bring-up, replacing it later with the productive
// allocator"). Slot 0..7 is reserved; offset 8 is ACC, also reserved
// from general allocation here.
type Builder struct {
	Fn       *Function
	nextOff  int16
	nextBlk  int
}

// NewBuilder starts a new function with the given name, type, and
// function-table index.
func NewBuilder(name string, typ Type, index uint32) *Builder {
	return &Builder{
		Fn: &Function{
			Name:  name,
			Typ:   typ,
			Index: index,
		},
		nextOff: 16, // past reserved slots 0..7 and ACC region
	}
}

// Block starts a new basic block and returns it.
func (b *Builder) Block() *Block {
	blk := &Block{ID: b.nextBlk}
	b.nextBlk++
	b.Fn.Blocks = append(b.Fn.Blocks, blk)
	return blk
}

// Edge records a control-flow edge between two block ids.
func (b *Builder) Edge(from, to int) {
	b.Fn.Edges = append(b.Fn.Edges, Edge{From: from, To: to})
}

// Alloc assigns the next free frame slot of the given type's storage
// width (minimum 4 bytes, so 64-bit values stay naturally aligned).
func (b *Builder) Alloc(t Type) Reg {
	width := int16(4)
	if t.Width() == 64 {
		width = 8
	}
	// keep naturally aligned
	if b.nextOff%width != 0 {
		b.nextOff += width - (b.nextOff % width)
	}
	r := Reg{Typ: t, Offset: b.nextOff}
	b.nextOff += width
	return r
}

// Acc returns the reserved accumulator register of the given type.
func (b *Builder) Acc(t Type) Reg { return Reg{Typ: t, Offset: 8} }

// FrameSize finalises and returns the frame size computed so far.
func (b *Builder) FrameSize() int16 { return b.nextOff }

// Finish stamps the computed frame size onto the function and returns
// it, ready for emit.Function.
func (b *Builder) Finish() *Function {
	b.Fn.FrameSize = b.nextOff
	return b.Fn
}

// Append adds an instruction to a block.
func Append(blk *Block, inst Instruction) {
	blk.Insts = append(blk.Insts, inst)
}
