package cpu

const (
	MEMORY_SIZE = 128 // Words of data memory.
)

// Memory is the flat data memory, shared with the stack.
type Memory [MEMORY_SIZE]int64

// Valid returns true if addr is a memory address.
func (mem *Memory) Valid(addr int64) bool {
	return addr >= 0 && addr < MEMORY_SIZE
}

// Read a word of memory.
func (mem *Memory) Read(addr int64) (value int64, err error) {
	if !mem.Valid(addr) {
		err = ErrMemoryBounds(addr)
		return
	}

	value = mem[addr]
	return
}

// Write a word of memory.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	if !mem.Valid(addr) {
		err = ErrMemoryBounds(addr)
		return
	}

	mem[addr] = value
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}
