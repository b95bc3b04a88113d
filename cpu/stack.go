package cpu

const (
	STACK_TOP = MEMORY_SIZE - 1 // Initial stack pointer; the stack grows down.
)

// Stack is the stack pointer into the top of Memory.
// Pointer is the address the next push writes to.
type Stack struct {
	Pointer int
}

// Push writes value at the stack pointer, then moves the pointer down.
func (s *Stack) Push(mem *Memory, value int64) (ok bool) {
	if s.Full() || s.Pointer > STACK_TOP {
		return
	}

	mem[s.Pointer] = value
	s.Pointer--
	return true
}

// Pop moves the stack pointer up, then reads the value under it.
func (s *Stack) Pop(mem *Memory) (value int64, ok bool) {
	value, ok = s.Peek(mem)
	if ok {
		s.Pointer++
	}
	return
}

// Peek returns the most recently pushed value.
func (s *Stack) Peek(mem *Memory) (value int64, ok bool) {
	if s.Empty() || s.Pointer < -1 {
		return
	}

	return mem[s.Pointer+1], true
}

// Depth returns the number of values on the stack.
func (s *Stack) Depth() int {
	return STACK_TOP - s.Pointer
}

func (s *Stack) Empty() bool {
	return s.Pointer >= STACK_TOP
}

func (s *Stack) Full() bool {
	return s.Pointer < 0
}

func (s *Stack) Reset() {
	s.Pointer = STACK_TOP
}
