package cpu

// Register is a general purpose register index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_R0 = Register(0) // R0
	REG_R1 = Register(1) // R1
	REG_R2 = Register(2) // R2
	REG_R3 = Register(3) // R3

	REGISTER_COUNT = 4 // Number of general purpose registers.
)

// ParseRegister returns the register for a name, R0 through R3.
func ParseRegister(name string) (reg Register, ok bool) {
	for reg = range Register(REGISTER_COUNT) {
		if reg.String() == name {
			ok = true
			return
		}
	}

	reg = 0
	return
}
