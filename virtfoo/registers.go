package virtfoo

/*
 Register layout
 ------------------------------------------------------------------------
 | Register   | Offset | RW | Description                               |
 ------------------------------------------------------------------------
 | ID         | 0x0    | RO | Chip ID, always 0xf001                    |
 | INIT       | 0x4    | RW | bit0: chip enable                         |
 | COMMAND    | 0x8    | RW | Command buffer data                       |
 | INT STATUS | 0xc    | RO | bit0: device is enabled (never set)       |
 |            |        |    | bit1: cmd buffer is enqueued              |
 ------------------------------------------------------------------------
*/

const (
	// RegionSize is the length of the MMIO window claimed by the device
	RegionSize = 0x200

	// register offsets:
	regIDAddress        = 0x0
	regInitAddress      = 0x4
	regCmdAddress       = 0x8
	regIntStatusAddress = 0xc

	// ChipID is returned by the ID register
	ChipID = 0xf001

	// ChipEnable - INIT bit 0
	ChipEnable = 1 << 0

	// IntEnabled - INT STATUS bit 0. Documented, but nothing sets it.
	IntEnabled = 1 << 0

	// IntBufferEnqueued - INT STATUS bit 1
	IntBufferEnqueued = 1 << 1
)

// Register names one of the device registers
type Register int

// registers:
const (
	RegUnknown Register = iota
	RegID
	RegInit
	RegCmd
	RegIntStatus
)

// Decode maps a byte offset inside the MMIO window to a register.
// Access width plays no part in decoding.
func Decode(offset uint64) Register {
	switch offset {
	case regIDAddress:
		return RegID
	case regInitAddress:
		return RegInit
	case regCmdAddress:
		return RegCmd
	case regIntStatusAddress:
		return RegIntStatus
	default:
		return RegUnknown
	}
}

// Offset returns the byte offset of r, or false for RegUnknown
func (r Register) Offset() (uint64, bool) {
	switch r {
	case RegID:
		return regIDAddress, true
	case RegInit:
		return regInitAddress, true
	case RegCmd:
		return regCmdAddress, true
	case RegIntStatus:
		return regIntStatusAddress, true
	default:
		return 0, false
	}
}

// Writable reports whether writes to r are stored
func (r Register) Writable() bool {
	return r == RegInit || r == RegCmd
}

func (r Register) String() string {
	switch r {
	case RegID:
		return "ID"
	case RegInit:
		return "INIT"
	case RegCmd:
		return "CMD"
	case RegIntStatus:
		return "INT_STATUS"
	default:
		return "UNKNOWN"
	}
}
