package retro

// Input device classes for InputState queries.
const (
	DeviceNone   = 0
	DeviceJoypad = 1
)

// Joypad button IDs for InputState queries with DeviceJoypad.
const (
	JoypadB = iota
	JoypadY
	JoypadSelect
	JoypadStart
	JoypadUp
	JoypadDown
	JoypadLeft
	JoypadRight
	JoypadA
	JoypadX
	JoypadL
	JoypadR
	JoypadL2
	JoypadR2
	JoypadL3
	JoypadR3
)
