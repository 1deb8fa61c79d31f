package retro

// Region constants for GetRegion.
const (
	RegionNTSC = 0
	RegionPAL  = 1
)

// SerializeSize is not supported; save states have no defined size.
func (c *Core) SerializeSize() int {
	return 0
}

// Serialize is not supported.
func (c *Core) Serialize(data []byte) bool {
	return false
}

// Unserialize is not supported.
func (c *Core) Unserialize(data []byte) bool {
	return false
}

// CheatReset is not supported.
func (c *Core) CheatReset() {
}

// CheatSet is not supported.
func (c *Core) CheatSet(index int, enabled bool, code string) {
}

// GetRegion always reports NTSC; region handling is not supported.
func (c *Core) GetRegion() int {
	return RegionNTSC
}

// GetMemoryData is not supported; no memory regions are exposed.
func (c *Core) GetMemoryData(id int) []byte {
	return nil
}

// GetMemorySize is not supported.
func (c *Core) GetMemorySize(id int) int {
	return 0
}

// SetControllerPortDevice is accepted and ignored.
func (c *Core) SetControllerPortDevice(port, device int) {
}
