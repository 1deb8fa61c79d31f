package ui

import "sync"

const maxPlayers = 4

// SharedInput holds controller state as button bitmasks written by the
// Ebiten thread and read from the input-state callback on the emulation
// goroutine.
type SharedInput struct {
	mu      sync.Mutex
	buttons [maxPlayers]uint32
}

// Set updates the button bitmask for a player from the Ebiten thread.
func (si *SharedInput) Set(player int, buttons uint32) {
	if player < 0 || player >= maxPlayers {
		return
	}
	si.mu.Lock()
	si.buttons[player] = buttons
	si.mu.Unlock()
}

// Pressed reports whether the given button bit is down for a player.
func (si *SharedInput) Pressed(player, id int) bool {
	if player < 0 || player >= maxPlayers || id < 0 || id > 31 {
		return false
	}
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.buttons[player]&(1<<uint(id)) != 0
}

// SharedFramebuffer holds the most recent converted frame, written from
// the core's video callback and read by Ebiten's Draw() method. Separate
// write and read buffers let Draw use a stable snapshot while the next
// frame lands. The video callback's pixel slice is reused by the core
// every frame, so Update must copy it.
type SharedFramebuffer struct {
	mu          sync.Mutex
	writePixels []uint16
	readPixels  []uint16
	width       int
	height      int
}

// NewSharedFramebuffer creates a framebuffer sized for the given maximum
// frame area in pixels.
func NewSharedFramebuffer(maxPixels int) *SharedFramebuffer {
	return &SharedFramebuffer{
		writePixels: make([]uint16, maxPixels),
		readPixels:  make([]uint16, maxPixels),
	}
}

// Update copies one delivered frame.
func (sf *SharedFramebuffer) Update(pixels []uint16, width, height int) {
	sf.mu.Lock()
	n := width * height
	if n > len(sf.writePixels) {
		n = len(sf.writePixels)
	}
	if n > len(pixels) {
		n = len(pixels)
	}
	copy(sf.writePixels[:n], pixels[:n])
	sf.width = width
	sf.height = height
	sf.mu.Unlock()
}

// Read returns a snapshot of the current frame. The snapshot is copied
// into the read buffer under the lock, then returned for use without
// holding the lock.
func (sf *SharedFramebuffer) Read() (pixels []uint16, width, height int) {
	sf.mu.Lock()
	width = sf.width
	height = sf.height
	n := width * height
	if n > len(sf.writePixels) {
		n = len(sf.writePixels)
	}
	if n > 0 {
		copy(sf.readPixels[:n], sf.writePixels[:n])
	}
	pixels = sf.readPixels
	sf.mu.Unlock()
	return
}
