package jsdev

// Channel is one device axis read as an unsigned analog value in
// 0..Resolution-1, centred on Resolution/2.
type Channel struct {
	dev   *Device
	index int
}

// Read returns the latest axis value. It never blocks.
func (c *Channel) Read() uint16 {
	return scale(c.dev.Raw(c.index))
}

// Index returns the device axis number.
func (c *Channel) Index() int { return c.index }
