package jsdev

// Info holds information about an open joystick device
type Info struct {
	Name    string
	Path    string
	Model   string
	Axes    int
	Buttons int
	Version int32
	AxesMap []int
}
