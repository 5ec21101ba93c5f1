package domain

// DevicePtr is an opaque handle to device memory. The zero value is never a valid allocation.
type DevicePtr uint64

// Binding is a named input or output slot of a compiled artifact.
type Binding struct {
	Name    string
	IsInput bool
	Type    DataType
	// Dims may contain DynamicDim for inputs whose shape is chosen per execution.
	Dims Dims
}

// DeviceInfo identifies the device a plan or timing cache was produced for.
type DeviceInfo struct {
	Name  string `msgpack:"name"`
	Arch  string `msgpack:"arch"`
	Cores int    `msgpack:"cores"`
}

// ID returns a stable identity string for the device.
func (d DeviceInfo) ID() string {
	return d.Name + "/" + d.Arch
}
