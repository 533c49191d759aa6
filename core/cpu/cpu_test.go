package cpu

// fakeMemory is a flat 64KB address space, enough for CPU-level unit tests
// without pulling in the real memory-mapper package.
type fakeMemory struct {
	data [65536]uint8
}

func (m *fakeMemory) Read(address uint16) uint8  { return m.data[address] }
func (m *fakeMemory) Write(address uint16, v uint8) { m.data[address] = v }

func (m *fakeMemory) loadAt(addr uint16, program ...uint8) {
	copy(m.data[addr:], program)
}

type fakeIO struct {
	in  map[uint8]uint8
	out map[uint8]uint8
}

func newFakeIO() *fakeIO {
	return &fakeIO{in: map[uint8]uint8{}, out: map[uint8]uint8{}}
}

func (io *fakeIO) In(port uint8) uint8    { return io.in[port] }
func (io *fakeIO) Out(port uint8, v uint8) { io.out[port] = v }

type fakeIRQ struct {
	nmi      bool
	maskable bool
	data     uint8
}

func (f *fakeIRQ) NMIAsserted() bool      { return f.nmi }
func (f *fakeIRQ) AckNMI()                { f.nmi = false }
func (f *fakeIRQ) MaskableAsserted() bool { return f.maskable }
func (f *fakeIRQ) Data() uint8            { return f.data }

func newTestCPU() (*CPU, *fakeMemory, *fakeIO, *fakeIRQ) {
	mem := &fakeMemory{}
	io := newFakeIO()
	irq := &fakeIRQ{}
	c := New(mem, io, irq)
	return c, mem, io, irq
}
