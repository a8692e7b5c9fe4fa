package writer

// Memory keeps the last document written to it.
type Memory struct {
	Buf []byte
}

func (m *Memory) Write(doc []byte) error {
	m.Buf = append(m.Buf[:0], doc...)
	return nil
}
