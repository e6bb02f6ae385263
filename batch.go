package ssd1351

// Batcher slices pixel payloads into transfers of at most Max bytes.
type Batcher struct {
	// Max is the largest transfer in bytes. Values below 1 disable slicing.
	Max int
}

// Chunks splits data into consecutive chunks of Max bytes, the last one
// holding the remainder. The chunks share data's backing array.
func (b Batcher) Chunks(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	if b.Max <= 0 || len(data) <= b.Max {
		return [][]byte{data}
	}

	chunks := make([][]byte, 0, (len(data)+b.Max-1)/b.Max)
	for len(data) > b.Max {
		chunks = append(chunks, data[:b.Max:b.Max])
		data = data[b.Max:]
	}
	return append(chunks, data)
}

// Write sends data as a sequence of data transfers.
func (b Batcher) Write(c Conn, data []byte) error {
	for _, chunk := range b.Chunks(data) {
		if err := c.Data(chunk...); err != nil {
			return err
		}
	}
	return nil
}

// Repeat sends n copies of a 2 byte pixel. Transfers are kept to a whole
// number of pixels, so a transfer may be one byte shorter than Max.
func (b Batcher) Repeat(c Conn, pattern [2]byte, n int) error {
	if n <= 0 {
		return nil
	}

	var (
		total = 2 * n
		size  = total
	)
	if b.Max > 0 && size > b.Max {
		size = max(b.Max&^1, 2)
	}

	buf := make([]byte, size)
	for i := 0; i < size; i += 2 {
		buf[i], buf[i+1] = pattern[0], pattern[1]
	}
	for total > 0 {
		l := min(total, size)
		if err := c.Data(buf[:l]...); err != nil {
			return err
		}
		total -= l
	}
	return nil
}
