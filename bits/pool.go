package bits

import "sync"

// writerPool recycles BitVectorWriter backing arrays across Pack calls, the
// way a hot path reuses a bytes.Buffer instead of allocating one per call.
var writerPool = sync.Pool{
	New: func() any { return NewBitVectorWriter(256) },
}

// GetWriter returns a reset BitVectorWriter from the shared pool.
func GetWriter() *BitVectorWriter {
	return writerPool.Get().(*BitVectorWriter)
}

// PutWriter returns w to the shared pool. Callers must not use w (or any
// BitSlice obtained from w.Bits() that still borrows its backing array)
// after calling PutWriter.
func PutWriter(w *BitVectorWriter) {
	w.Reset()
	writerPool.Put(w)
}
