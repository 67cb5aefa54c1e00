package common

// Chunk partitions items into ceil(len(items)/size) consecutive slices of at
// most size elements, preserving order. The returned slices alias the input.
// An empty input yields no chunks. size must be at least 1.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		panic("common: chunk size must be at least 1")
	}
	if len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
