package aggregate

import "sync"

// Range is a contiguous half-open slice [Start, End) of the input stream.
type Range struct {
	Start int
	End   int
}

// Len returns the number of records in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits [0, n) into min(workers, n) contiguous, disjoint ranges whose
// lengths differ by at most one. It returns nil for an empty input.
func Partition(n, workers int) []Range {
	if n <= 0 || workers <= 0 {
		return nil
	}
	workers = min(workers, n)
	parts := make([]Range, workers)
	for i := range parts {
		parts[i] = Range{
			Start: i * n / workers,
			End:   (i + 1) * n / workers,
		}
	}
	return parts
}

// forkJoin runs work once per range and returns the results in range order.
// Each goroutine writes only its own result slot.
func forkJoin[T any](parts []Range, work func(Range) T) []T {
	results := make([]T, len(parts))
	if len(parts) == 1 {
		results[0] = work(parts[0])
		return results
	}

	var wg sync.WaitGroup
	wg.Add(len(parts))
	for i, r := range parts {
		go func() {
			defer wg.Done()
			results[i] = work(r)
		}()
	}
	wg.Wait()
	return results
}
