package xeno

import (
	"fmt"
	"unsafe"
)

const (
	estimatedValueBytes        = 24
	estimatedStringHeaderBytes = 16
	estimatedSliceBaseBytes    = 24
	estimatedMapBaseBytes      = 48
	estimatedMapEntryBytes     = 32
	estimatedCallFrameBytes    = 32
	estimatedFunctionBytes     = 64
)

// memoryEstimator approximates retained bytes. Values share backing storage
// after assignment, so each slice and mapping is counted once.
type memoryEstimator struct {
	seenMaps   map[*Mapping]struct{}
	seenSlices map[*Value]struct{}
}

func newMemoryEstimator() *memoryEstimator {
	return &memoryEstimator{
		seenMaps:   make(map[*Mapping]struct{}),
		seenSlices: make(map[*Value]struct{}),
	}
}

func (exec *Execution) checkMemory() error {
	if exec.memoryQuota <= 0 {
		return nil
	}
	used := exec.estimateMemoryUsage()
	if used > exec.memoryQuota {
		exec.logger.Debug().Int("estimated_bytes", used).Int("quota", exec.memoryQuota).Msg("memory quota exceeded")
		return fmt.Errorf("%w (%d bytes)", errMemoryQuotaExceeded, exec.memoryQuota)
	}
	return nil
}

func (exec *Execution) estimateMemoryUsage() int {
	est := newMemoryEstimator()
	total := estimatedMapBaseBytes + exec.vars.Len()*estimatedMapEntryBytes
	for name, val := range exec.vars.values {
		total += estimatedStringHeaderBytes + len(name)
		total += est.value(val)
	}
	total += estimatedSliceBaseBytes
	for _, val := range exec.inputs {
		total += est.value(val)
	}
	total += est.strings(exec.output)
	total += est.strings(exec.trace)
	total += len(exec.callStack) * estimatedCallFrameBytes
	total += len(exec.functions) * estimatedFunctionBytes
	return total
}

func (est *memoryEstimator) strings(lines []string) int {
	size := estimatedSliceBaseBytes
	for _, line := range lines {
		size += estimatedStringHeaderBytes + len(line)
	}
	return size
}

func (est *memoryEstimator) value(val Value) int {
	size := estimatedValueBytes
	switch val.Kind() {
	case KindString:
		size += estimatedStringHeaderBytes + len(val.String())
	case KindSequence:
		seq := val.Sequence()
		size += estimatedSliceBaseBytes
		if len(seq) == 0 {
			return size
		}
		ptr := unsafe.SliceData(seq)
		if _, seen := est.seenSlices[ptr]; seen {
			return size
		}
		est.seenSlices[ptr] = struct{}{}
		for _, elem := range seq {
			size += est.value(elem)
		}
	case KindMapping:
		m := val.Mapping()
		if m == nil {
			return size
		}
		if _, seen := est.seenMaps[m]; seen {
			return size
		}
		est.seenMaps[m] = struct{}{}
		size += estimatedMapBaseBytes + m.Len()*estimatedMapEntryBytes
		m.Each(func(key, elem Value) {
			size += est.value(key)
			size += est.value(elem)
		})
	}
	return size
}
