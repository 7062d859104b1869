package limiter

import (
	"strconv"
	"testing"
	"time"

	"github.com/codetesla51/flowlimit/store"
)

func BenchmarkRecordOutflow(b *testing.B) {
	fl := NewFlowLimiter(6*time.Hour, store.NewMemoryStore())
	fl.SetLimit("assetA", ^uint64(0)/2, "bench")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fl.RecordOutflow("assetA", 1)
	}
}

func BenchmarkRecordAlternating(b *testing.B) {
	fl := NewFlowLimiter(6*time.Hour, store.NewMemoryStore())
	fl.SetLimit("assetA", 100, "bench")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			fl.RecordOutflow("assetA", 1)
		} else {
			fl.RecordInflow("assetA", 1)
		}
	}
}

func BenchmarkRecordOutflowMultipleSubjects(b *testing.B) {
	fl := NewFlowLimiter(6*time.Hour, store.NewMemoryStore())
	for i := 0; i < 1000; i++ {
		fl.SetLimit("asset"+strconv.Itoa(i), ^uint64(0)/2, "bench")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fl.RecordOutflow("asset"+strconv.Itoa(i%1000), 1)
	}
}
