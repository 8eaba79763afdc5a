package dashboard

import (
	"math"
	"sync"
	"testing"
	"time"
)

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestPipelineStatsStartEmpty(t *testing.T) {
	a := NewAggregator(nil)

	st := a.PipelineStats()
	if st.Requests != 0 {
		t.Fatalf("requests = %d, want 0", st.Requests)
	}
	if st.AvgRetrievalS != 0 || st.AvgGenerationS != 0 {
		t.Errorf("averages on empty aggregator = %v / %v, want 0 / 0", st.AvgRetrievalS, st.AvgGenerationS)
	}
}

func TestRecordRequestRunningAverages(t *testing.T) {
	a := NewAggregator(nil)

	a.RecordRequest(100*time.Millisecond, 2*time.Second)
	a.RecordRequest(300*time.Millisecond, 4*time.Second)

	st := a.PipelineStats()
	if st.Requests != 2 {
		t.Fatalf("requests = %d, want 2", st.Requests)
	}
	if !closeTo(st.LastRetrievalS, 0.3) {
		t.Errorf("last retrieval = %v, want 0.3", st.LastRetrievalS)
	}
	if !closeTo(st.AvgRetrievalS, 0.2) {
		t.Errorf("avg retrieval = %v, want 0.2", st.AvgRetrievalS)
	}
	if !closeTo(st.LastGenerationS, 4.0) {
		t.Errorf("last generation = %v, want 4.0", st.LastGenerationS)
	}
	if !closeTo(st.AvgGenerationS, 3.0) {
		t.Errorf("avg generation = %v, want 3.0", st.AvgGenerationS)
	}
}

func TestRecordRequestIsSafeForConcurrentUse(t *testing.T) {
	a := NewAggregator(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.RecordRequest(10*time.Millisecond, 20*time.Millisecond)
		}()
	}
	wg.Wait()

	st := a.PipelineStats()
	if st.Requests != 50 {
		t.Fatalf("requests = %d, want 50", st.Requests)
	}
	if !closeTo(st.AvgRetrievalS, 0.01) {
		t.Errorf("avg retrieval = %v, want 0.01", st.AvgRetrievalS)
	}
}
