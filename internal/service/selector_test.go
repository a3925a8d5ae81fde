package service

import (
	"sync"
	"testing"

	"github.com/luckyplay-next/internal/models"

	"github.com/shopspring/decimal"
)

type stubRandSource struct {
	mu     sync.Mutex
	values []float64
	index  int
}

func (s *stubRandSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.index%len(s.values)]
	s.index++
	return v
}

func intQty(v int) *int {
	return &v
}

func makeSelectorRewards() []models.Reward {
	return []models.Reward{
		{
			ID:           1,
			Name:         "一等奖",
			Probability:  10,
			Value:        models.NewMoneyFromDecimal(decimal.NewFromInt(88)),
			IsActive:     true,
			DisplayOrder: 1,
		},
		{
			ID:           2,
			Name:         "二等奖",
			Probability:  30,
			Value:        models.NewMoneyFromDecimal(decimal.NewFromInt(18)),
			IsActive:     true,
			DisplayOrder: 2,
		},
		{
			ID:           3,
			Name:         "谢谢参与",
			Probability:  60,
			Value:        models.NewMoneyFromDecimal(decimal.Zero),
			IsActive:     true,
			DisplayOrder: 3,
		},
	}
}

func TestRewardSelectorHitsExpectedRegion(t *testing.T) {
	cases := []struct {
		value    float64
		expected uint
	}{
		{0.0, 1},    // r=0 落在第一档 [0,10)
		{0.05, 1},   // r=5
		{0.0999, 1}, // r≈9.99，仍在第一档
		{0.1, 2},    // r=10 落在第二档 [10,40)
		{0.399, 2},  // r=39.9
		{0.4, 3},    // r=40 落在第三档 [40,100)
		{0.999, 3},  // r=99.9
	}
	for _, tc := range cases {
		selector := NewRewardSelector(&stubRandSource{values: []float64{tc.value}})
		selected := selector.Select(makeSelectorRewards())
		if selected == nil {
			t.Fatalf("value=%v: expected a reward, got nil", tc.value)
		}
		if selected.ID != tc.expected {
			t.Fatalf("value=%v: expected reward %d, got %d", tc.value, tc.expected, selected.ID)
		}
	}
}

func TestRewardSelectorSkipsInactiveAndOutOfStock(t *testing.T) {
	rewards := makeSelectorRewards()
	rewards[0].IsActive = false
	rewards[1].TotalQuantity = intQty(5)
	rewards[1].RemainingQuantity = intQty(0)

	// 仅剩第三档可抽，任何随机值都应命中它
	selector := NewRewardSelector(&stubRandSource{values: []float64{0.0}})
	selected := selector.Select(rewards)
	if selected == nil || selected.ID != 3 {
		t.Fatalf("expected reward 3, got: %+v", selected)
	}
}

func TestRewardSelectorUnlimitedStockIsSelectable(t *testing.T) {
	rewards := makeSelectorRewards()
	rewards[0].RemainingQuantity = nil

	selector := NewRewardSelector(&stubRandSource{values: []float64{0.0}})
	selected := selector.Select(rewards)
	if selected == nil || selected.ID != 1 {
		t.Fatalf("expected unlimited reward 1, got: %+v", selected)
	}
}

func TestRewardSelectorNoCandidates(t *testing.T) {
	selector := NewRewardSelector(&stubRandSource{values: []float64{0.5}})

	if selected := selector.Select(nil); selected != nil {
		t.Fatalf("expected nil for empty rewards, got: %+v", selected)
	}

	rewards := makeSelectorRewards()
	for i := range rewards {
		rewards[i].IsActive = false
	}
	if selected := selector.Select(rewards); selected != nil {
		t.Fatalf("expected nil when all rewards inactive, got: %+v", selected)
	}
}

func TestRewardSelectorZeroTotalWeight(t *testing.T) {
	rewards := makeSelectorRewards()
	for i := range rewards {
		rewards[i].Probability = 0
	}
	selector := NewRewardSelector(&stubRandSource{values: []float64{0.5}})
	if selected := selector.Select(rewards); selected != nil {
		t.Fatalf("expected nil when total weight is zero, got: %+v", selected)
	}
}

func TestRewardSelectorFallbackToLastCandidate(t *testing.T) {
	// 随机值等于权重总和时（浮点累加误差的极端情况）命中最后一个候选
	selector := NewRewardSelector(&stubRandSource{values: []float64{1.0}})
	selected := selector.Select(makeSelectorRewards())
	if selected == nil || selected.ID != 3 {
		t.Fatalf("expected last candidate 3, got: %+v", selected)
	}
}

func TestRewardSelectorDistribution(t *testing.T) {
	selector := NewRewardSelector(NewRandSource())
	rewards := makeSelectorRewards()

	counts := map[uint]int{}
	const rounds = 20000
	for i := 0; i < rounds; i++ {
		selected := selector.Select(rewards)
		if selected == nil {
			t.Fatal("unexpected nil selection")
		}
		counts[selected.ID]++
	}

	// 权重 10/30/60，允许较宽的波动区间
	checks := []struct {
		id       uint
		min, max int
	}{
		{1, rounds * 5 / 100, rounds * 15 / 100},
		{2, rounds * 25 / 100, rounds * 35 / 100},
		{3, rounds * 55 / 100, rounds * 65 / 100},
	}
	for _, c := range checks {
		if counts[c.id] < c.min || counts[c.id] > c.max {
			t.Fatalf("reward %d: count %d outside [%d, %d]", c.id, counts[c.id], c.min, c.max)
		}
	}
}
