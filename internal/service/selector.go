package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/luckyplay-next/internal/models"
)

// RandSource 随机数来源，抽象出来便于测试注入固定序列。
type RandSource interface {
	Float64() float64
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// NewRandSource 创建并发安全的默认随机源
func NewRandSource() RandSource {
	return &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// RewardSelector 按权重从奖品集合中选取一个结果
type RewardSelector struct {
	rand RandSource
}

// NewRewardSelector 创建权重选择器
func NewRewardSelector(src RandSource) *RewardSelector {
	if src == nil {
		src = NewRandSource()
	}
	return &RewardSelector{rand: src}
}

// Select 执行一次加权抽取。
// 过滤掉停用与无库存的奖品后，在 [0, totalWeight) 内取一个随机值，
// 按展示顺序累加权重命中区间。返回 nil 表示无可抽取奖品。
// 浮点累加可能令随机值落在末尾区间之外，此时命中最后一个候选，
// 保证抽取不会被浪费。
func (s *RewardSelector) Select(rewards []models.Reward) *models.Reward {
	candidates := make([]*models.Reward, 0, len(rewards))
	totalWeight := 0.0
	for i := range rewards {
		reward := &rewards[i]
		if !reward.IsActive || !reward.HasStock() {
			continue
		}
		candidates = append(candidates, reward)
		totalWeight += reward.Probability
	}
	if len(candidates) == 0 || totalWeight <= 0 {
		return nil
	}

	r := s.rand.Float64() * totalWeight
	cumulative := 0.0
	for _, candidate := range candidates {
		cumulative += candidate.Probability
		if r < cumulative {
			return candidate
		}
	}
	return candidates[len(candidates)-1]
}
