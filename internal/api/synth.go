package api

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/sandeepkv93/taskpager/internal/model"
)

const (
	SynthesisStable = "stable"
	SynthesisRandom = "random"

	dueWindowDays = 10
)

// Synthesizer fills in the fields the remote /todos records do not carry.
type Synthesizer interface {
	Synthesize(id int) (model.Priority, string)
}

// randomSeed seeds random mode; the anchor is persisted, so it cannot be the seed.
var randomSeed = func() int64 { return time.Now().UnixNano() }

func NewSynthesizer(mode string, anchor time.Time) (Synthesizer, error) {
	switch mode {
	case "", SynthesisStable:
		return StableSynthesizer{Anchor: anchor}, nil
	case SynthesisRandom:
		return NewRandomSynthesizer(anchor, randomSeed()), nil
	default:
		return nil, fmt.Errorf("api: unknown synthesis mode %q", mode)
	}
}

// StableSynthesizer derives priority and due date from a hash of the id, so
// refetching a page shows the same values.
type StableSynthesizer struct {
	Anchor time.Time
}

func (s StableSynthesizer) Synthesize(id int) (model.Priority, string) {
	h := xxhash.Sum64String(strconv.Itoa(id))
	priorities := model.Priorities()
	priority := priorities[h%uint64(len(priorities))]
	offset := int((h >> 8) % dueWindowDays)
	return priority, dueDate(s.Anchor, offset)
}

// RandomSynthesizer picks a new priority and due date on every call.
type RandomSynthesizer struct {
	anchor time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomSynthesizer(anchor time.Time, seed int64) *RandomSynthesizer {
	return &RandomSynthesizer{anchor: anchor, rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSynthesizer) Synthesize(int) (model.Priority, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	priorities := model.Priorities()
	priority := priorities[s.rng.Intn(len(priorities))]
	return priority, dueDate(s.anchor, s.rng.Intn(dueWindowDays))
}

func dueDate(anchor time.Time, offsetDays int) string {
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	return day.AddDate(0, 0, offsetDays).Format(model.DateLayout)
}
