// Package generator picks typing targets.
package generator

import (
	"math/rand"
	"time"
)

// Generator picks random sentences from a list.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Pick selects one sentence uniformly. It returns "" for an empty list.
func (g *Generator) Pick(sentences []string) string {
	if len(sentences) == 0 {
		return ""
	}
	return sentences[g.rnd.Intn(len(sentences))]
}
