// Package glyph holds the symbols lumina prints in front of tasks.
package glyph

import "tableflip.dev/lumina/pkg/task"

type Glyph struct {
	Key       string
	Symbol    string
	Meaning   string
	Signifier bool
	Printed   bool
}

type Bullet int
type Signifier int

const (
	Task Bullet = iota
	Completed
	Span
	SpanCompleted
)

const (
	High Signifier = iota
	Medium
	Low
	None
)

var bullets = map[Bullet]Glyph{
	Task:          {Key: "o", Symbol: "●", Meaning: "task", Printed: true},
	Completed:     {Key: "x", Symbol: "✘", Meaning: "task completed", Printed: true},
	Span:          {Key: "=", Symbol: "◆", Meaning: "multi-day task", Printed: true},
	SpanCompleted: {Key: "#", Symbol: "◇", Meaning: "multi-day task completed", Printed: true},
}

var signifiers = map[Signifier]Glyph{
	High:   {Key: "*", Symbol: "✷", Meaning: "high priority", Signifier: true, Printed: true},
	Medium: {Key: "!", Symbol: "!", Meaning: "medium priority", Signifier: true, Printed: true},
	Low:    {Key: ".", Symbol: "·", Meaning: "low priority", Signifier: true, Printed: true},
	None:   {Key: " ", Symbol: " ", Meaning: "no priority", Signifier: true},
}

// DefaultBullets lists the bullets in legend order.
func DefaultBullets() []Glyph {
	return []Glyph{bullets[Task], bullets[Completed], bullets[Span], bullets[SpanCompleted]}
}

// DefaultSignifiers lists the priority signifiers in legend order.
func DefaultSignifiers() []Glyph {
	return []Glyph{signifiers[High], signifiers[Medium], signifiers[Low], signifiers[None]}
}

// BulletFor picks the bullet describing t's shape and state.
func BulletFor(t task.Task) Bullet {
	switch {
	case t.MultiDay() && t.Completed:
		return SpanCompleted
	case t.MultiDay():
		return Span
	case t.Completed:
		return Completed
	default:
		return Task
	}
}

// SignifierFor picks the signifier of a priority.
func SignifierFor(p task.Priority) Signifier {
	switch p {
	case task.PriorityHigh:
		return High
	case task.PriorityMedium:
		return Medium
	case task.PriorityLow:
		return Low
	default:
		return None
	}
}

func (g Glyph) String() string {
	return g.Symbol
}

func (b Bullet) Glyph() Glyph {
	return bullets[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

func (s Signifier) Glyph() Glyph {
	return signifiers[s]
}

func (s Signifier) String() string {
	return s.Glyph().String()
}
