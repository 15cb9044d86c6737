package scoring

import (
	"math"
	"strconv"
	"strings"
)

// Expr is one node of an influence formula. Every node renders itself as a
// Painless fragment and evaluates itself natively with the same operation order,
// so both forms agree bit for bit.
type Expr interface {
	write(b *strings.Builder)
	eval(e *Engine, d Doc) float64
}

// Painless renders x as a Painless expression over `d` (doc) and `p` (params).
func Painless(x Expr) string {
	var b strings.Builder
	x.write(&b)
	return b.String()
}

type num float64

func (n num) write(b *strings.Builder) {
	s := strconv.FormatFloat(float64(n), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	b.WriteString(s)
}

func (n num) eval(*Engine, Doc) float64 { return float64(n) }

// field reads a numeric counter; missing or negative values count as zero.
type field string

func (f field) write(b *strings.Builder) {
	b.WriteString("v(d, '")
	b.WriteString(string(f))
	b.WriteString("')")
}

func (f field) eval(_ *Engine, d Doc) float64 { return counter(d, string(f)) }

// logNorm is log(1+x)/log(1+LogNormMax).
type logNorm struct{ x Expr }

func (l logNorm) write(b *strings.Builder) {
	b.WriteString("n(")
	l.x.write(b)
	b.WriteString(")")
}

func (l logNorm) eval(e *Engine, d Doc) float64 { return norm(l.x.eval(e, d)) }

type sum []Expr

func (s sum) write(b *strings.Builder) {
	b.WriteString("(")
	for i, x := range s {
		if i > 0 {
			b.WriteString(" + ")
		}
		x.write(b)
	}
	b.WriteString(")")
}

func (s sum) eval(e *Engine, d Doc) float64 {
	acc := s[0].eval(e, d)
	for _, x := range s[1:] {
		acc += x.eval(e, d)
	}
	return acc
}

type product struct{ a, b Expr }

func (p product) write(b *strings.Builder) {
	b.WriteString("(")
	p.a.write(b)
	b.WriteString(" * ")
	p.b.write(b)
	b.WriteString(")")
}

func (p product) eval(e *Engine, d Doc) float64 { return p.a.eval(e, d) * p.b.eval(e, d) }

type minOf struct{ a, b Expr }

func (m minOf) write(b *strings.Builder) {
	b.WriteString("Math.min(")
	m.a.write(b)
	b.WriteString(", ")
	m.b.write(b)
	b.WriteString(")")
}

func (m minOf) eval(e *Engine, d Doc) float64 { return math.Min(m.a.eval(e, d), m.b.eval(e, d)) }

// pick yields then when cond > 0, otherwise otherwise.
type pick struct{ cond, then, otherwise Expr }

func (p pick) write(b *strings.Builder) {
	b.WriteString("pick(")
	p.cond.write(b)
	b.WriteString(", ")
	p.then.write(b)
	b.WriteString(", ")
	p.otherwise.write(b)
	b.WriteString(")")
}

func (p pick) eval(e *Engine, d Doc) float64 {
	c, t, o := p.cond.eval(e, d), p.then.eval(e, d), p.otherwise.eval(e, d)
	if c > 0 {
		return t
	}
	return o
}

// publisher is 1 when the host of the field's URL is an allow-listed publisher.
type publisher string

func (f publisher) write(b *strings.Builder) {
	b.WriteString("inset(d, '")
	b.WriteString(string(f))
	b.WriteString("', p.publishers)")
}

func (f publisher) eval(e *Engine, d Doc) float64 {
	for _, v := range d.Strings(string(f)) {
		if e.isPublisher(HostOf(v)) {
			return 1
		}
	}
	return 0
}

// contains is 1 when any value of the field contains needle.
type contains struct{ field, needle string }

func (c contains) write(b *strings.Builder) {
	b.WriteString("has(d, '")
	b.WriteString(c.field)
	b.WriteString("', '")
	b.WriteString(c.needle)
	b.WriteString("')")
}

func (c contains) eval(_ *Engine, d Doc) float64 {
	for _, v := range d.Strings(c.field) {
		if strings.Contains(v, c.needle) {
			return 1
		}
	}
	return 0
}

// Builders keep the formula table readable.

func w(weight float64, x Expr) Expr { return product{num(weight), x} }
func hat(f string) Expr             { return logNorm{field(f)} }
func add(xs ...Expr) Expr           { return sum(xs) }
