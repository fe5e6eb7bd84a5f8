package render

import (
	"errors"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

type opKind int

const (
	opFill opKind = iota
	opStroke
	opText
)

type op struct {
	kind  opKind
	path  Path
	color colorspace.RGB
	width float64
	text  string
	at    Point
	size  float64
	align Align
}

// recorder is a Surface that remembers every call.
type recorder struct {
	w, h   int
	ops    []op
	failAt int // fail the n-th call (1-based); 0 never fails
}

var errSurface = errors.New("surface failure")

func newRecorder(w, h int) *recorder {
	return &recorder{w: w, h: h}
}

func (r *recorder) Width() int  { return r.w }
func (r *recorder) Height() int { return r.h }

func (r *recorder) record(o op) error {
	r.ops = append(r.ops, o)
	if r.failAt > 0 && len(r.ops) == r.failAt {
		return errSurface
	}
	return nil
}

func (r *recorder) FillPath(p Path, c colorspace.RGB) error {
	return r.record(op{kind: opFill, path: p, color: c})
}

func (r *recorder) StrokePath(p Path, c colorspace.RGB, width float64) error {
	return r.record(op{kind: opStroke, path: p, color: c, width: width})
}

func (r *recorder) DrawText(s string, x, y, size float64, c colorspace.RGB, align Align) error {
	return r.record(op{kind: opText, text: s, at: Point{x, y}, size: size, color: c, align: align})
}

func (r *recorder) count(k opKind) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == k {
			n++
		}
	}
	return n
}

func (r *recorder) texts() []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == opText {
			out = append(out, o)
		}
	}
	return out
}
