// Package motion provides temporal analysis of joint angle streams: a
// rolling motion buffer that derives angular velocity and stability, and
// the pose phase state machine driven by it.
package motion

import (
	"math"

	"github.com/ayusman/drishti/internal/pose"
)

// DefaultCapacity is the default motion buffer size: 60 frames, two
// seconds at 30fps.
const DefaultCapacity = 60

// ring is a fixed-capacity float64 ring buffer. Pushing past capacity
// evicts the oldest sample.
type ring struct {
	data []float64
	head int // next write position
	n    int // samples stored, <= cap
}

func newRing(capacity int) *ring {
	return &ring{data: make([]float64, capacity)}
}

func (r *ring) push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.n < len(r.data) {
		r.n++
	}
}

// last returns up to n most recent samples in oldest-to-newest order.
func (r *ring) last(n int) []float64 {
	if n > r.n {
		n = r.n
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		idx := (r.head - n + i + len(r.data)) % len(r.data)
		out[i] = r.data[idx]
	}
	return out
}

func (r *ring) len() int { return r.n }

// Buffer is a rolling history of per-joint angles and frame timestamps.
// A Buffer belongs to exactly one state machine and is mutated only by
// AddFrame.
type Buffer struct {
	capacity   int
	timestamps *ring
	angles     map[string]*ring
}

// NewBuffer creates a Buffer holding up to capacity frames. A
// non-positive capacity falls back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		capacity:   capacity,
		timestamps: newRing(capacity),
		angles:     make(map[string]*ring),
	}
}

// AddFrame appends one frame of joint angles. Joint rings are created
// lazily the first time a joint appears. NaN angles are skipped.
func (b *Buffer) AddFrame(joints map[string]float64, timestamp float64) {
	b.timestamps.push(timestamp)

	for joint, angle := range joints {
		if !pose.ValidAngle(angle) {
			continue
		}
		r, ok := b.angles[joint]
		if !ok {
			r = newRing(b.capacity)
			b.angles[joint] = r
		}
		r.push(angle)
	}
}

// AngularVelocity returns the mean absolute angular velocity of a joint
// in degrees per second over at most the last window samples. Unknown
// joints and histories shorter than two samples yield 0.
func (b *Buffer) AngularVelocity(joint string, window int) float64 {
	r, ok := b.angles[joint]
	if !ok || r.len() < 2 {
		return 0
	}

	angles := r.last(window)
	times := b.timestamps.last(len(angles))
	if len(angles) < 2 || len(times) < 2 {
		return 0
	}

	var sum float64
	var count int
	for i := 1; i < len(angles); i++ {
		dt := times[i] - times[i-1]
		v := (angles[i] - angles[i-1]) / (dt + 1e-6)
		sum += math.Abs(v)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// StabilityScore returns 1/(1 + meanVelocity/5) over the given joints:
// 1.0 for a motionless subject, approaching 0 with increasing motion.
// The score is continuous; thresholding is the state machine's job.
func (b *Buffer) StabilityScore(joints []string, window int) float64 {
	if len(joints) == 0 {
		return 0
	}

	var sum float64
	for _, joint := range joints {
		sum += b.AngularVelocity(joint, window)
	}
	avg := sum / float64(len(joints))

	return 1.0 / (1.0 + avg/5.0)
}

// Variance returns the variance of a joint's angle in degrees squared
// over at most the last window samples.
func (b *Buffer) Variance(joint string, window int) float64 {
	r, ok := b.angles[joint]
	if !ok || r.len() < 2 {
		return 0
	}

	angles := r.last(window)
	var mean float64
	for _, a := range angles {
		mean += a
	}
	mean /= float64(len(angles))

	var sum float64
	for _, a := range angles {
		d := a - mean
		sum += d * d
	}
	return sum / float64(len(angles))
}

// Joints returns the names of all joints seen so far.
func (b *Buffer) Joints() []string {
	joints := make([]string, 0, len(b.angles))
	for j := range b.angles {
		joints = append(joints, j)
	}
	return joints
}

// Len returns the number of buffered frames.
func (b *Buffer) Len() int { return b.timestamps.len() }

// Clear drops all history.
func (b *Buffer) Clear() {
	b.timestamps = newRing(b.capacity)
	b.angles = make(map[string]*ring)
}
