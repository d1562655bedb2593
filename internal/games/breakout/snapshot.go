package breakout

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot contains the complete simulation state for replays and
// determinism checks. Uses primitive types only for stable serialization.
type Snapshot struct {
	State   int
	Score   int
	NextID  uint32
	PaddleX float64

	// Each ball is 5 values: ID, X, Y, VX, VY
	BallData []float64

	// Each brick is 2 ints: ID, Health
	BrickData []int

	// Each point is 3 values: ID, X, Y
	PointData []float64

	TimerRunning bool
	TimerLeft    float64

	RNGState uint64
}

// Snapshot returns the current simulation state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		State:        int(s.state),
		Score:        s.score,
		NextID:       uint32(s.nextID),
		PaddleX:      s.paddle.X,
		BallData:     make([]float64, 0, len(s.ballOrder)*5),
		BrickData:    make([]int, 0, len(s.brickOrder)*2),
		PointData:    make([]float64, 0, len(s.pointOrder)*3),
		TimerRunning: s.timer.Running(),
		TimerLeft:    s.timer.Remaining(),
		RNGState:     s.rng.State(),
	}
	for _, b := range s.Balls() {
		snap.BallData = append(snap.BallData, float64(b.ID), b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
	}
	for _, b := range s.Bricks() {
		snap.BrickData = append(snap.BrickData, int(b.ID), b.Health)
	}
	for _, p := range s.GenerationPoints() {
		snap.PointData = append(snap.PointData, float64(p.ID), p.Pos.X, p.Pos.Y)
	}
	return snap
}

// Hash returns an FNV-1a digest of the snapshot. Equal seeds and equal
// input sequences produce equal hashes.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putF := func(v float64) { putU(math.Float64bits(v)) }

	putU(uint64(snap.State)) //#nosec G115 -- state is a small enum
	putU(uint64(snap.Score)) //#nosec G115 -- score is non-negative
	putU(uint64(snap.NextID))
	putF(snap.PaddleX)
	putU(uint64(len(snap.BallData)))
	for _, v := range snap.BallData {
		putF(v)
	}
	putU(uint64(len(snap.BrickData)))
	for _, v := range snap.BrickData {
		putU(uint64(v)) //#nosec G115 -- ids and health are non-negative
	}
	putU(uint64(len(snap.PointData)))
	for _, v := range snap.PointData {
		putF(v)
	}
	if snap.TimerRunning {
		putU(1)
	} else {
		putU(0)
	}
	putF(snap.TimerLeft)
	putU(snap.RNGState)
	return h.Sum64()
}
