package main

import (
	"time"
)

const (
	binaryDetectCnt = 4
	initialMaxDelta = 10
	maxWheelDt      = 100 * time.Millisecond
)

type wheelType int

const (
	wheelTypeNone wheelType = iota
	wheelTypeBinary
	wheelTypeContinuous
)

// wheelNormalizer converts wheel deltas of notched mice and touchpads
// to a comparable scale. Notched wheels are reported as +-1.
type wheelNormalizer struct {
	now func() time.Time

	eventCnt  int
	wheelType wheelType
	maxDelta  float64

	binaryCnt int
	binaryAbs float64

	timePrev time.Time
	dSum     float64
}

func (n *wheelNormalizer) ready() bool {
	return n.eventCnt > binaryDetectCnt
}

func (n *wheelNormalizer) clock() time.Time {
	if n.now != nil {
		return n.now()
	}
	return time.Now()
}

// Normalize returns the normalized delta and whether enough events
// have been observed to classify the wheel.
func (n *wheelNormalizer) Normalize(d float64) (float64, bool) {
	if !n.ready() {
		n.eventCnt++
	}

	dAbs := abs(d)
	if dAbs == 0 {
		return 0, n.ready()
	}
	n.classify(dAbs)
	n.trackRate(d)

	if n.wheelType == wheelTypeBinary {
		if d < 0 {
			return -1, n.ready()
		}
		return 1, n.ready()
	}
	return d * 250 / n.maxDelta, n.ready()
}

func (n *wheelNormalizer) classify(dAbs float64) {
	if n.binaryAbs == dAbs {
		n.binaryCnt++
	} else {
		n.binaryCnt = 0
	}
	n.binaryAbs = dAbs

	typePrev := n.wheelType
	if n.binaryCnt > binaryDetectCnt {
		n.wheelType = wheelTypeBinary
	} else {
		n.wheelType = wheelTypeContinuous
	}
	if n.wheelType != typePrev {
		n.maxDelta = initialMaxDelta
	}
}

func (n *wheelNormalizer) trackRate(d float64) {
	now := n.clock()
	dt := now.Sub(n.timePrev)
	if dt <= 0 {
		n.dSum += d
		return
	}
	if dt > maxWheelDt {
		dt = maxWheelDt
	}
	n.dSum += d
	dps := abs(n.dSum / dt.Seconds())
	n.dSum = 0
	n.timePrev = now

	if n.maxDelta < dps {
		// LPF to suppress spikes
		n.maxDelta = n.maxDelta*0.5 + dps*0.5
	}
	n.maxDelta *= 0.95
	if n.maxDelta < 1 {
		n.maxDelta = 1
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
