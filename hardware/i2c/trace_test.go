package i2c_test

import (
	"testing"

	"github.com/jetsetilly/riva128/hardware/i2c"
	"github.com/jetsetilly/riva128/test"
)

func TestTraceEdges(t *testing.T) {
	tr := i2c.NewTrace("SCL")
	test.ExpectSuccess(t, tr.Lo())
	test.ExpectFailure(t, tr.Rising())
	test.ExpectFailure(t, tr.Falling())

	tr.Tick(true)
	test.ExpectSuccess(t, tr.Hi())
	test.ExpectSuccess(t, tr.Rising())
	test.ExpectFailure(t, tr.Falling())

	// no change in the line means no edge
	tr.Tick(true)
	test.ExpectSuccess(t, tr.Hi())
	test.ExpectFailure(t, tr.Rising())

	tr.Tick(false)
	test.ExpectSuccess(t, tr.Lo())
	test.ExpectSuccess(t, tr.Falling())

	test.ExpectEquality(t, tr.String(), "SCL ‾‾_")

	tr.Reset()
	test.ExpectEquality(t, tr.String(), "SCL ")
	test.ExpectSuccess(t, tr.Lo())
}

func TestTraceHistoryWraps(t *testing.T) {
	tr := i2c.NewTrace("SDA")
	for range 100 {
		tr.Tick(true)
	}
	tr.Tick(false)

	s := tr.String()
	test.ExpectEquality(t, []rune(s)[len([]rune(s))-1], '_')
	test.ExpectEquality(t, len([]rune(s)), len("SDA ")+32)
}
