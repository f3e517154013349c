package resources_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/riva128/resources"
	"github.com/jetsetilly/riva128/test"
)

func TestJoinPath(t *testing.T) {
	pth, err := resources.JoinPath("rom", "riva128bios.bin")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".riva128/rom/riva128bios.bin")

	// the base path is not added twice
	pth, err = resources.JoinPath(".riva128/rom")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".riva128/rom")

	pth, err = resources.JoinPath("", "history")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".riva128/history")

	pth, err = resources.JoinPath("")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".riva128")
}

func TestMissing(t *testing.T) {
	d, err := resources.ReadBinary("missing")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, d == nil, true)

	l, err := resources.ReadLines("missing")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, len(l), 0)
}

func TestAppendLine(t *testing.T) {
	const name = "test_appendline"

	pth, err := resources.JoinPath(name)
	test.DemandEquality(t, err, nil)
	_ = os.Remove(pth)
	t.Cleanup(func() {
		_ = os.Remove(pth)
	})

	test.ExpectSuccess(t, resources.AppendLine(name, "OUT 3d4 $3f"))
	test.ExpectSuccess(t, resources.AppendLine(name, "  IN 3d5  "))

	l, err := resources.ReadLines(name)
	test.ExpectEquality(t, err, nil)
	test.DemandEquality(t, len(l), 2)
	test.ExpectEquality(t, l[0], "OUT 3d4 $3f")
	test.ExpectEquality(t, l[1], "IN 3d5")

	d, err := resources.ReadBinary(name)
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, string(d), "OUT 3d4 $3f\nIN 3d5\n")
}
