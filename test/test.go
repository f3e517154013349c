// Package test contains helper functions for the test files of the other
// packages in the project.
//
// The Expect*() functions report failure with t.Errorf() and the test
// continues. The Demand*() functions report failure with t.Fatalf() and the
// test stops.
package test

import (
	"errors"
	"testing"
)

// ExpectEquality compares value with expectedValue and fails the test if they
// are not equal. Returns true if the values are equal.
func ExpectEquality[T comparable](t *testing.T, value T, expectedValue T) bool {
	t.Helper()
	if value != expectedValue {
		t.Errorf("equality test of type %T failed: '%v' does not equal '%v')", value, value, expectedValue)
		return false
	}
	return true
}

// DemandEquality is like ExpectEquality but stops the test on failure.
func DemandEquality[T comparable](t *testing.T, value T, expectedValue T) {
	t.Helper()
	if value != expectedValue {
		t.Fatalf("equality test of type %T failed: '%v' does not equal '%v')", value, value, expectedValue)
	}
}

// ExpectInequality fails the test if value and unexpectedValue are equal.
func ExpectInequality[T comparable](t *testing.T, value T, unexpectedValue T) bool {
	t.Helper()
	if value == unexpectedValue {
		t.Errorf("inequality test of type %T failed: '%v' equals '%v')", value, value, unexpectedValue)
		return false
	}
	return true
}

// ExpectSuccess fails the test if v is false or is a non-nil error. A nil
// value counts as success.
func ExpectSuccess(t *testing.T, v any) bool {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if !v {
			t.Errorf("a success value is expected for type %T", v)
			return false
		}
	case error:
		if v != nil {
			t.Errorf("a success value is expected for type %T (%s)", v, v)
			return false
		}
	case nil:
	default:
		t.Fatalf("unsupported type (%T) for ExpectSuccess()", v)
	}
	return true
}

// ExpectFailure fails the test if v is true or is a nil error.
func ExpectFailure(t *testing.T, v any) bool {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if v {
			t.Errorf("a failure value is expected for type %T", v)
			return false
		}
	case error:
		if v == nil {
			t.Errorf("a failure value is expected for type %T", v)
			return false
		}
	case nil:
		t.Errorf("a failure value is expected for type error")
		return false
	default:
		t.Fatalf("unsupported type (%T) for ExpectFailure()", v)
	}
	return true
}

// ExpectError fails the test if err does not wrap target.
func ExpectError(t *testing.T, err error, target error) bool {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("error '%v' does not wrap '%v'", err, target)
		return false
	}
	return true
}
