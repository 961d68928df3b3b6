package testutil

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
)

// AssertEqual fails the test when expected and actual differ under deep
// equality.
func AssertEqual(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("%sExpected: %+v\nActual: %+v", formatMessage(msgAndArgs...), expected, actual)
	}
}

// AssertTrue fails the test when value is false.
func AssertTrue(t *testing.T, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !value {
		t.Errorf("%sExpected true, got false", formatMessage(msgAndArgs...))
	}
}

// AssertNotNil fails the test when value is nil, including typed nils
// inside interfaces.
func AssertNotNil(t *testing.T, value interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if isNil(value) {
		t.Errorf("%sExpected non-nil value", formatMessage(msgAndArgs...))
	}
}

// AssertNotEmpty fails the test when value is the empty string.
func AssertNotEmpty(t *testing.T, value string, msgAndArgs ...interface{}) {
	t.Helper()
	if value == "" {
		t.Errorf("%sExpected non-empty string", formatMessage(msgAndArgs...))
	}
}

// AssertError fails the test when err is nil.
func AssertError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		t.Errorf("%sExpected an error but got nil", formatMessage(msgAndArgs...))
	}
}

// AssertNoError fails the test when err is non-nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		t.Errorf("%sUnexpected error: %v", formatMessage(msgAndArgs...), err)
	}
}

// AssertFileContent fails the test unless path names a regular file
// with exactly the expected content.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()
	if !FileExists(t, path) {
		t.Fatalf("File %s does not exist", path)
	}
	actual := ReadFile(t, path)
	if actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertSymlink fails the test unless link is a symlink pointing at
// exactly expectedTarget. The target is compared as written, not
// resolved.
func AssertSymlink(t *testing.T, link, expectedTarget string) {
	t.Helper()
	if !SymlinkExists(t, link) {
		t.Fatalf("Symlink %s does not exist", link)
	}
	actualTarget := ReadSymlink(t, link)
	if actualTarget != expectedTarget {
		t.Errorf("Symlink %s target mismatch\nExpected: %s\nActual: %s", link, expectedTarget, actualTarget)
	}
}

// AssertNoFile fails the test when anything exists at path. Lstat is
// used, so a dangling symlink counts as existing.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("File %s exists but should not", path)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if format, ok := msgAndArgs[0].(string); ok {
		if len(msgAndArgs) > 1 && strings.Contains(format, "%") {
			return fmt.Sprintf(format, msgAndArgs[1:]...) + "\n"
		}
		if len(msgAndArgs) == 1 {
			return format + "\n"
		}
	}
	parts := make([]string, len(msgAndArgs))
	for i, arg := range msgAndArgs {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, " ") + "\n"
}
