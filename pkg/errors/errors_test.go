package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/webgenlabs/webgen/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "clone_exists_error",
			code:    errors.ErrCloneExists,
			message: "destination already exists",
			wantStr: "[CLONE_TARGET_EXISTS] destination already exists",
		},
		{
			name:    "link_exists_error",
			code:    errors.ErrLinkExists,
			message: "link name already taken",
			wantStr: "[LINK_EXISTS] link name already taken",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrVersionNotFound, "no version at index %d", 7)
	if err.Message != "no version at index 7" {
		t.Errorf("Newf() message = %q, want %q", err.Message, "no version at index 7")
	}
	if err.Code != errors.ErrVersionNotFound {
		t.Errorf("Newf() code = %v, want %v", err.Code, errors.ErrVersionNotFound)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("exit status 128")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrCloneFailed, "git clone failed")

		if err.Code != errors.ErrCloneFailed {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrCloneFailed)
		}

		if !stderrors.Is(err, baseErr) {
			t.Error("Wrap() should preserve the wrapped error for errors.Is")
		}

		want := "[CLONE_FAILED] git clone failed: exit status 128"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("wrap_nil_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "should vanish"); err != nil {
			t.Errorf("Wrap(nil) = %v, want nil", err)
		}
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrDeployCopy, "copying %s", "index.html")
		if err.Message != "copying index.html" {
			t.Errorf("Wrapf() message = %q", err.Message)
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrLinkExists, "taken")
	wrapped := errors.Wrap(err, errors.ErrInternal, "outer")

	if !errors.IsErrorCode(err, errors.ErrLinkExists) {
		t.Error("IsErrorCode should match the error's own code")
	}
	if errors.IsErrorCode(err, errors.ErrCloneFailed) {
		t.Error("IsErrorCode should not match a different code")
	}
	// errors.As finds the outermost WebgenError first.
	if !errors.IsErrorCode(wrapped, errors.ErrInternal) {
		t.Error("IsErrorCode should match the outermost code")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrLinkExists) {
		t.Error("IsErrorCode should be false for non-webgen errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrNoCurrent, "x")); got != errors.ErrNoCurrent {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrNoCurrent)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrCloneFailed, "clone failed").
		WithDetail("url", "https://example.com/repo.git").
		WithDetail("dest", "deps/theme")

	if err.Details["url"] != "https://example.com/repo.git" {
		t.Errorf("WithDetail did not record url, got %v", err.Details["url"])
	}
	if err.Details["dest"] != "deps/theme" {
		t.Errorf("WithDetail did not record dest, got %v", err.Details["dest"])
	}
}
