package testgen

import "testing"

func TestKindRetriable(t *testing.T) {
	retriable := map[Kind]bool{
		KindModelUnavailable: true,
		KindConnectionFailed: true,
		KindTimeout:          true,
		KindMaterialMissing:  false,
		KindModelNotFound:    false,
		KindServerError:      false,
		KindEmptyResponse:    false,
		KindUnknown:          false,
	}
	for kind, want := range retriable {
		if got := kind.Retriable(); got != want {
			t.Errorf("%s.Retriable() = %v, want %v", kind, got, want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := &Error{Kind: KindTimeout}
	if inner.Unwrap() != nil {
		t.Error("Unwrap() on bare error != nil")
	}
	if inner.Error() == "" {
		t.Error("Error() is empty")
	}
}
