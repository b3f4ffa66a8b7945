package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor_KnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("expected status %d for %s, got %d", tc.status, tc.code, got)
		}
	}
}

func TestMetadataFor_UnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeDependency, cause, "loading product")
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected code %s, got %s", CodeDependency, err.Code())
	}
}

func TestAs_UnwrapsThroughFmtErrorf(t *testing.T) {
	inner := New(CodeNotFound, "product is not active")
	outer := fmt.Errorf("quote: %w", inner)
	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected code %s, got %s", CodeNotFound, typed.Code())
	}
}

func TestDump_IncludesChainAndCode(t *testing.T) {
	err := Wrap(CodeValidation, errors.New("bad quantity"), "invalid selections")
	dump := Dump(err)
	if dump.Code != CodeValidation {
		t.Fatalf("expected code %s, got %s", CodeValidation, dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain with cause, got %v", dump.Chain)
	}
}
