package services

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildMealContent(t *testing.T) {
	t.Parallel()
	got := buildMealContent("Zucchini Lasagna", "Layered with ricotta.", nil)
	want := "Zucchini Lasagna\nLayered with ricotta."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildMealContentWithWarning(t *testing.T) {
	t.Parallel()
	warning := "Hidden sugar in the sauce."
	got := buildMealContent("Bolognese", "", &warning)
	if !strings.HasSuffix(got, "⚠️ Hidden sugar in the sauce.") {
		t.Fatalf("warning line missing: %q", got)
	}
	if strings.Contains(got, "\n\n") {
		t.Fatalf("empty description must not leave a blank line: %q", got)
	}
}

func TestDecodeImagePayloadBareBase64(t *testing.T) {
	t.Parallel()
	mime, payload, err := decodeImagePayload("aGVsbG8=")
	if err != nil {
		t.Fatalf("bare base64 rejected: %v", err)
	}
	if mime != "image/jpeg" || payload != "aGVsbG8=" {
		t.Fatalf("expected jpeg passthrough, got %s %s", mime, payload)
	}
}

func TestDecodeImagePayloadDataURL(t *testing.T) {
	t.Parallel()
	mime, payload, err := decodeImagePayload("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("data URL rejected: %v", err)
	}
	if mime != "image/png" || payload != "aGVsbG8=" {
		t.Fatalf("expected png payload, got %s %s", mime, payload)
	}
}

func TestDecodeImagePayloadRejectsUnsupported(t *testing.T) {
	t.Parallel()
	if _, _, err := decodeImagePayload("data:application/pdf;base64,aGVsbG8="); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage for pdf, got %v", err)
	}
	if _, _, err := decodeImagePayload(""); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage for empty payload, got %v", err)
	}
	if _, _, err := decodeImagePayload("data:image/png,raw"); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage for non-base64 data URL, got %v", err)
	}
}
