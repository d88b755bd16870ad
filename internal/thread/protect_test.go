package thread

import (
	"strings"
	"testing"
)

func TestProtect_MixedTokens_RestoreIsExactInverse(t *testing.T) {
	// Arrange
	text := "Hubungi tim@agency.go.id atau @kementerian.atrbpn via https://example.com/info cc tim@agency.go.id"

	// Act
	protected, tokens := Protect(text)
	restored := Restore(protected, tokens)

	// Assert
	if restored != text {
		t.Errorf("restore(protect(x)) != x:\ngot  %q\nwant %q", restored, text)
	}
	if tokens.Len() != 4 {
		t.Errorf("token count: got %d, want 4", tokens.Len())
	}
}

func TestProtect_NoSpecialTokens_ReturnsUnchangedTextAndEmptyMap(t *testing.T) {
	// Arrange
	text := "Tidak ada token istimewa di sini."

	// Act
	protected, tokens := Protect(text)

	// Assert
	if protected != text {
		t.Errorf("protected text changed: got %q", protected)
	}
	if tokens.Len() != 0 {
		t.Errorf("token count: got %d, want 0", tokens.Len())
	}
}

func TestProtect_MentionWithDots_NotVisibleToSplitter(t *testing.T) {
	// Arrange
	text := "Laporan dari @kementerian.atrbpn sudah diterima"

	// Act
	protected, _ := Protect(text)

	// Assert
	if strings.Contains(protected, "@kementerian.atrbpn") {
		t.Error("mention should be replaced by a placeholder")
	}
	if strings.Contains(protected, "atrbpn") {
		t.Errorf("mention leaked into protected text: %q", protected)
	}
}

func TestProtect_DuplicateLiterals_EachOccurrenceGetsOwnPlaceholder(t *testing.T) {
	// Arrange
	text := "@budi dan @budi lagi"

	// Act
	protected, tokens := Protect(text)

	// Assert
	if tokens.Len() != 2 {
		t.Errorf("token count: got %d, want 2", tokens.Len())
	}
	if strings.Contains(protected, "@budi") {
		t.Errorf("unprotected mention remains: %q", protected)
	}
	if Restore(protected, tokens) != text {
		t.Errorf("restore mismatch: got %q", Restore(protected, tokens))
	}
}

func TestProtect_PlaceholderHasNoBreakCharacters(t *testing.T) {
	// Arrange
	text := "email saya tim@agency.go.id ya"

	// Act
	protected, tokens := Protect(text)

	// Assert
	if tokens.Len() != 1 {
		t.Fatalf("token count: got %d, want 1", tokens.Len())
	}
	placeholder := tokens.pairs[0].placeholder
	for _, breaker := range []string{" ", "\n", ".", "?", "!", ","} {
		if strings.Contains(placeholder, breaker) {
			t.Errorf("placeholder %q contains break character %q", placeholder, breaker)
		}
	}
	_ = protected
}

func TestMarkerFor_InputContainingMarker_ReturnsLongerMarker(t *testing.T) {
	// Arrange
	text := "teks aneh dengan __TOK di dalamnya"

	// Act
	marker := markerFor(text)

	// Assert
	if strings.Contains(text, marker) {
		t.Errorf("marker %q still occurs in input", marker)
	}
}

func TestRestore_NoPlaceholders_IsIdempotent(t *testing.T) {
	// Arrange
	_, tokens := Protect("halo @dunia")
	plain := "teks tanpa placeholder"

	// Act
	once := Restore(plain, tokens)
	twice := Restore(once, tokens)

	// Assert
	if once != plain || twice != plain {
		t.Errorf("restore not idempotent: %q -> %q -> %q", plain, once, twice)
	}
}
