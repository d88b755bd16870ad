package web_test

import (
	"testing"

	"reposter/internal/adapters/web"
	"reposter/internal/domain"
)

func TestParseInput_PostURL_ReturnsPostKindAndShortcode(t *testing.T) {
	// Arrange
	input := "https://www.instagram.com/p/Cxyz123AbCd/"

	// Act
	kind, value, err := web.ParseInput(input)

	// Assert
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if kind != domain.KindPost {
		t.Errorf("kind: got %v, want %v", kind, domain.KindPost)
	}
	if value != "Cxyz123AbCd" {
		t.Errorf("value: got %v, want Cxyz123AbCd", value)
	}
}

func TestParseInput_ReelURL_ReturnsReelKind(t *testing.T) {
	// Arrange
	input := "https://instagram.com/reel/Dk9Q8wXyZ12"

	// Act
	kind, value, err := web.ParseInput(input)

	// Assert
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if kind != domain.KindReel {
		t.Errorf("kind: got %v, want %v", kind, domain.KindReel)
	}
	if value != "Dk9Q8wXyZ12" {
		t.Errorf("value: got %v", value)
	}
}

func TestParseInput_WWWPrefixWithoutScheme_IsAccepted(t *testing.T) {
	// Arrange
	input := "www.instagram.com/tv/Xy12345Abc"

	// Act
	kind, value, err := web.ParseInput(input)

	// Assert
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if kind != domain.KindTV {
		t.Errorf("kind: got %v, want %v", kind, domain.KindTV)
	}
	if value != "Xy12345Abc" {
		t.Errorf("value: got %v", value)
	}
}

func TestParseInput_ProfileURL_ReturnsProfileKind(t *testing.T) {
	// Arrange
	input := "https://www.instagram.com/natgeo/"

	// Act
	kind, value, err := web.ParseInput(input)

	// Assert
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if kind != domain.KindProfile {
		t.Errorf("kind: got %v, want %v", kind, domain.KindProfile)
	}
	if value != "natgeo" {
		t.Errorf("value: got %v, want natgeo", value)
	}
}

func TestParseInput_BareUsername_ReturnsProfileKind(t *testing.T) {
	// Arrange
	input := "natgeo"

	// Act
	kind, value, err := web.ParseInput(input)

	// Assert
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if kind != domain.KindProfile || value != "natgeo" {
		t.Errorf("got kind=%v value=%v", kind, value)
	}
}

func TestParseInput_DeepLinkEndingInShortcode_ReturnsPostKind(t *testing.T) {
	// Arrange
	input := "https://www.instagram.com/stories/highlights/Abc123XYZ9"

	// Act
	kind, value, err := web.ParseInput(input)

	// Assert
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if kind != domain.KindPost {
		t.Errorf("kind: got %v, want %v", kind, domain.KindPost)
	}
	if value != "Abc123XYZ9" {
		t.Errorf("value: got %v", value)
	}
}

func TestParseInput_EmptyInput_ReturnsError(t *testing.T) {
	// Act
	_, _, err := web.ParseInput("   ")

	// Assert
	if err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseInput_URLWithEmptyPath_ReturnsError(t *testing.T) {
	// Act
	_, _, err := web.ParseInput("https://www.instagram.com/")

	// Assert
	if err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
