package thread

import (
	"strings"
	"testing"
)

func TestExtractURLs_TwoURLs_ReturnsInOrder(t *testing.T) {
	// Arrange
	text := "lihat https://a.example/satu dan https://b.example/dua ya"

	// Act
	remainder, urls := ExtractURLs(text)

	// Assert
	if len(urls) != 2 {
		t.Fatalf("url count: got %d, want 2", len(urls))
	}
	if urls[0] != "https://a.example/satu" || urls[1] != "https://b.example/dua" {
		t.Errorf("urls out of order: %v", urls)
	}
	if strings.Contains(remainder, "https://") {
		t.Errorf("remainder still contains a url: %q", remainder)
	}
}

func TestExtractURLs_URLWithFragment_NotMistakenForHashtag(t *testing.T) {
	// Arrange
	text := "dokumen di https://example.com/page#section2 tersedia"

	// Act
	remainder, urls := ExtractURLs(text)
	_, hashtags := ExtractHashtags(remainder)

	// Assert
	if len(urls) != 1 {
		t.Fatalf("url count: got %d, want 1", len(urls))
	}
	if urls[0] != "https://example.com/page#section2" {
		t.Errorf("url: got %q", urls[0])
	}
	if len(hashtags) != 0 {
		t.Errorf("fragment misread as hashtag: %v", hashtags)
	}
}

func TestExtractHashtags_MultipleTags_ReturnsInOrderAndTrims(t *testing.T) {
	// Arrange
	text := "#Pertama isi teks #Kedua "

	// Act
	remainder, hashtags := ExtractHashtags(text)

	// Assert
	if len(hashtags) != 2 {
		t.Fatalf("hashtag count: got %d, want 2", len(hashtags))
	}
	if hashtags[0] != "#Pertama" || hashtags[1] != "#Kedua" {
		t.Errorf("hashtags out of order: %v", hashtags)
	}
	if remainder != "isi teks" {
		t.Errorf("remainder: got %q, want %q", remainder, "isi teks")
	}
}

func TestExtractHashtags_NoTags_ReturnsTrimmedTextAndNil(t *testing.T) {
	// Arrange
	text := "  teks biasa saja  "

	// Act
	remainder, hashtags := ExtractHashtags(text)

	// Assert
	if remainder != "teks biasa saja" {
		t.Errorf("remainder: got %q", remainder)
	}
	if len(hashtags) != 0 {
		t.Errorf("hashtags: got %v, want none", hashtags)
	}
}
