// Package fixtures provides yt-dlp JSON fixtures for testing the
// metadata parser.
package fixtures

// GenerateSinglePostJSON creates metadata for a simple video post.
func GenerateSinglePostJSON() string {
	return `{
    "id": "ABC123",
    "uploader": "natgeo",
    "uploader_id": "natgeo",
    "description": "A lion at dawn",
    "like_count": 1200,
    "comment_count": 34,
    "thumbnail": "https://cdn.example/thumb.jpg",
    "vcodec": "h264"
}`
}

// GenerateImagePostJSON creates metadata for a single-image post.
func GenerateImagePostJSON() string {
	return `{
    "id": "IMG456",
    "uploader": "painter",
    "description": "Oil on canvas",
    "like_count": 87,
    "comment_count": 3,
    "thumbnail": "https://cdn.example/canvas.jpg",
    "vcodec": "none"
}`
}

// GenerateCarouselJSON creates playlist metadata for a multi-item post.
func GenerateCarouselJSON() string {
	return `{
    "_type": "playlist",
    "id": "CAR789",
    "uploader": "traveler",
    "description": "Three days in Bali",
    "entries": [
        {"thumbnail": "https://cdn.example/first.jpg", "vcodec": "none"},
        {"thumbnail": "https://cdn.example/second.jpg", "vcodec": "h264"}
    ]
}`
}

// GenerateAnonymousPostJSON creates metadata with only an uploader id.
func GenerateAnonymousPostJSON() string {
	return `{
    "uploader_id": "plain_id",
    "description": "x"
}`
}
