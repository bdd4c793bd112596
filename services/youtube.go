package services

import (
	"context"
	"os"
	"regexp"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// PlaylistMetadata is the resolved display data for a submitted playlist,
// taken from the playlist's first item.
type PlaylistMetadata struct {
	Title        string
	ThumbnailURL string
	VideoID      string
	PlaylistID   string
}

// Resolver resolves a playlist url to its display metadata.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (*PlaylistMetadata, error)
}

var playlistIDPattern = regexp.MustCompile(`[?&]list=([^&]+)`)

// ExtractPlaylistID pulls the playlist id out of a YouTube playlist url.
func ExtractPlaylistID(rawURL string) (string, bool) {
	m := playlistIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// YouTubeResolver resolves playlist metadata through the YouTube Data API.
type YouTubeResolver struct {
	svc *youtube.Service
}

// NewYouTubeResolver builds a resolver from YOUTUBE_API_KEY. Extra options
// (custom endpoint, http client) are for tests.
func NewYouTubeResolver(ctx context.Context, opts ...option.ClientOption) (*YouTubeResolver, error) {
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, all...)
	if err != nil {
		return nil, err
	}
	return &YouTubeResolver{svc: svc}, nil
}

func (r *YouTubeResolver) Resolve(ctx context.Context, rawURL string) (*PlaylistMetadata, error) {
	playlistID, ok := ExtractPlaylistID(rawURL)
	if !ok {
		return nil, &InvalidURLError{URL: rawURL}
	}

	resp, err := r.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &UpstreamError{URL: rawURL, Err: err}
	}
	if len(resp.Items) == 0 {
		return nil, ErrEmptyPlaylist
	}

	snippet := resp.Items[0].Snippet
	meta := &PlaylistMetadata{
		Title:        snippet.Title,
		ThumbnailURL: bestThumbnail(snippet.Thumbnails),
		PlaylistID:   playlistID,
	}
	if snippet.ResourceId != nil {
		meta.VideoID = snippet.ResourceId.VideoId
	}
	return meta, nil
}

// bestThumbnail picks the highest available resolution.
func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}
