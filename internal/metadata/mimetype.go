package metadata

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
)

// sniffBytes is enough for every signature mimetype knows about
const sniffBytes = 3072

// detectMediaType derives the media category of a token whose metadata carries none
// by sniffing the first bytes of its image. Detection failures fall back to art.
func (f *fetcher) detectMediaType(ctx context.Context, image string) domain.MediaType {
	if image == "" {
		return domain.MediaTypeArt
	}

	resolvedURL, err := f.uriResolver.Resolve(ctx, image)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to resolve URI for mime type detection",
			zap.String("url", image),
			zap.Error(err))
		return domain.MediaTypeArt
	}

	content, err := f.httpClient.GetPartialContent(ctx, resolvedURL, sniffBytes)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to download content for mime type detection",
			zap.String("url", resolvedURL),
			zap.Error(err))
		return domain.MediaTypeArt
	}

	mtype := mimetype.Detect(content).String()
	logger.DebugCtx(ctx, "Detected mime type",
		zap.String("url", resolvedURL),
		zap.String("mimeType", mtype))

	return MediaTypeFromMime(mtype)
}

// MediaTypeFromMime maps a MIME type onto the marketplace media categories
func MediaTypeFromMime(mime string) domain.MediaType {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}

	switch {
	case mime == "image/gif":
		return domain.MediaTypeGif
	case strings.HasPrefix(mime, "image/"):
		return domain.MediaTypeImage
	case strings.HasPrefix(mime, "video/"):
		return domain.MediaTypeVideo
	case strings.HasPrefix(mime, "audio/"):
		return domain.MediaTypeMusic
	default:
		return domain.MediaTypeArt
	}
}
