package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"wallpapermod/internal/domain"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

const defaultMaxPayload = 64 << 20

type archiveStore interface {
	Save(ctx context.Context, url, contentType string, data []byte) (string, error)
}

// HTTPFetcher downloads an image and decodes only enough of it to learn
// its pixel dimensions and format. Payloads that are not one of the
// supported raster formats surface as domain.ErrUnsupportedMediaType.
// Evidence capture is a property of the fetch, so an optional archive
// store receives every decodable payload.
type HTTPFetcher struct {
	http       *http.Client
	retries    retry.Strategy
	maxPayload int64
	archive    archiveStore
	logger     *zlog.Zerolog
}

func New(retries retry.Strategy, archive archiveStore, logger *zlog.Zerolog) *HTTPFetcher {
	return &HTTPFetcher{
		http:       &http.Client{Timeout: 60 * time.Second},
		retries:    retries,
		maxPayload: defaultMaxPayload,
		archive:    archive,
		logger:     logger,
	}
}

func (f *HTTPFetcher) FetchDimensions(ctx context.Context, url string) (domain.Dimensions, error) {
	var data []byte
	var contentType string
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := f.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
		}
		contentType = resp.Header.Get("Content-Type")
		data, err = io.ReadAll(io.LimitReader(resp.Body, f.maxPayload))
		return err
	}, f.retries)
	if err != nil {
		return domain.Dimensions{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("decode %s (%s): %w", url, contentType, domain.ErrUnsupportedMediaType)
	}

	if f.archive != nil {
		if key, err := f.archive.Save(ctx, url, contentType, data); err != nil {
			f.logger.Warn().Err(err).Str("url", url).Msg("Failed to archive image payload")
		} else {
			f.logger.Debug().Str("url", url).Str("key", key).Msg("Image payload archived")
		}
	}

	return domain.Dimensions{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: strings.ToUpper(format),
	}, nil
}
