package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
	"github.com/custodia-labs/ordersnap/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// minImageBytes rejects error pages and tracking pixels served as images.
const minImageBytes = 1024

// htmlSignatures identify an HTML page returned instead of an image.
var htmlSignatures = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
}

// ImportService runs the snapshot pipeline: sniff, decode, materialise,
// rewrite, scrape, then download remaining external images.
type ImportService struct {
	decoder      driven.SnapshotDecoder
	extractor    driven.OrderExtractor
	materialiser *ImageMaterialiser
	files        driven.FileStore
	fetcher      driven.ImageFetcher
	downloadDir  string
}

// NewImportService creates a new import service.
// fetcher may be nil, in which case external images are left as URLs.
func NewImportService(
	decoder driven.SnapshotDecoder,
	extractor driven.OrderExtractor,
	files driven.FileStore,
	fetcher driven.ImageFetcher,
	storage domain.StorageSettings,
	images domain.ImageSettings,
) *ImportService {
	return &ImportService{
		decoder:      decoder,
		extractor:    extractor,
		materialiser: NewImageMaterialiser(files, storage.PublicPrefix, images.MHTMLDir),
		files:        files,
		fetcher:      fetcher,
		downloadDir:  strings.Trim(images.DownloadDir, "/"),
	}
}

// Import turns one snapshot into orders.
func (s *ImportService) Import(
	ctx context.Context,
	snapshot domain.RawSnapshot,
	progress domain.ProgressFunc,
) (*driving.ImportResult, error) {
	if len(snapshot.Content) == 0 {
		return nil, fmt.Errorf("%w: snapshot %q is empty", domain.ErrInvalidInput, snapshot.Name)
	}

	content := string(snapshot.Content)
	format := domain.DetectFormat(content)
	result := &driving.ImportResult{Format: format}

	logger.Section("Import " + snapshot.Name)
	progress.Emit(domain.ProgressEvent{
		Stage:   domain.StageParsing,
		Message: fmt.Sprintf("Parsing %s snapshot", format),
	})

	html := content
	images := domain.NewImageMap(nil)
	if format == domain.FormatMHTML {
		doc, err := s.decoder.Decode(content)
		if err != nil {
			return nil, err
		}
		logger.Info("decoded %d html characters and %d images", len(doc.HTMLContent), len(doc.Images))

		images = s.materialiser.Materialise(ctx, doc.Images)
		result.ImagesMaterialised = images.Len()
		html = RewriteImageURLs(doc.HTMLContent, images)
	}

	orders, err := s.extractor.Extract(ctx, html, images, progress)
	if err != nil {
		return nil, err
	}
	result.Orders = orders

	if s.fetcher != nil {
		if err := s.downloadImages(ctx, result, progress); err != nil {
			return nil, err
		}
	}

	progress.Emit(domain.ProgressEvent{
		Stage:       domain.StageComplete,
		Message:     fmt.Sprintf("Imported %d orders", len(result.Orders)),
		OrdersFound: len(result.Orders),
	})
	return result, nil
}

// downloadImages fetches external item images one at a time. A failed
// download leaves the item's external URL in place. Only context
// cancellation stops the loop.
func (s *ImportService) downloadImages(ctx context.Context, result *driving.ImportResult, progress domain.ProgressFunc) error {
	var pending []*domain.ParsedOrderItem
	for i := range result.Orders {
		for j := range result.Orders[i].Items {
			if item := &result.Orders[i].Items[j]; item.NeedsDownload() {
				pending = append(pending, item)
			}
		}
	}
	if len(pending) == 0 {
		return nil
	}

	logger.Section("Images")
	progress.Emit(domain.ProgressEvent{
		Stage:      domain.StageImages,
		Message:    fmt.Sprintf("Downloading %d images", len(pending)),
		TotalItems: len(pending),
	})

	if err := s.files.EnsureDir(ctx, s.downloadDir); err != nil {
		logger.Warn("cannot create download directory %s: %v", s.downloadDir, err)
		result.ImagesFailed = len(pending)
		return nil
	}

	for n, item := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := s.storeImage(ctx, item.ImageURL)
		if err != nil {
			logger.Warn("image download failed for %q: %v", item.ProductTitle, err)
			result.ImagesFailed++
		} else {
			item.SetLocalImage(rel)
			result.ImagesDownloaded++
		}

		progress.Emit(domain.ProgressEvent{
			Stage:          domain.StageImages,
			Message:        "Downloaded image",
			TotalItems:     len(pending),
			ProcessedItems: n + 1,
			CurrentItem:    item.ProductTitle,
		})
	}
	return nil
}

// storeImage downloads url and writes it under the download directory,
// reusing an existing file with the same name.
func (s *ImportService) storeImage(ctx context.Context, url string) (string, error) {
	img, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if err := validateImage(img); err != nil {
		return "", err
	}

	rel := path.Join(s.downloadDir, domain.ImageFilename(url, img.ContentType))
	exists, err := s.files.Exists(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", rel, err)
	}
	if exists {
		return rel, nil
	}
	if err := s.files.WriteFile(ctx, rel, img.Data); err != nil {
		return "", fmt.Errorf("writing %s: %w", rel, err)
	}
	return rel, nil
}

// validateImage rejects responses that are not plausibly an image.
func validateImage(img *driven.FetchedImage) error {
	if !strings.HasPrefix(strings.ToLower(img.ContentType), "image/") {
		return fmt.Errorf("%w: content type %q", domain.ErrImageRejected, img.ContentType)
	}

	head := img.Data
	if len(head) > 64 {
		head = head[:64]
	}
	head = bytes.ToLower(bytes.TrimLeft(head, " \t\r\n\ufeff"))
	for _, sig := range htmlSignatures {
		if bytes.HasPrefix(head, sig) {
			return fmt.Errorf("%w: html document", domain.ErrImageRejected)
		}
	}

	if len(img.Data) < minImageBytes {
		return fmt.Errorf("%w: only %d bytes", domain.ErrImageRejected, len(img.Data))
	}
	return nil
}
