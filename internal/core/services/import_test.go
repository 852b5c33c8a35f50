package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ordersnap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
)

const mhtmlSnapshot = "MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/related; boundary=\"b\"\r\n\r\n--b\r\n"

// fakeDecoder returns a fixed document.
type fakeDecoder struct {
	doc   *domain.ParsedDocument
	err   error
	calls int
}

func (d *fakeDecoder) Decode(string) (*domain.ParsedDocument, error) {
	d.calls++
	return d.doc, d.err
}

// fakeExtractor records its input and returns fixed orders.
type fakeExtractor struct {
	orders []domain.ParsedOrder
	err    error
	html   string
	images domain.ImageMap
}

func (e *fakeExtractor) Extract(_ context.Context, html string, images domain.ImageMap, progress domain.ProgressFunc) ([]domain.ParsedOrder, error) {
	e.html = html
	e.images = images
	progress.Emit(domain.ProgressEvent{Stage: domain.StageOrders, Message: "Looking for orders"})
	if e.err != nil {
		return nil, e.err
	}
	// Hand out a copy so tests can compare against the original.
	out := make([]domain.ParsedOrder, len(e.orders))
	for i, o := range e.orders {
		o.Items = append([]domain.ParsedOrderItem(nil), o.Items...)
		out[i] = o
	}
	return out, nil
}

// fakeFetcher serves canned responses by URL.
type fakeFetcher struct {
	responses map[string]*driven.FetchedImage
	requested []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*driven.FetchedImage, error) {
	f.requested = append(f.requested, url)
	if img, ok := f.responses[url]; ok {
		return img, nil
	}
	return nil, errors.Join(domain.ErrImageFetch, errors.New("404"))
}

func jpeg(size int) *driven.FetchedImage {
	return &driven.FetchedImage{Data: bytes.Repeat([]byte{0xff}, size), ContentType: "image/jpeg"}
}

func orderWithImages(urls ...string) domain.ParsedOrder {
	order := domain.ParsedOrder{
		OrderNumber: "8123456789012345",
		OrderDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Supplier:    "AliExpress",
		Status:      domain.StatusDelivered,
	}
	for _, u := range urls {
		order.Items = append(order.Items, domain.ParsedOrderItem{
			ProductTitle: "item " + u,
			Quantity:     1,
			ImageURL:     u,
		})
	}
	return order
}

func newImportService(dec *fakeDecoder, ext *fakeExtractor, files *memory.FileStore, fetcher driven.ImageFetcher) *ImportService {
	d := domain.DefaultSettings()
	return NewImportService(dec, ext, files, fetcher, d.Storage, d.Images)
}

func TestImportService_EmptySnapshot(t *testing.T) {
	svc := newImportService(&fakeDecoder{}, &fakeExtractor{}, memory.NewFileStore(), nil)

	_, err := svc.Import(context.Background(), domain.RawSnapshot{Name: "empty.html"}, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportService_PlainHTMLSkipsDecoder(t *testing.T) {
	dec := &fakeDecoder{}
	ext := &fakeExtractor{orders: []domain.ParsedOrder{orderWithImages()}}
	svc := newImportService(dec, ext, memory.NewFileStore(), nil)

	result, err := svc.Import(context.Background(), domain.RawSnapshot{
		Name:    "orders.html",
		Content: []byte("<html><body>orders</body></html>"),
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.FormatHTML, result.Format)
	assert.Equal(t, 0, dec.calls)
	assert.Equal(t, "<html><body>orders</body></html>", ext.html)
	assert.Len(t, result.Orders, 1)
}

func TestImportService_MHTMLMaterialisesAndRewrites(t *testing.T) {
	const original = "https://ae01.alicdn.com/kf/Sa1.jpg"
	dec := &fakeDecoder{doc: &domain.ParsedDocument{
		HTMLContent: `<img src="` + original + `">`,
		Images:      []domain.DecodedImage{decodedImage(original, "Sa1.jpg", "jpeg bytes")},
	}}
	ext := &fakeExtractor{orders: []domain.ParsedOrder{orderWithImages()}}
	files := memory.NewFileStore()
	svc := newImportService(dec, ext, files, nil)

	result, err := svc.Import(context.Background(), domain.RawSnapshot{Name: "orders.mhtml", Content: []byte(mhtmlSnapshot)}, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.FormatMHTML, result.Format)
	assert.Equal(t, 1, result.ImagesMaterialised)
	assert.Equal(t, `<img src="/uploads/mhtml/Sa1.jpg">`, ext.html)
	local, ok := ext.images.Lookup(original)
	require.True(t, ok)
	assert.Equal(t, "/uploads/mhtml/Sa1.jpg", local)
	_, ok = files.ReadFile("mhtml/Sa1.jpg")
	assert.True(t, ok)
}

func TestImportService_DocumentFormatErrorPassesThrough(t *testing.T) {
	dec := &fakeDecoder{err: domain.NewDocumentFormatError(domain.ReasonBoundaryNotFound, "no boundary")}
	svc := newImportService(dec, &fakeExtractor{}, memory.NewFileStore(), nil)

	_, err := svc.Import(context.Background(), domain.RawSnapshot{Name: "x.mhtml", Content: []byte(mhtmlSnapshot)}, nil)

	assert.ErrorIs(t, err, domain.ErrDocumentFormat)
	assert.True(t, domain.IsDocumentFormatReason(err, domain.ReasonBoundaryNotFound))
}

func TestImportService_ExtractorErrorPassesThrough(t *testing.T) {
	ext := &fakeExtractor{err: domain.NewDocumentFormatError(domain.ReasonNoOrdersFound, "")}
	svc := newImportService(&fakeDecoder{}, ext, memory.NewFileStore(), nil)

	_, err := svc.Import(context.Background(), domain.RawSnapshot{Name: "x.html", Content: []byte("<html></html>")}, nil)

	assert.True(t, domain.IsDocumentFormatReason(err, domain.ReasonNoOrdersFound))
}

func TestImportService_DownloadsExternalImages(t *testing.T) {
	const good = "https://ae01.alicdn.com/kf/Sgood.jpg"
	const small = "https://ae01.alicdn.com/kf/Ssmall.jpg"
	const page = "https://ae01.alicdn.com/kf/Spage.jpg"
	const missing = "https://ae01.alicdn.com/kf/Smissing.jpg"
	const text = "https://ae01.alicdn.com/kf/Stext.jpg"

	fetcher := &fakeFetcher{responses: map[string]*driven.FetchedImage{
		good:  jpeg(2048),
		small: jpeg(10),
		page:  {Data: append([]byte("  <!DOCTYPE html><html>"), make([]byte, 2048)...), ContentType: "image/jpeg"},
		text:  {Data: make([]byte, 2048), ContentType: "text/html"},
	}}
	order := orderWithImages(good, small, page, missing, text)
	order.Items = append(order.Items, domain.ParsedOrderItem{ProductTitle: "local", LocalImagePath: "mhtml/a.jpg"})
	ext := &fakeExtractor{orders: []domain.ParsedOrder{order}}
	files := memory.NewFileStore()
	svc := newImportService(&fakeDecoder{}, ext, files, fetcher)

	result, err := svc.Import(context.Background(), domain.RawSnapshot{Name: "x.html", Content: []byte("<html></html>")}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{good, small, page, missing, text}, fetcher.requested)
	assert.Equal(t, 1, result.ImagesDownloaded)
	assert.Equal(t, 4, result.ImagesFailed)

	items := result.Orders[0].Items
	assert.Equal(t, "downloads/Sgood.jpg", items[0].LocalImagePath)
	assert.Empty(t, items[0].ImageURL)
	for _, item := range items[1:5] {
		assert.Empty(t, item.LocalImagePath)
		assert.NotEmpty(t, item.ImageURL, "failed download keeps its url")
	}
	assert.Equal(t, "mhtml/a.jpg", items[5].LocalImagePath)
	assert.Equal(t, []string{"downloads/Sgood.jpg"}, files.Paths("downloads/"))
}

func TestImportService_DownloadReusesExistingFile(t *testing.T) {
	const url = "https://ae01.alicdn.com/kf/Sgood.jpg"
	ctx := context.Background()
	files := memory.NewFileStore()
	require.NoError(t, files.WriteFile(ctx, "downloads/Sgood.jpg", []byte("kept")))
	fetcher := &fakeFetcher{responses: map[string]*driven.FetchedImage{url: jpeg(4096)}}
	ext := &fakeExtractor{orders: []domain.ParsedOrder{orderWithImages(url)}}
	svc := newImportService(&fakeDecoder{}, ext, files, fetcher)

	result, err := svc.Import(ctx, domain.RawSnapshot{Name: "x.html", Content: []byte("<html></html>")}, nil)

	require.NoError(t, err)
	assert.Equal(t, "downloads/Sgood.jpg", result.Orders[0].Items[0].LocalImagePath)
	data, _ := files.ReadFile("downloads/Sgood.jpg")
	assert.Equal(t, "kept", string(data))
}

func TestImportService_CancelledDuringDownload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher := &fakeFetcher{}
	ext := &fakeExtractor{orders: []domain.ParsedOrder{orderWithImages("https://ae01.alicdn.com/kf/S1.jpg")}}
	svc := newImportService(&fakeDecoder{}, ext, memory.NewFileStore(), fetcher)

	_, err := svc.Import(ctx, domain.RawSnapshot{Name: "x.html", Content: []byte("<html></html>")}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.requested)
}

func TestImportService_ProgressOrder(t *testing.T) {
	const url = "https://ae01.alicdn.com/kf/Sgood.jpg"
	fetcher := &fakeFetcher{responses: map[string]*driven.FetchedImage{url: jpeg(2048)}}
	ext := &fakeExtractor{orders: []domain.ParsedOrder{orderWithImages(url)}}
	svc := newImportService(&fakeDecoder{}, ext, memory.NewFileStore(), fetcher)

	var stages []domain.ProgressStage
	var last domain.ProgressEvent
	_, err := svc.Import(context.Background(), domain.RawSnapshot{Name: "x.html", Content: []byte("<html></html>")},
		func(e domain.ProgressEvent) {
			stages = append(stages, e.Stage)
			last = e
		})

	require.NoError(t, err)
	assert.Equal(t, []domain.ProgressStage{
		domain.StageParsing,
		domain.StageOrders,
		domain.StageImages,
		domain.StageImages,
		domain.StageComplete,
	}, stages)
	assert.Equal(t, 1, last.OrdersFound)
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name    string
		img     *driven.FetchedImage
		wantErr bool
	}{
		{"jpeg", jpeg(minImageBytes), false},
		{"too small", jpeg(minImageBytes - 1), true},
		{"wrong type", &driven.FetchedImage{Data: make([]byte, 2048), ContentType: "application/json"}, true},
		{"uppercase type", &driven.FetchedImage{Data: make([]byte, 2048), ContentType: "IMAGE/PNG"}, false},
		{"html body", &driven.FetchedImage{Data: append([]byte("\n<HTML>"), make([]byte, 2048)...), ContentType: "image/png"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateImage(tt.img)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrImageRejected)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
