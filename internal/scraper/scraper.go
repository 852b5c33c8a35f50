package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/google/uuid"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
	"github.com/custodia-labs/ordersnap/internal/logger"
)

// Ensure Scraper implements the interface.
var _ driven.OrderExtractor = (*Scraper)(nil)

// maxSellerLength guards against generic store selectors matching a whole block.
const maxSellerLength = 100

var (
	pageOrderNumber = regexp.MustCompile(`(?is)order[^\d]{0,40}?(\d{10,})`)
	pageDollarPrice = regexp.MustCompile(`\$\s*(\d[\d.,]*)`)
	pageTotalText   = regexp.MustCompile(`(?i)total[:\s]*(?:US\s*)?\$?\s*(\d[\d.,]*)`)
)

// Config carries the source-specific values the scraper needs.
type Config struct {
	// SourceName is recorded as each order's supplier.
	SourceName string

	// BaseURL resolves root-relative links.
	BaseURL string

	// CDNHost is preferred when choosing among images and gets its
	// thumbnail size tokens rewritten to ImageSize.
	CDNHost   string
	ImageSize string

	// PublicPrefix marks image URLs that already point at local storage.
	PublicPrefix string

	// OrderIDPrefix prefixes synthesized order numbers.
	OrderIDPrefix string

	// Now is used for missing dates and synthesized ids. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the configuration for the default source site.
func DefaultConfig() Config {
	return Config{
		SourceName:    domain.DefaultSourceName,
		BaseURL:       domain.DefaultBaseURL,
		CDNHost:       domain.DefaultCDNHost,
		ImageSize:     domain.DefaultImageSize,
		PublicPrefix:  domain.DefaultPublicPrefix,
		OrderIDPrefix: "AE_",
	}
}

// Scraper extracts orders from order-history HTML.
// It holds no per-document state and is safe for concurrent use.
type Scraper struct {
	classifier driven.ComponentClassifier
	rules      Rules
	cfg        Config
}

// New creates a Scraper. Invalid selectors in rules are dropped with a warning.
func New(classifier driven.ComponentClassifier, rules Rules, cfg Config) *Scraper {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.OrderIDPrefix == "" {
		cfg.OrderIDPrefix = "AE_"
	}
	rules.OrderContainers = validSelectors(rules.OrderContainers)
	rules.ItemContainers = validSelectors(rules.ItemContainers)
	rules.OrderTotalRegions = validSelectors(rules.OrderTotalRegions)
	rules.UnitPriceRegions = validSelectors(rules.UnitPriceRegions)
	rules.ItemTotalRegions = validSelectors(rules.ItemTotalRegions)
	rules.ImageContainers = validSelectors(rules.ImageContainers)
	rules.SpecEntries = validSelectors(rules.SpecEntries)
	rules.Variation = validSelectors(rules.Variation)
	return &Scraper{classifier: classifier, rules: rules, cfg: cfg}
}

func validSelectors(selectors []string) []string {
	out := selectors[:0:0]
	for _, s := range selectors {
		if _, err := cascadia.Compile(s); err != nil {
			logger.Warn("ignoring invalid selector %q: %v", s, err)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Extract returns the orders found in html, in document order.
func (sc *Scraper) Extract(ctx context.Context, html string, images domain.ImageMap, progress domain.ProgressFunc) ([]domain.ParsedOrder, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, domain.NewDocumentFormatError(domain.ReasonNoOrdersFound, err.Error())
	}

	progress.Emit(domain.ProgressEvent{Stage: domain.StageOrders, Message: "Looking for orders"})

	containers, selector := sc.orderContainers(doc)
	if containers != nil {
		logger.Debug("order containers: %d via %q", containers.Length(), selector)
		orders, err := sc.extractOrders(ctx, containers, images, progress)
		if err != nil {
			return nil, err
		}
		if len(orders) > 0 {
			return orders, nil
		}
		logger.Warn("containers matched %q but no order could be assembled", selector)
	}

	if order, ok := sc.wholePageOrder(doc, images); ok {
		progress.Emit(domain.ProgressEvent{
			Stage:       domain.StageOrders,
			Message:     "Extracted a single order from the whole page",
			OrdersFound: 1,
		})
		return []domain.ParsedOrder{order}, nil
	}

	if order, ok := sc.textScanOrder(doc); ok {
		progress.Emit(domain.ProgressEvent{
			Stage:       domain.StageOrders,
			Message:     "Extracted a minimal order from page text",
			OrdersFound: 1,
		})
		return []domain.ParsedOrder{order}, nil
	}

	return nil, domain.NewDocumentFormatError(domain.ReasonNoOrdersFound, "no order data found on the page")
}

// orderContainers returns every match of the first selector that matches
// anything.
func (sc *Scraper) orderContainers(doc *goquery.Document) (*goquery.Selection, string) {
	for _, selector := range sc.rules.OrderContainers {
		if found := doc.Find(selector); found.Length() > 0 {
			return found, selector
		}
	}
	return nil, ""
}

func (sc *Scraper) extractOrders(ctx context.Context, containers *goquery.Selection, images domain.ImageMap, progress domain.ProgressFunc) ([]domain.ParsedOrder, error) {
	total := containers.Length()
	progress.Emit(domain.ProgressEvent{
		Stage:       domain.StageOrders,
		Message:     fmt.Sprintf("Found %d order containers", total),
		OrdersFound: total,
	})

	assembled := make([]*domain.ParsedOrder, total)
	for i := range containers.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		container := containers.Eq(i)
		progress.Emit(domain.ProgressEvent{
			Stage:        domain.StageOrders,
			Message:      fmt.Sprintf("Processing order %d of %d", i+1, total),
			OrdersFound:  total,
			CurrentOrder: i + 1,
		})

		order, _ := sc.extractOrder(container, images, progress)
		if len(order.Items) == 0 {
			logger.Info("skipped order container %d: no items found", i+1)
			progress.Emit(domain.ProgressEvent{
				Stage:        domain.StageOrders,
				Message:      fmt.Sprintf("Skipped order %d: no items found", i+1),
				OrdersFound:  total,
				CurrentOrder: i + 1,
			})
			continue
		}
		assembled[i] = &order
	}

	var orders []domain.ParsedOrder
	for i, order := range assembled {
		if order == nil {
			continue
		}
		if wrapsAssembled(containers, assembled, i) {
			logger.Info("skipped order container %d: it wraps other orders", i+1)
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// wrapsAssembled reports whether container i encloses another container
// that produced an order. Such a container is a list wrapper, not an order.
func wrapsAssembled(containers *goquery.Selection, assembled []*domain.ParsedOrder, i int) bool {
	outer := containers.Eq(i)
	for j, order := range assembled {
		if j != i && order != nil && outer.Contains(containers.Get(j)) {
			return true
		}
	}
	return false
}

// extractOrder assembles an order from a container. The second result
// reports whether the order number came from the page.
func (sc *Scraper) extractOrder(s *goquery.Selection, images domain.ImageMap, progress domain.ProgressFunc) (domain.ParsedOrder, bool) {
	order := domain.ParsedOrder{
		Supplier: sc.cfg.SourceName,
		Status:   domain.StatusOrdered,
	}

	number, _, found := FirstMatch(s, sc.rules.OrderNumber)
	if !found {
		number = sc.syntheticOrderNumber()
	}
	order.OrderNumber = number

	if date, _, ok := FirstMatch(s, sc.rules.OrderDate); ok {
		order.OrderDate = date
	} else {
		order.OrderDate = sc.cfg.Now().UTC()
	}

	if text, _, ok := FirstMatch(s, sc.rules.Status); ok {
		order.Status = CanonicalStatus(text)
	}

	if seller, _, ok := FirstMatch(s, sc.rules.Seller); ok && len(seller) <= maxSellerLength {
		order.SellerName = seller
	}

	order.Items = sc.extractItems(s, order.SellerName, images, progress)
	order.TotalAmount = sc.orderTotal(s, &order)
	return order, found
}

func (sc *Scraper) extractItems(s *goquery.Selection, seller string, images domain.ImageMap, progress domain.ProgressFunc) []domain.ParsedOrderItem {
	itemSel := s
	for _, selector := range sc.rules.ItemContainers {
		if found := s.Find(selector); found.Length() > 0 {
			itemSel = found
			break
		}
	}

	total := itemSel.Length()
	var items []domain.ParsedOrderItem
	for i := range itemSel.Nodes {
		item, ok := sc.extractItem(itemSel.Eq(i), images)
		if !ok {
			progress.Emit(domain.ProgressEvent{
				Stage:          domain.StageItems,
				Message:        fmt.Sprintf("Skipped item %d: no product title", i+1),
				TotalItems:     total,
				ProcessedItems: i + 1,
			})
			continue
		}
		item.SellerName = seller
		items = append(items, item)
		progress.Emit(domain.ProgressEvent{
			Stage:          domain.StageItems,
			Message:        "Parsed item",
			TotalItems:     total,
			ProcessedItems: i + 1,
			CurrentItem:    item.ProductTitle,
		})
	}
	return items
}

func (sc *Scraper) orderTotal(s *goquery.Selection, order *domain.ParsedOrder) float64 {
	total, _, scoped := extractPrice(s, sc.rules.OrderTotalRegions, sc.rules.PriceTiers)
	if scoped && total > 0 {
		return total
	}
	if sum := roundCents(order.ItemsTotal()); sum > 0 {
		return sum
	}
	if total > 0 {
		return total
	}
	if m := pageTotalText.FindStringSubmatch(textOf(s)); m != nil {
		if v, ok := ParsePrice(m[1]); ok {
			return v
		}
	}
	return 0
}

func (sc *Scraper) syntheticOrderNumber() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return sc.cfg.OrderIDPrefix + strconv.FormatInt(sc.cfg.Now().UnixMilli(), 10) + "_" + suffix
}

// wholePageOrder treats the document body as one order. It is accepted
// only with at least one item and either a page order number or a total.
func (sc *Scraper) wholePageOrder(doc *goquery.Document, images domain.ImageMap) (domain.ParsedOrder, bool) {
	body := doc.Find("body")
	if body.Length() == 0 {
		return domain.ParsedOrder{}, false
	}
	order, numbered := sc.extractOrder(body, images, nil)
	if len(order.Items) == 0 || (!numbered && order.TotalAmount <= 0) {
		return domain.ParsedOrder{}, false
	}
	return order, true
}

// textScanOrder builds a minimal one-item order from an order number and
// a dollar price found anywhere in the page text.
func (sc *Scraper) textScanOrder(doc *goquery.Document) (domain.ParsedOrder, bool) {
	text := textOf(doc.Selection)
	number := pageOrderNumber.FindStringSubmatch(text)
	priceMatch := pageDollarPrice.FindStringSubmatch(text)
	if number == nil || priceMatch == nil {
		return domain.ParsedOrder{}, false
	}
	price, ok := ParsePrice(priceMatch[1])
	if !ok {
		return domain.ParsedOrder{}, false
	}

	title := usableTitle(doc.Find("h1").First().Text())
	if title == "" {
		title = usableTitle(doc.Find("title").First().Text())
	}
	if title == "" {
		return domain.ParsedOrder{}, false
	}

	component := sc.classifier.Classify(title, nil)
	return domain.ParsedOrder{
		OrderNumber: number[1],
		OrderDate:   sc.cfg.Now().UTC(),
		TotalAmount: price,
		Supplier:    sc.cfg.SourceName,
		Status:      domain.StatusOrdered,
		Items: []domain.ParsedOrderItem{{
			ProductTitle:    title,
			Quantity:        1,
			UnitPrice:       price,
			TotalPrice:      price,
			ParsedComponent: &component,
		}},
	}, true
}
