package services

import (
	"context"
	"errors"

	"veneya/internal/repos"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCheckout   = errors.New("checkout has no lines to record")
)

// CheckoutLine is one product counter from the sales screen. Zero counts
// are allowed on input and skipped at recording time.
type CheckoutLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutResult reports what a checkout wrote: the shared checkout id,
// the zone every line was tagged with, and the per-line sale ids in input
// order.
type CheckoutResult struct {
	CheckoutID string  `json:"checkout_id"`
	Zone       string  `json:"zone"`
	SaleIDs    []int64 `json:"sale_ids"`
}

type SaleService struct {
	Sales *repos.SaleRepo
	Zones *ZoneService
	Log   *zap.Logger
}

func NewSaleService(sales *repos.SaleRepo, zones *ZoneService, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{Sales: sales, Zones: zones, Log: logger}
}

// Record persists a single sale line. The zone label arrives pre-resolved
// from the caller; it is not re-resolved per line.
func (s *SaleService) Record(productID int64, quantity int, zone, checkoutID string, ownerID int64, lat, lon float64) (int64, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	id, err := s.Sales.Record(productID, quantity, zone, checkoutID, ownerID, lat, lon)
	if err != nil {
		s.Log.Error("sale insert failed",
			zap.Int64("product_id", productID), zap.Int64("owner_id", ownerID), zap.Error(err))
		return 0, err
	}
	s.Log.Info("sale recorded",
		zap.Int64("sale_id", id), zap.Int64("product_id", productID),
		zap.Int("quantity", quantity), zap.String("zone", zone))
	return id, nil
}

// Checkout resolves the zone once for the whole action and records every
// line with a positive count. Each line commits independently: a failure
// mid-checkout leaves the lines already written in place, and the partial
// result is returned alongside the error.
func (s *SaleService) Checkout(ctx context.Context, ownerID int64, lines []CheckoutLine, lat, lon float64) (*CheckoutResult, error) {
	keep := lines[:0:0]
	for _, ln := range lines {
		if ln.Quantity > 0 {
			keep = append(keep, ln)
		}
	}
	if len(keep) == 0 {
		return nil, ErrEmptyCheckout
	}

	res := &CheckoutResult{
		CheckoutID: uuid.NewString(),
		Zone:       s.Zones.Resolve(ctx, lat, lon),
	}
	for _, ln := range keep {
		id, err := s.Record(ln.ProductID, ln.Quantity, res.Zone, res.CheckoutID, ownerID, lat, lon)
		if err != nil {
			return res, err
		}
		res.SaleIDs = append(res.SaleIDs, id)
	}
	return res, nil
}
