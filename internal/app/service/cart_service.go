package service

import (
	"errors"

	"github.com/velmora/storefront-backend/config"
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/pricing"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/internal/app/selection"
	"github.com/velmora/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEmptySelection = errors.New("at least one color and size must be selected")
	ErrInvalidSize    = errors.New("size not available for this color")
	ErrColorMismatch  = errors.New("color does not belong to this product")
)

// CartView is the cart page payload: the persisted lines plus the summary
// recomputed from them on every read.
type CartView struct {
	Cart    *model.Cart     `json:"cart"`
	Summary pricing.Summary `json:"summary"`
}

// SelectionRow is one row of the current_selections payload for the cart
// edit modal.
type SelectionRow struct {
	ColorID   uint    `json:"color_id"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ColorOption describes one selectable color in the edit modal.
type ColorOption struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Code       string   `json:"code"`
	ExtraPrice float64  `json:"extra_price"`
	Sizes      []string `json:"sizes"`
}

// DiscountInfo is the wire shape of an active discount: 0 = percentage,
// 1 = fixed. Inactive discounts are omitted entirely.
type DiscountInfo struct {
	Type  model.DiscountKind `json:"type"`
	Value float64            `json:"value"`
}

// ProductSelectionData backs the cart edit modal: the product, its variant
// options, and the shopper's current selections for it.
type ProductSelectionData struct {
	ID                uint           `json:"id"`
	Name              string         `json:"name"`
	Price             float64        `json:"price"`          // discounted base price
	OriginalPrice     float64        `json:"original_price"` // list price before discount
	Image             string         `json:"image"`
	Discount          *DiscountInfo  `json:"discount"`
	Colors            []ColorOption  `json:"colors"`
	CurrentSelections []SelectionRow `json:"current_selections"`
}

type CartService interface {
	GetCart(userID uint) (*CartView, error)
	GetProductWithSelections(userID, productID uint) (*ProductSelectionData, error)
	UpdateProductSelections(userID, productID uint, sel selection.Selections) error
	ClearCart(userID uint) error
	CountItems(userID uint) (int64, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	pricingCfg  config.PricingConfig
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	pricingCfg config.PricingConfig,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		pricingCfg:  pricingCfg,
	}
}

func (s *cartService) GetCart(userID uint) (*CartView, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No cart yet: an empty view, not an error
			empty := &model.Cart{UserID: userID}
			return &CartView{
				Cart:    empty,
				Summary: s.summarize(nil, 0),
			}, nil
		}
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	view := &CartView{
		Cart:    cart,
		Summary: s.summarize(cart.Items, cart.CouponDiscount),
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cart.Items),
		"total":   view.Summary.Total,
	})
	return view, nil
}

// GetProductWithSelections assembles the edit-modal payload for one product:
// pricing, variant options, and the lines the user already has in the cart.
func (s *cartService) GetProductWithSelections(userID, productID uint) (*ProductSelectionData, error) {
	logger.Debug("Fetching product with selections", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for selections", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	data := &ProductSelectionData{
		ID:                product.ID,
		Name:              product.Name,
		Price:             pricing.ProductBasePrice(product.Price, product.Discount),
		OriginalPrice:     product.Price,
		Image:             product.PrimaryImage(),
		Colors:            make([]ColorOption, 0, len(product.Colors)),
		CurrentSelections: []SelectionRow{},
	}

	if product.Discount.IsActive() {
		data.Discount = &DiscountInfo{
			Type:  product.Discount.Kind,
			Value: product.Discount.Value,
		}
	}

	for _, color := range product.Colors {
		data.Colors = append(data.Colors, ColorOption{
			ID:         color.ID,
			Name:       color.Name,
			Code:       color.Code,
			ExtraPrice: color.ExtraPrice,
			Sizes:      color.SizeList(),
		})
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return data, nil
		}
		return nil, err
	}

	for _, item := range cart.Items {
		if item.ProductID != productID {
			continue
		}
		data.CurrentSelections = append(data.CurrentSelections, SelectionRow{
			ColorID:   item.ColorID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return data, nil
}

// UpdateProductSelections replaces a product's cart lines with the given
// selection set. Unit prices are computed server-side from the catalog;
// client-supplied prices are display hints only.
func (s *cartService) UpdateProductSelections(userID, productID uint, sel selection.Selections) error {
	logger.Info("Updating cart selections", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"colors":     len(sel),
		"quantity":   sel.TotalQuantity(),
	})

	if err := sel.Validate(); err != nil {
		logger.Warn("Cart update rejected: empty selection", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrEmptySelection
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart update", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	items, err := s.applySelections(product, sel)
	if err != nil {
		return err
	}

	cart, err := s.cartRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].CartID = cart.ID
	}

	if err := s.cartRepo.ReplaceProductItems(cart.ID, productID, items); err != nil {
		return err
	}

	if err := s.revalidateCoupon(cart); err != nil {
		return err
	}

	logger.Info("Cart selections updated successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"line_count": len(items),
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to clear
			return nil
		}
		return err
	}

	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	// An applied coupon has nothing left to apply to
	if cart.CouponCode != nil {
		if err := s.cartRepo.SetCoupon(cart.ID, nil, 0); err != nil {
			return err
		}
	}

	logger.Info("User cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func (s *cartService) CountItems(userID uint) (int64, error) {
	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.cartRepo.CountItems(cart.ID)
}

// applySelections turns a validated selection set into line items. One line
// per (color, size) pair, unit price = discounted base + color extra,
// quantities clamped to the configured range.
func (s *cartService) applySelections(product *model.Product, sel selection.Selections) ([]model.CartItem, error) {
	colorsByID := make(map[uint]*model.ProductColor, len(product.Colors))
	for i := range product.Colors {
		colorsByID[product.Colors[i].ID] = &product.Colors[i]
	}

	basePrice := pricing.ProductBasePrice(product.Price, product.Discount)

	var items []model.CartItem
	for _, colorID := range sel.SortedColorIDs() {
		color, ok := colorsByID[colorID]
		if !ok {
			logger.Warn("Selection references foreign color", map[string]interface{}{
				"product_id": product.ID,
				"color_id":   colorID,
			})
			return nil, ErrColorMismatch
		}

		for _, size := range sel.SortedSizes(colorID) {
			if !color.HasSize(size) {
				logger.Warn("Selection references unavailable size", map[string]interface{}{
					"color_id": colorID,
					"size":     size,
				})
				return nil, ErrInvalidSize
			}

			pick, _ := sel.Get(colorID, size)
			items = append(items, model.CartItem{
				ProductID: product.ID,
				ColorID:   colorID,
				Size:      size,
				Quantity:  pricing.ClampQuantity(pick.Quantity, s.pricingCfg.MaxQuantity),
				UnitPrice: pricing.LineUnitPrice(basePrice, color.ExtraPrice),
			})
		}
	}

	return items, nil
}

// summarize recomputes the cart summary from the full line set. It is never
// patched incrementally. An empty cart owes nothing, delivery included.
func (s *cartService) summarize(items []model.CartItem, couponDiscount float64) pricing.Summary {
	if len(items) == 0 {
		return pricing.Summary{}
	}
	return pricing.CartTotals(cartLines(items), s.pricingCfg.TaxRate, s.pricingCfg.DeliveryFee, couponDiscount)
}

// revalidateCoupon re-derives the applied coupon against the cart as it now
// stands, dropping it when the cart no longer qualifies.
func (s *cartService) revalidateCoupon(cart *model.Cart) error {
	if cart.CouponCode == nil {
		return nil
	}

	fresh, err := s.cartRepo.FindByUserID(cart.UserID)
	if err != nil {
		return err
	}

	discount, err := couponDiscountFor(s.couponRepo, *cart.CouponCode, fresh.Items, s.pricingCfg)
	if err != nil {
		logger.Info("Dropping coupon after cart change", map[string]interface{}{
			"cart_id": cart.ID,
			"code":    *cart.CouponCode,
			"reason":  err.Error(),
		})
		return s.cartRepo.SetCoupon(cart.ID, nil, 0)
	}

	return s.cartRepo.SetCoupon(cart.ID, cart.CouponCode, discount)
}
