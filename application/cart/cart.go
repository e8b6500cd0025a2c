package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketplace/constant"
	"marketplace/model"
	cartrepo "marketplace/repository/cart"
	productrepo "marketplace/repository/product"
	shoprepo "marketplace/repository/shop"
	txrepo "marketplace/repository/tx"
	"marketplace/utils/errors"
	"marketplace/utils/logger"
)

type CartApp interface {
	GetCart(ctx context.Context, userID uint64) (*model.CartView, error)
	AddToCart(ctx context.Context, userID uint64, req *model.AddCartItemRequest) (*model.AddCartItemResponse, error)
	UpdateItem(ctx context.Context, userID, itemID uint64, req *model.UpdateCartItemRequest) (*model.AddCartItemResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uint64) error
	ClearCart(ctx context.Context, userID uint64) error
	SyncCart(ctx context.Context, userID uint64, req *model.SyncCartRequest) (*model.CartView, error)
}

type cartAppImpl struct {
	txRepo      txrepo.TxRepository
	cartRepo    cartrepo.CartRepository
	productRepo productrepo.ProductRepository
	shopRepo    shoprepo.ShopRepository
}

func NewCartApp(txRepo txrepo.TxRepository, cartRepo cartrepo.CartRepository, productRepo productrepo.ProductRepository, shopRepo shoprepo.ShopRepository) CartApp {
	return &cartAppImpl{txRepo: txRepo, cartRepo: cartRepo, productRepo: productRepo, shopRepo: shopRepo}
}

// BuildView groups joined cart rows by shop and computes per-shop and grand
// totals. Rows whose product/variant is gone or whose shop is not active go
// to the unavailable list and are excluded from every subtotal.
func BuildView(rows []model.CartItemDetail) *model.CartView {
	view := &model.CartView{
		Groups:      make([]model.ShopCartGroup, 0),
		Unavailable: make([]model.CartItemView, 0),
		GrandTotal:  decimal.Zero,
	}
	groupIdx := make(map[uint64]int)

	for i := range rows {
		d := &rows[i]
		item := model.CartItemView{
			ItemID:    d.ID,
			ProductID: d.ProductID,
			VariantID: d.VariantID,
			Quantity:  d.Quantity,
		}
		if d.ProductName.Valid {
			item.ProductName = d.ProductName.String
		}
		if d.VariantName.Valid {
			item.VariantName = d.VariantName.String
		}

		if !d.Available() {
			item.Unavailable = true
			view.Unavailable = append(view.Unavailable, item)
			continue
		}

		item.UnitPrice = d.UnitPrice.Decimal
		item.LineTotal = d.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(d.Quantity)))

		shopID := uint64(d.ShopID.Int64)
		idx, ok := groupIdx[shopID]
		if !ok {
			idx = len(view.Groups)
			groupIdx[shopID] = idx
			view.Groups = append(view.Groups, model.ShopCartGroup{
				ShopID:   shopID,
				ShopName: d.ShopName.String,
				Items:    make([]model.CartItemView, 0),
				Subtotal: decimal.Zero,
			})
		}
		view.Groups[idx].Items = append(view.Groups[idx].Items, item)
		view.Groups[idx].Subtotal = view.Groups[idx].Subtotal.Add(item.LineTotal)
		view.GrandTotal = view.GrandTotal.Add(item.LineTotal)
	}

	return view
}

func (s *cartAppImpl) GetCart(ctx context.Context, userID uint64) (*model.CartView, error) {
	rows, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		logger.Error("[GetCart] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return BuildView(rows), nil
}

// AddToCart upserts on (user, product, variant). A requested quantity above
// the available stock is capped at the stock and flagged stock_limited
// rather than rejected; checkout re-validates stock anyway. The add and the
// cap happen in one repository statement so concurrent adds of the same row
// accumulate instead of overwriting each other.
func (s *cartAppImpl) AddToCart(ctx context.Context, userID uint64, req *model.AddCartItemRequest) (*model.AddCartItemResponse, error) {
	info, err := s.productRepo.GetInfo(ctx, req.ProductID, req.VariantID)
	if err != nil {
		logger.Error("[AddToCart] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if info == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	shop, err := s.shopRepo.GetByID(ctx, info.ShopID)
	if err != nil {
		logger.Error("[AddToCart] get shop", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if shop == nil || shop.Status != constant.ShopStatusActive {
		return nil, errors.SetCustomError(constant.ErrShopUnavailable)
	}

	if info.Stock < 1 {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInsufficientStock, "product is out of stock")
	}

	existing := 0
	if item, err := s.cartRepo.GetItem(ctx, userID, req.ProductID, req.VariantID); err != nil {
		logger.Error("[AddToCart] get cart item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	} else if item != nil {
		existing = item.Quantity
	}

	item, err := s.cartRepo.AddQuantity(ctx, userID, req.ProductID, req.VariantID, req.Quantity, int64(info.Stock))
	if err != nil {
		logger.Error("[AddToCart] add quantity", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	limited := item.Quantity < existing+req.Quantity
	return &model.AddCartItemResponse{ItemID: item.ID, Quantity: item.Quantity, StockLimited: limited}, nil
}

// UpdateItem sets an absolute quantity with the same cap policy as AddToCart.
func (s *cartAppImpl) UpdateItem(ctx context.Context, userID, itemID uint64, req *model.UpdateCartItemRequest) (*model.AddCartItemResponse, error) {
	item, err := s.cartRepo.GetItemByID(ctx, userID, itemID)
	if err != nil {
		logger.Error("[UpdateCartItem] get cart item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if item == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	info, err := s.productRepo.GetInfo(ctx, item.ProductID, item.VariantID)
	if err != nil {
		logger.Error("[UpdateCartItem] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if info == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	target, limited := capAtStock(req.Quantity, info.Stock)
	if target < 1 {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInsufficientStock, "product is out of stock")
	}

	if err := s.cartRepo.UpdateQuantity(ctx, userID, itemID, target); err != nil {
		logger.Error("[UpdateCartItem] update quantity", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.AddCartItemResponse{ItemID: itemID, Quantity: target, StockLimited: limited}, nil
}

func (s *cartAppImpl) RemoveItem(ctx context.Context, userID, itemID uint64) error {
	if err := s.cartRepo.DeleteItem(ctx, userID, itemID); err != nil {
		if err == sql.ErrNoRows {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[RemoveCartItem] delete item", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *cartAppImpl) ClearCart(ctx context.Context, userID uint64) error {
	if err := s.cartRepo.DeleteAll(ctx, userID); err != nil {
		logger.Error("[ClearCart] delete all", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// SyncCart atomically replaces the whole cart with the provided set, used
// for the guest-to-authenticated merge. Unknown products are rejected so a
// stale guest cart surfaces instead of silently shrinking.
func (s *cartAppImpl) SyncCart(ctx context.Context, userID uint64, req *model.SyncCartRequest) (*model.CartView, error) {
	items := make([]model.CartItem, 0, len(req.Items))
	for i := range req.Items {
		it := &req.Items[i]
		info, err := s.productRepo.GetInfo(ctx, it.ProductID, it.VariantID)
		if err != nil {
			logger.Error("[SyncCart] get product", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if info == nil {
			return nil, errors.SetCustomErrorWithDetail(constant.ErrNotFound, fmt.Sprintf("product %d not found", it.ProductID))
		}
		qty, _ := capAtStock(it.Quantity, info.Stock)
		if qty < 1 {
			continue
		}
		items = append(items, model.CartItem{
			UserID:    userID,
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  qty,
		})
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[SyncCart] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.cartRepo.ReplaceAllTx(ctx, tx, userID, items); err != nil {
		logger.Error("[SyncCart] replace all", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[SyncCart] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return s.GetCart(ctx, userID)
}

// capAtStock clamps a requested quantity to the available stock; the second
// return reports whether clamping happened.
func capAtStock(requested int, stock int64) (int, bool) {
	if int64(requested) <= stock {
		return requested, false
	}
	return int(stock), true
}
