package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketplace/application/pricing"
	appvoucher "marketplace/application/voucher"
	"marketplace/constant"
	"marketplace/model"
	cartrepo "marketplace/repository/cart"
	orderrepo "marketplace/repository/order"
	productrepo "marketplace/repository/product"
	shoprepo "marketplace/repository/shop"
	txrepo "marketplace/repository/tx"
	voucherrepo "marketplace/repository/voucher"
	"marketplace/thirdparty/rabbitmq"
	"marketplace/utils/errors"
	"marketplace/utils/logger"
)

type OrderApp interface {
	PlaceOrder(ctx context.Context, userID uint64, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error)
	UpdateStatus(ctx context.Context, actorID, orderID uint64, req *model.UpdateOrderStatusRequest) (*model.OrderSummary, error)
	SystemUpdateStatus(ctx context.Context, orderID uint64, req *model.UpdateOrderStatusRequest) (*model.OrderSummary, error)
	GetOrder(ctx context.Context, userID, orderID uint64) (*model.OrderDetailResponse, error)
	ListOrders(ctx context.Context, userID uint64) ([]model.OrderSummary, error)
}

type orderAppImpl struct {
	txRepo      txrepo.TxRepository
	cartRepo    cartrepo.CartRepository
	shopRepo    shoprepo.ShopRepository
	productRepo productrepo.ProductRepository
	voucherRepo voucherrepo.VoucherRepository
	orderRepo   orderrepo.OrderRepository
	publisher   *rabbitmq.Publisher
	now         func() time.Time
}

func NewOrderApp(txRepo txrepo.TxRepository, cartRepo cartrepo.CartRepository, shopRepo shoprepo.ShopRepository, productRepo productrepo.ProductRepository, voucherRepo voucherrepo.VoucherRepository, orderRepo orderrepo.OrderRepository, publisher *rabbitmq.Publisher) OrderApp {
	return &orderAppImpl{
		txRepo:      txRepo,
		cartRepo:    cartRepo,
		shopRepo:    shopRepo,
		productRepo: productRepo,
		voucherRepo: voucherRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

// repoError maps an infrastructure failure to its taxonomy slot. Lock wait
// timeouts and deadlocks are retryable by the caller; everything else is
// internal.
func repoError(err error) errors.CustomError {
	switch {
	case txrepo.IsLockWaitTimeout(err):
		return errors.SetCustomError(constant.ErrLockTimeout)
	case txrepo.IsDeadlock(err):
		return errors.SetCustomError(constant.ErrConflict)
	}
	return errors.SetCustomError(constant.ErrInternal)
}

type shopGroup struct {
	shopID   uint64
	rows     []*model.CartItemDetail
	subtotal decimal.Decimal
}

// PlaceOrder converts the user's cart into one order per shop inside a
// single transaction. Any failure (inactive shop, insufficient stock,
// exhausted voucher) rolls back every decrement and insert already made, so
// no partial orders are ever visible and the cart is never partially
// consumed.
func (s *orderAppImpl) PlaceOrder(ctx context.Context, userID uint64, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error) {
	if !req.PaymentMethod.Valid() {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "unknown payment method")
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[PlaceOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	rows, err := s.cartRepo.GetItemsTx(ctx, tx, userID)
	if err != nil {
		logger.Error("[PlaceOrder] get cart items", zap.String("error", err.Error()))
		return nil, repoError(err)
	}
	if len(rows) == 0 {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	groups := make([]*shopGroup, 0)
	groupIdx := make(map[uint64]int)
	for i := range rows {
		d := &rows[i]
		if !d.Available() {
			return nil, errors.SetCustomErrorWithDetail(constant.ErrNotFound,
				fmt.Sprintf("cart item %d is no longer available", d.ID))
		}
		shopID := uint64(d.ShopID.Int64)
		idx, ok := groupIdx[shopID]
		if !ok {
			idx = len(groups)
			groupIdx[shopID] = idx
			groups = append(groups, &shopGroup{shopID: shopID, subtotal: decimal.Zero})
		}
		line := d.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(d.Quantity)))
		groups[idx].rows = append(groups[idx].rows, d)
		groups[idx].subtotal = groups[idx].subtotal.Add(line)
	}

	voucherApplied := false
	summaries := make([]model.OrderSummary, 0, len(groups))
	events := make([]rabbitmq.OrderCreatedMessage, 0, len(groups))
	createdAt := s.now()

	for _, g := range groups {
		shop, err := s.shopRepo.GetByIDTx(ctx, tx, g.shopID)
		if err != nil {
			logger.Error("[PlaceOrder] get shop", zap.Uint64("shop_id", g.shopID), zap.String("error", err.Error()))
			return nil, repoError(err)
		}
		if shop == nil || shop.Status != constant.ShopStatusActive {
			return nil, errors.SetCustomErrorWithDetail(constant.ErrShopUnavailable,
				fmt.Sprintf("shop %d is not accepting orders", g.shopID))
		}

		// A voucher is shop-scoped: it applies to at most the one group
		// whose shop issued the code.
		discount := decimal.Zero
		var applied *model.Voucher
		if req.VoucherCode != "" && !voucherApplied {
			v, err := s.voucherRepo.GetByCodeTx(ctx, tx, g.shopID, req.VoucherCode)
			if err != nil {
				logger.Error("[PlaceOrder] get voucher", zap.String("error", err.Error()))
				return nil, repoError(err)
			}
			if v != nil {
				d, errType, detail := appvoucher.Evaluate(v, g.subtotal, createdAt)
				if errType != constant.Successful {
					return nil, errors.SetCustomErrorWithDetail(errType, detail)
				}
				discount = d
				applied = v
				voucherApplied = true
			}
		}

		for _, d := range g.rows {
			ok, err := s.productRepo.DecrementStockTx(ctx, tx, d.ProductID, d.VariantID, d.Quantity)
			if err != nil {
				logger.Error("[PlaceOrder] decrement stock", zap.Uint64("product_id", d.ProductID), zap.String("error", err.Error()))
				return nil, repoError(err)
			}
			if !ok {
				return nil, errors.SetCustomErrorWithDetail(constant.ErrInsufficientStock,
					fmt.Sprintf("insufficient stock for %s", d.ProductName.String))
			}
		}

		totals := pricing.ComputeTotals(g.subtotal, shop.ShippingFee, thresholdPtr(shop), discount)

		o := &model.Order{
			OrderNumber:    uuid.NewString(),
			BuyerID:        userID,
			ShopID:         g.shopID,
			Subtotal:       g.subtotal,
			ShippingFee:    totals.ShippingFeeApplied,
			DiscountAmount: discount,
			Total:          totals.Total,
			Status:         constant.OrderStatusPending,
			PaymentMethod:  req.PaymentMethod,
			PaymentStatus:  constant.PaymentStatusUnpaid,
			Recipient:      req.ShippingAddress.Recipient,
			Phone:          req.ShippingAddress.Phone,
			AddressLine:    req.ShippingAddress.Line,
			City:           req.ShippingAddress.City,
			Province:       req.ShippingAddress.Province,
			PostalCode:     req.ShippingAddress.PostalCode,
		}
		orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, o)
		if err != nil {
			logger.Error("[PlaceOrder] insert order", zap.String("error", err.Error()))
			return nil, repoError(err)
		}

		items := make([]model.OrderItem, 0, len(g.rows))
		for _, d := range g.rows {
			var variantName *string
			if d.VariantName.Valid {
				name := d.VariantName.String
				variantName = &name
			}
			items = append(items, model.OrderItem{
				OrderID:     orderID,
				ProductID:   d.ProductID,
				VariantID:   d.VariantID,
				ProductName: d.ProductName.String,
				VariantName: variantName,
				UnitPrice:   d.UnitPrice.Decimal,
				Quantity:    d.Quantity,
			})
		}
		if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, items); err != nil {
			logger.Error("[PlaceOrder] insert order items", zap.String("error", err.Error()))
			return nil, repoError(err)
		}

		if applied != nil {
			// The conditional increment is the authority on the usage limit;
			// losing the race here aborts the whole placement.
			ok, err := s.voucherRepo.IncrementUsageTx(ctx, tx, applied.ID)
			if err != nil {
				logger.Error("[PlaceOrder] increment voucher usage", zap.String("error", err.Error()))
				return nil, repoError(err)
			}
			if !ok {
				return nil, errors.SetCustomError(constant.ErrVoucherUsageLimitReached)
			}
			if err := s.orderRepo.InsertRedemptionTx(ctx, tx, applied.ID, orderID); err != nil {
				logger.Error("[PlaceOrder] insert redemption", zap.String("error", err.Error()))
				return nil, repoError(err)
			}
		}

		summaries = append(summaries, model.OrderSummary{
			OrderID:        orderID,
			OrderNumber:    o.OrderNumber,
			ShopID:         g.shopID,
			Subtotal:       o.Subtotal,
			DiscountAmount: o.DiscountAmount,
			ShippingFee:    o.ShippingFee,
			Total:          o.Total,
			Status:         o.Status,
			PaymentMethod:  o.PaymentMethod,
		})
		events = append(events, rabbitmq.OrderCreatedMessage{
			OrderID:     orderID,
			OrderNumber: o.OrderNumber,
			BuyerID:     userID,
			ShopID:      g.shopID,
			Total:       o.Total.StringFixed(2),
			CreatedAt:   createdAt,
		})
	}

	if req.VoucherCode != "" && !voucherApplied {
		return nil, errors.SetCustomError(constant.ErrVoucherNotFound)
	}

	if err := s.cartRepo.DeleteAllTx(ctx, tx, userID); err != nil {
		logger.Error("[PlaceOrder] clear cart", zap.String("error", err.Error()))
		return nil, repoError(err)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[PlaceOrder] commit tx", zap.String("error", err.Error()))
		return nil, repoError(err)
	}
	committed = true

	if s.publisher != nil {
		for _, msg := range events {
			if err := s.publisher.PublishOrderCreated(msg); err != nil {
				logger.Error("[PlaceOrder] publish order created", zap.Uint64("order_id", msg.OrderID), zap.String("error", err.Error()))
			}
		}
	}

	return &model.PlaceOrderResponse{Orders: summaries}, nil
}

func thresholdPtr(shop *model.Shop) *decimal.Decimal {
	if !shop.FreeShippingThreshold.Valid {
		return nil
	}
	t := shop.FreeShippingThreshold.Decimal
	return &t
}

// UpdateStatus enacts one lifecycle transition on behalf of a human actor.
// The seller moves an order through confirmed/packed/shipping, the buyer
// marks delivered/completed, and either side may cancel while the order has
// not yet shipped.
func (s *orderAppImpl) UpdateStatus(ctx context.Context, actorID, orderID uint64, req *model.UpdateOrderStatusRequest) (*model.OrderSummary, error) {
	return s.updateStatus(ctx, &actorID, orderID, req)
}

// SystemUpdateStatus is the automated-process path (internal API): the
// transition rules still apply, the actor check does not.
func (s *orderAppImpl) SystemUpdateStatus(ctx context.Context, orderID uint64, req *model.UpdateOrderStatusRequest) (*model.OrderSummary, error) {
	return s.updateStatus(ctx, nil, orderID, req)
}

func (s *orderAppImpl) updateStatus(ctx context.Context, actorID *uint64, orderID uint64, req *model.UpdateOrderStatusRequest) (*model.OrderSummary, error) {
	if !req.Status.Valid() {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "unknown order status")
	}
	if req.Status == constant.OrderStatusPending {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidStateTransition, "no transition leads back to pending")
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[UpdateOrderStatus] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	o, err := s.orderRepo.GetByIDTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[UpdateOrderStatus] get order", zap.String("error", err.Error()))
		return nil, repoError(err)
	}
	if o == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if actorID != nil {
		shop, err := s.shopRepo.GetByIDTx(ctx, tx, o.ShopID)
		if err != nil {
			logger.Error("[UpdateOrderStatus] get shop", zap.String("error", err.Error()))
			return nil, repoError(err)
		}
		isBuyer := *actorID == o.BuyerID
		isSeller := shop != nil && *actorID == shop.OwnerID
		if err := checkActor(req.Status, isBuyer, isSeller); err != nil {
			return nil, err
		}
	}

	if !o.Status.CanTransitionTo(req.Status) {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidStateTransition,
			fmt.Sprintf("cannot move order from %s to %s", o.Status, req.Status))
	}

	ok, err := s.orderRepo.UpdateStatusTx(ctx, tx, orderID, o.Status, req.Status)
	if err != nil {
		logger.Error("[UpdateOrderStatus] update status", zap.String("error", err.Error()))
		return nil, repoError(err)
	}
	if !ok {
		return nil, errors.SetCustomError(constant.ErrConflict)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[UpdateOrderStatus] commit tx", zap.String("error", err.Error()))
		return nil, repoError(err)
	}
	committed = true

	if s.publisher != nil {
		msg := rabbitmq.OrderStatusChangedMessage{
			OrderID:    orderID,
			BuyerID:    o.BuyerID,
			ShopID:     o.ShopID,
			FromStatus: string(o.Status),
			ToStatus:   string(req.Status),
			ChangedAt:  s.now(),
		}
		if err := s.publisher.PublishOrderStatusChanged(msg); err != nil {
			logger.Error("[UpdateOrderStatus] publish status changed", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		}
	}

	summary := toSummary(o)
	summary.Status = req.Status
	return &summary, nil
}

func checkActor(next constant.OrderStatus, isBuyer, isSeller bool) error {
	switch next {
	case constant.OrderStatusConfirmed, constant.OrderStatusPacked, constant.OrderStatusShipping:
		if !isSeller {
			return errors.SetCustomError(constant.ErrForbidden)
		}
	case constant.OrderStatusDelivered, constant.OrderStatusCompleted:
		if !isBuyer {
			return errors.SetCustomError(constant.ErrForbidden)
		}
	case constant.OrderStatusCancelled:
		if !isBuyer && !isSeller {
			return errors.SetCustomError(constant.ErrForbidden)
		}
	default:
		return errors.SetCustomError(constant.ErrForbidden)
	}
	return nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, userID, orderID uint64) (*model.OrderDetailResponse, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if o == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if o.BuyerID != userID {
		shop, err := s.shopRepo.GetByID(ctx, o.ShopID)
		if err != nil {
			logger.Error("[GetOrder] get shop", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if shop == nil || shop.OwnerID != userID {
			return nil, errors.SetCustomError(constant.ErrForbidden)
		}
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	views := make([]model.OrderItemView, 0, len(items))
	for i := range items {
		it := &items[i]
		v := model.OrderItemView{
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		}
		if it.VariantName != nil {
			v.VariantName = *it.VariantName
		}
		views = append(views, v)
	}

	return &model.OrderDetailResponse{
		OrderSummary:  toSummary(o),
		PaymentStatus: o.PaymentStatus,
		ShippingAddress: model.ShippingAddress{
			Recipient:  o.Recipient,
			Phone:      o.Phone,
			Line:       o.AddressLine,
			City:       o.City,
			Province:   o.Province,
			PostalCode: o.PostalCode,
		},
		Items:     views,
		CreatedAt: o.CreatedAt,
	}, nil
}

func (s *orderAppImpl) ListOrders(ctx context.Context, userID uint64) ([]model.OrderSummary, error) {
	orders, err := s.orderRepo.ListByBuyer(ctx, userID)
	if err != nil {
		logger.Error("[ListOrders] list by buyer", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	summaries := make([]model.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, toSummary(&orders[i]))
	}
	return summaries, nil
}

func toSummary(o *model.Order) model.OrderSummary {
	return model.OrderSummary{
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		ShopID:         o.ShopID,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		ShippingFee:    o.ShippingFee,
		Total:          o.Total,
		Status:         o.Status,
		PaymentMethod:  o.PaymentMethod,
	}
}
