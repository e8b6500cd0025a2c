package cart_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	appcart "marketplace/application/cart"
	"marketplace/constant"
	cartmocks "marketplace/mocks/repository/cart"
	productmocks "marketplace/mocks/repository/product"
	shopmocks "marketplace/mocks/repository/shop"
	txmocks "marketplace/mocks/repository/tx"
	"marketplace/model"
	cerr "marketplace/utils/errors"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func u64Ptr(v uint64) *uint64 {
	return &v
}

func availableRow(id, productID uint64, qty int, price string, shopID int64, shopName string) model.CartItemDetail {
	return model.CartItemDetail{
		ID:          id,
		UserID:      1,
		ProductID:   productID,
		Quantity:    qty,
		ProductName: nullStr("product"),
		UnitPrice:   nullDec(price),
		Stock:       nullInt(100),
		ShopID:      nullInt(shopID),
		ShopName:    nullStr(shopName),
		ShopStatus:  nullStr("active"),
	}
}

func TestBuildView(t *testing.T) {
	deleted := model.CartItemDetail{ID: 5, UserID: 1, ProductID: 99, Quantity: 1}
	suspended := availableRow(6, 50, 1, "10.00", 3, "Closed Shop")
	suspended.ShopStatus = nullStr("suspended")
	// Variant deleted: the row still carries the coalesced base price, but
	// it must not be sold at it.
	variantGone := availableRow(7, 10, 2, "25.00", 1, "Shop A")
	variantGone.VariantID = u64Ptr(77)
	variantGone.VariantName = sql.NullString{}

	rows := []model.CartItemDetail{
		availableRow(1, 10, 2, "25.00", 1, "Shop A"),
		availableRow(2, 11, 1, "60.00", 2, "Shop B"),
		availableRow(3, 12, 4, "5.00", 1, "Shop A"),
		deleted,
		suspended,
		variantGone,
	}

	view := appcart.BuildView(rows)

	if len(view.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(view.Groups))
	}
	// Groups keep first-appearance order.
	if view.Groups[0].ShopID != 1 || view.Groups[1].ShopID != 2 {
		t.Fatalf("group order = [%d %d], want [1 2]", view.Groups[0].ShopID, view.Groups[1].ShopID)
	}
	if len(view.Groups[0].Items) != 2 {
		t.Fatalf("shop 1 items = %d, want 2", len(view.Groups[0].Items))
	}
	if !view.Groups[0].Subtotal.Equal(dec("70.00")) {
		t.Fatalf("shop 1 subtotal = %s, want 70.00", view.Groups[0].Subtotal)
	}
	if !view.Groups[1].Subtotal.Equal(dec("60.00")) {
		t.Fatalf("shop 2 subtotal = %s, want 60.00", view.Groups[1].Subtotal)
	}
	if !view.GrandTotal.Equal(dec("130.00")) {
		t.Fatalf("grand total = %s, want 130.00", view.GrandTotal)
	}
	if len(view.Unavailable) != 3 {
		t.Fatalf("unavailable = %d, want 3", len(view.Unavailable))
	}
	for _, item := range view.Unavailable {
		if !item.Unavailable {
			t.Fatalf("item %d not flagged unavailable", item.ItemID)
		}
	}
}

func TestBuildView_Empty(t *testing.T) {
	view := appcart.BuildView(nil)
	if len(view.Groups) != 0 || len(view.Unavailable) != 0 {
		t.Fatalf("empty cart produced groups=%d unavailable=%d", len(view.Groups), len(view.Unavailable))
	}
	if !view.GrandTotal.IsZero() {
		t.Fatalf("grand total = %s, want 0", view.GrandTotal)
	}
}

func TestCartApp_AddToCart(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		cartRepo    *cartmocks.CartRepository
		productRepo *productmocks.ProductRepository
		shopRepo    *shopmocks.ShopRepository
	}
	newFields := func(t *testing.T) fields {
		return fields{
			txRepo:      txmocks.NewTxRepository(t),
			cartRepo:    cartmocks.NewCartRepository(t),
			productRepo: productmocks.NewProductRepository(t),
			shopRepo:    shopmocks.NewShopRepository(t),
		}
	}
	activeShop := &model.Shop{ID: 3, OwnerID: 9, Name: "Shop", Status: constant.ShopStatusActive}

	tests := []struct {
		name        string
		req         *model.AddCartItemRequest
		mockCall    func(f fields)
		want        *model.AddCartItemResponse
		wantErr     bool
		errCode     constant.ErrorType
	}{
		{
			name: "success: new item within stock",
			req:  &model.AddCartItemRequest{ProductID: 10, Quantity: 2},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 20, ShopID: 3}, nil).Once()
				f.shopRepo.On("GetByID", mock.Anything, uint64(3)).Return(activeShop, nil).Once()
				f.cartRepo.On("GetItem", mock.Anything, uint64(1), uint64(10), (*uint64)(nil)).Return(nil, nil).Once()
				f.cartRepo.On("AddQuantity", mock.Anything, uint64(1), uint64(10), (*uint64)(nil), 2, int64(20)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 2}, nil).Once()
			},
			want: &model.AddCartItemResponse{ItemID: 7, Quantity: 2},
		},
		{
			name: "success: merges with existing row and caps at stock",
			req:  &model.AddCartItemRequest{ProductID: 10, Quantity: 8},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 10, ShopID: 3}, nil).Once()
				f.shopRepo.On("GetByID", mock.Anything, uint64(3)).Return(activeShop, nil).Once()
				f.cartRepo.On("GetItem", mock.Anything, uint64(1), uint64(10), (*uint64)(nil)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 5}, nil).Once()
				f.cartRepo.On("AddQuantity", mock.Anything, uint64(1), uint64(10), (*uint64)(nil), 8, int64(10)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 10}, nil).Once()
			},
			want: &model.AddCartItemResponse{ItemID: 7, Quantity: 10, StockLimited: true},
		},
		{
			// Another request adds to the same row between our read and our
			// write; the write is a delta so the final quantity reflects both.
			name: "success: concurrent add accumulates instead of overwriting",
			req:  &model.AddCartItemRequest{ProductID: 10, Quantity: 3},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 20, ShopID: 3}, nil).Once()
				f.shopRepo.On("GetByID", mock.Anything, uint64(3)).Return(activeShop, nil).Once()
				f.cartRepo.On("GetItem", mock.Anything, uint64(1), uint64(10), (*uint64)(nil)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 1}, nil).Once()
				f.cartRepo.On("AddQuantity", mock.Anything, uint64(1), uint64(10), (*uint64)(nil), 3, int64(20)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 6}, nil).Once()
			},
			want: &model.AddCartItemResponse{ItemID: 7, Quantity: 6},
		},
		{
			name: "error: product not found",
			req:  &model.AddCartItemRequest{ProductID: 99, Quantity: 1},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(99), (*uint64)(nil)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: shop suspended",
			req:  &model.AddCartItemRequest{ProductID: 10, Quantity: 1},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 20, ShopID: 3}, nil).Once()
				f.shopRepo.On("GetByID", mock.Anything, uint64(3)).
					Return(&model.Shop{ID: 3, Status: constant.ShopStatusSuspended}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrShopUnavailable,
		},
		{
			name: "error: out of stock",
			req:  &model.AddCartItemRequest{ProductID: 10, Quantity: 3},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 0, ShopID: 3}, nil).Once()
				f.shopRepo.On("GetByID", mock.Anything, uint64(3)).Return(activeShop, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: repository failure",
			req:  &model.AddCartItemRequest{ProductID: 10, Quantity: 1},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := appcart.NewCartApp(f.txRepo, f.cartRepo, f.productRepo, f.shopRepo)

			got, err := app.AddToCart(context.Background(), 1, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddToCart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.ItemID != tt.want.ItemID || got.Quantity != tt.want.Quantity || got.StockLimited != tt.want.StockLimited {
				t.Fatalf("AddToCart() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCartApp_UpdateItem(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		cartRepo    *cartmocks.CartRepository
		productRepo *productmocks.ProductRepository
		shopRepo    *shopmocks.ShopRepository
	}
	newFields := func(t *testing.T) fields {
		return fields{
			txRepo:      txmocks.NewTxRepository(t),
			cartRepo:    cartmocks.NewCartRepository(t),
			productRepo: productmocks.NewProductRepository(t),
			shopRepo:    shopmocks.NewShopRepository(t),
		}
	}

	tests := []struct {
		name     string
		itemID   uint64
		req      *model.UpdateCartItemRequest
		mockCall func(f fields)
		want     *model.AddCartItemResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: quantity within stock",
			itemID: 7,
			req:    &model.UpdateCartItemRequest{Quantity: 4},
			mockCall: func(f fields) {
				f.cartRepo.On("GetItemByID", mock.Anything, uint64(1), uint64(7)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 2}, nil).Once()
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 20, ShopID: 3}, nil).Once()
				f.cartRepo.On("UpdateQuantity", mock.Anything, uint64(1), uint64(7), 4).Return(nil).Once()
			},
			want: &model.AddCartItemResponse{ItemID: 7, Quantity: 4},
		},
		{
			name:   "success: capped at stock",
			itemID: 7,
			req:    &model.UpdateCartItemRequest{Quantity: 50},
			mockCall: func(f fields) {
				f.cartRepo.On("GetItemByID", mock.Anything, uint64(1), uint64(7)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 2}, nil).Once()
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 6, ShopID: 3}, nil).Once()
				f.cartRepo.On("UpdateQuantity", mock.Anything, uint64(1), uint64(7), 6).Return(nil).Once()
			},
			want: &model.AddCartItemResponse{ItemID: 7, Quantity: 6, StockLimited: true},
		},
		{
			name:   "error: item not found",
			itemID: 99,
			req:    &model.UpdateCartItemRequest{Quantity: 1},
			mockCall: func(f fields) {
				f.cartRepo.On("GetItemByID", mock.Anything, uint64(1), uint64(99)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:   "error: product gone",
			itemID: 7,
			req:    &model.UpdateCartItemRequest{Quantity: 1},
			mockCall: func(f fields) {
				f.cartRepo.On("GetItemByID", mock.Anything, uint64(1), uint64(7)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 2}, nil).Once()
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:   "error: stock is zero",
			itemID: 7,
			req:    &model.UpdateCartItemRequest{Quantity: 2},
			mockCall: func(f fields) {
				f.cartRepo.On("GetItemByID", mock.Anything, uint64(1), uint64(7)).
					Return(&model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 2}, nil).Once()
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 0, ShopID: 3}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := appcart.NewCartApp(f.txRepo, f.cartRepo, f.productRepo, f.shopRepo)

			got, err := app.UpdateItem(context.Background(), 1, tt.itemID, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateItem() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.ItemID != tt.want.ItemID || got.Quantity != tt.want.Quantity || got.StockLimited != tt.want.StockLimited {
				t.Fatalf("UpdateItem() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCartApp_SyncCart(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		cartRepo    *cartmocks.CartRepository
		productRepo *productmocks.ProductRepository
		shopRepo    *shopmocks.ShopRepository
	}
	newFields := func(t *testing.T) fields {
		return fields{
			txRepo:      txmocks.NewTxRepository(t),
			cartRepo:    cartmocks.NewCartRepository(t),
			productRepo: productmocks.NewProductRepository(t),
			shopRepo:    shopmocks.NewShopRepository(t),
		}
	}

	tests := []struct {
		name     string
		req      *model.SyncCartRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: replaces cart, capping to stock",
			req: &model.SyncCartRequest{Items: []model.AddCartItemRequest{
				{ProductID: 10, Quantity: 2},
				{ProductID: 11, Quantity: 9},
			}},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 20, ShopID: 3}, nil).Once()
				f.productRepo.On("GetInfo", mock.Anything, uint64(11), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 11, Name: "q", Price: dec("7.00"), Stock: 4, ShopID: 3}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.cartRepo.On("ReplaceAllTx", mock.Anything, tx, uint64(1), []model.CartItem{
					{UserID: 1, ProductID: 10, Quantity: 2},
					{UserID: 1, ProductID: 11, Quantity: 4},
				}).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.cartRepo.On("GetItems", mock.Anything, uint64(1)).Return([]model.CartItemDetail{}, nil).Once()
			},
		},
		{
			name: "error: unknown product rejected",
			req: &model.SyncCartRequest{Items: []model.AddCartItemRequest{
				{ProductID: 99, Quantity: 1},
			}},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(99), (*uint64)(nil)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: ReplaceAllTx failure rolls back",
			req: &model.SyncCartRequest{Items: []model.AddCartItemRequest{
				{ProductID: 10, Quantity: 2},
			}},
			mockCall: func(f fields) {
				f.productRepo.On("GetInfo", mock.Anything, uint64(10), (*uint64)(nil)).
					Return(&model.ProductInfo{ProductID: 10, Name: "p", Price: dec("5.00"), Stock: 20, ShopID: 3}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.cartRepo.On("ReplaceAllTx", mock.Anything, tx, uint64(1), mock.Anything).Return(errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := appcart.NewCartApp(f.txRepo, f.cartRepo, f.productRepo, f.shopRepo)

			got, err := app.SyncCart(context.Background(), 1, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SyncCart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got == nil {
				t.Fatal("SyncCart() returned nil view")
			}
		})
	}
}
