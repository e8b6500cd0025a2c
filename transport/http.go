package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	httpSwagger "github.com/swaggo/http-swagger"

	cartapp "marketplace/application/cart"
	orderapp "marketplace/application/order"
	voucherapp "marketplace/application/voucher"
	"marketplace/constant"
	"marketplace/model"
	redisrepo "marketplace/repository/redis"
	utilsContext "marketplace/utils/context"
	"marketplace/utils/errors"
	validatorx "marketplace/utils/validator"
)

type RestHandler struct {
	CartApp    cartapp.CartApp
	VoucherApp voucherapp.VoucherApp
	OrderApp   orderapp.OrderApp
}

func NewTransport(cartApp cartapp.CartApp, voucherApp voucherapp.VoucherApp, orderApp orderapp.OrderApp, sessionRepo redisrepo.Repository, jwtSecret, internalAPIKey string) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		CartApp:    cartApp,
		VoucherApp: voucherApp,
		OrderApp:   orderApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// cart
	router.HandleFunc("/cart", rh.GetCart).Methods(http.MethodGet)
	router.HandleFunc("/cart", rh.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/cart/items", rh.AddCartItem).Methods(http.MethodPost)
	router.HandleFunc("/cart/items/{id}", rh.UpdateCartItem).Methods(http.MethodPatch)
	router.HandleFunc("/cart/items/{id}", rh.DeleteCartItem).Methods(http.MethodDelete)
	router.HandleFunc("/cart/sync", rh.SyncCart).Methods(http.MethodPost)

	// vouchers
	router.HandleFunc("/vouchers/validate", rh.ValidateVoucher).Methods(http.MethodPost)
	router.HandleFunc("/vouchers/available", rh.ListAvailableVouchers).Methods(http.MethodGet)

	// orders
	router.HandleFunc("/orders", rh.PlaceOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/status", rh.UpdateOrderStatus).Methods(http.MethodPatch)

	// internal routes for automated processes (delivery confirmation hooks)
	internal := router.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/orders/{id}/status", rh.InternalUpdateOrderStatus).Methods(http.MethodPatch)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(sessionRepo, jwtSecret))

	return router
}

// GetCart handler
// @Summary Get cart
// @Description Get the authenticated user's cart grouped by shop
// @Tags Cart
// @Produce json
// @Success 200 {object} model.CartView
// @Router /cart [get]
func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.CartApp.GetCart(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AddCartItem handler
// @Summary Add item to cart
// @Description Add a product (optionally a variant) to the cart; quantities above stock are capped and flagged
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.AddCartItemRequest true "Add Cart Item Request"
// @Success 200 {object} model.AddCartItemResponse
// @Failure 400 {object} errors.CustomError
// @Router /cart/items [post]
func (s *RestHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.AddToCart(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.UpdateItem(ctx, userID, itemID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.CartApp.RemoveItem(ctx, userID, itemID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// SyncCart handler
// @Summary Sync cart
// @Description Atomically replace the cart with the provided items (guest cart merge)
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.SyncCartRequest true "Sync Cart Request"
// @Success 200 {object} model.CartView
// @Failure 400 {object} errors.CustomError
// @Router /cart/sync [post]
func (s *RestHandler) SyncCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.SyncCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.SyncCart(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.CartApp.ClearCart(ctx, userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ValidateVoucher handler
// @Summary Validate voucher
// @Description Validate a voucher code against a shop and subtotal
// @Tags Voucher
// @Accept json
// @Produce json
// @Param request body model.ValidateVoucherRequest true "Validate Voucher Request"
// @Success 200 {object} model.VoucherValidationResult
// @Failure 400 {object} errors.CustomError
// @Router /vouchers/validate [post]
func (s *RestHandler) ValidateVoucher(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ValidateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.VoucherApp.Validate(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ListAvailableVouchers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shopID, err := strconv.ParseUint(r.URL.Query().Get("shop_id"), 10, 64)
	if err != nil || shopID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	subtotal, err := decimal.NewFromString(r.URL.Query().Get("subtotal"))
	if err != nil || subtotal.IsNegative() {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.VoucherApp.ListAvailable(ctx, shopID, subtotal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// PlaceOrder handler
// @Summary Place order
// @Description Convert the cart into one order per shop, all-or-nothing
// @Tags Order
// @Accept json
// @Produce json
// @Param request body model.PlaceOrderRequest true "Place Order Request"
// @Success 200 {object} model.PlaceOrderResponse
// @Failure 400 {object} errors.CustomError
// @Failure 409 {object} errors.CustomError
// @Router /orders [post]
func (s *RestHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.PlaceOrder(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.OrderApp.ListOrders(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.GetOrder(ctx, userID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateOrderStatus handler
// @Summary Update order status
// @Description Enact one order lifecycle transition as the buyer or seller
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdateOrderStatusRequest true "Update Order Status Request"
// @Success 200 {object} model.OrderSummary
// @Failure 403 {object} errors.CustomError
// @Failure 409 {object} errors.CustomError
// @Router /orders/{id}/status [patch]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.UpdateStatus(ctx, userID, orderID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.SystemUpdateStatus(ctx, orderID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func pathID(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[name], 10, 64)
}
