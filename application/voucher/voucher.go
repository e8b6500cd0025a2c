package voucher

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketplace/constant"
	"marketplace/model"
	voucherrepo "marketplace/repository/voucher"
	"marketplace/utils/errors"
	"marketplace/utils/logger"
)

type VoucherApp interface {
	Validate(ctx context.Context, req *model.ValidateVoucherRequest) (*model.VoucherValidationResult, error)
	ListAvailable(ctx context.Context, shopID uint64, subtotal decimal.Decimal) ([]model.AvailableVoucher, error)
}

type voucherAppImpl struct {
	voucherRepo voucherrepo.VoucherRepository
	now         func() time.Time
}

func NewVoucherApp(voucherRepo voucherrepo.VoucherRepository) VoucherApp {
	return &voucherAppImpl{voucherRepo: voucherRepo, now: time.Now}
}

// Validate checks one code against a shop and subtotal. Ineligibility is
// not an error here: the result carries valid=false plus the reason code,
// so callers can render it. Only infrastructure failures return an error.
func (s *voucherAppImpl) Validate(ctx context.Context, req *model.ValidateVoucherRequest) (*model.VoucherValidationResult, error) {
	v, err := s.voucherRepo.GetByCode(ctx, req.ShopID, req.Code)
	if err != nil {
		logger.Error("[ValidateVoucher] get voucher", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	discount, errType, detail := Evaluate(v, req.Subtotal, s.now())
	if errType != constant.Successful {
		return &model.VoucherValidationResult{
			Valid:          false,
			DiscountAmount: decimal.Zero,
			Reason:         constant.ReasonCode[errType],
			Detail:         detail,
		}, nil
	}

	return &model.VoucherValidationResult{
		Valid:          true,
		DiscountAmount: discount,
	}, nil
}

// ListAvailable returns the shop's vouchers the given subtotal qualifies
// for, best discount first, each annotated with its computed discount.
func (s *voucherAppImpl) ListAvailable(ctx context.Context, shopID uint64, subtotal decimal.Decimal) ([]model.AvailableVoucher, error) {
	vouchers, err := s.voucherRepo.ListActiveByShop(ctx, shopID)
	if err != nil {
		logger.Error("[ListAvailableVouchers] list vouchers", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	now := s.now()
	available := make([]model.AvailableVoucher, 0, len(vouchers))
	for i := range vouchers {
		v := &vouchers[i]
		discount, errType, _ := Evaluate(v, subtotal, now)
		if errType != constant.Successful {
			continue
		}
		available = append(available, model.AvailableVoucher{
			VoucherID:      v.ID,
			Code:           v.Code,
			Type:           v.Type,
			Value:          v.Value,
			MinOrderValue:  v.MinOrderValue,
			ValidUntil:     v.ValidUntil,
			DiscountAmount: discount,
		})
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].DiscountAmount.GreaterThan(available[j].DiscountAmount)
	})
	return available, nil
}
