package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/payment"
)

// OrderPlaced fires after a successful charge has been recorded. The
// payload is a Receipt.
const OrderPlaced = "order.placed"

// Receipt describes a completed checkout.
type Receipt struct {
	UserID        uint             `json:"user_id"`
	AmountCharged int              `json:"amount_charged"`
	ChargeID      string           `json:"charge_id"`
	Description   string           `json:"description"`
	Items         []models.Product `json:"items"`
}

// CheckoutService charges the cart and moves it into the order ledger.
type CheckoutService struct {
	db       *gorm.DB
	cart     *repositories.CartRepository
	orders   *repositories.OrderRepository
	gateway  payment.Gateway
	currency string
}

func NewCheckoutService(
	db *gorm.DB,
	cart *repositories.CartRepository,
	orders *repositories.OrderRepository,
	gateway payment.Gateway,
	currency string,
) *CheckoutService {
	return &CheckoutService{db: db, cart: cart, orders: orders, gateway: gateway, currency: currency}
}

// Charge bills declaredPrice (whole units) to the card behind token for
// everything in the cart. On success the billed products move from the cart
// to the user's orders in one transaction; on any other outcome nothing is
// written and a *PaymentError is returned.
//
// declaredPrice comes from the client and is charged as given. A mismatch
// with the cart total is logged and counted.
func (s *CheckoutService) Charge(ctx context.Context, id *auth.Identity, declaredPrice int, token string) (Receipt, error) {
	if id == nil {
		return Receipt{}, ErrUnauthenticated
	}
	if declaredPrice < 0 || int64(declaredPrice) > MaxPrice {
		return Receipt{}, ErrInvalidPrice
	}
	log := logger.WithCtx(ctx).With("user_id", id.UserID)

	items, err := s.cart.Products(ctx, id.UserID)
	if err != nil {
		return Receipt{}, fmt.Errorf("checkout: load cart: %w", err)
	}

	if total := collection.Sum(items, func(p models.Product) int { return p.Price }); total != declaredPrice {
		metrics.PriceMismatch.Inc()
		log.Warn("declared price differs from cart total", "declared", declaredPrice, "cart_total", total)
	}

	description := strings.Join(collection.Map(items, func(p models.Product) string { return p.Name }), ",")
	amount := int64(declaredPrice) * 100

	charge, err := s.pay(ctx, id.Email, token, amount, description)
	if err != nil {
		status := payment.FailureStatus(err)
		metrics.Charges.WithLabelValues("error").Inc()
		log.Warn("charge failed", "status", status, "error", err)
		return Receipt{}, &PaymentError{Status: status, Err: err}
	}
	if charge.Status != payment.StatusSucceeded {
		metrics.Charges.WithLabelValues("declined").Inc()
		log.Info("charge not successful", "status", charge.Status, "charge_id", charge.ID)
		return Receipt{}, &PaymentError{Status: charge.Status}
	}
	metrics.Charges.WithLabelValues("succeeded").Inc()

	productIDs := collection.Map(items, func(p models.Product) uint { return p.ID })
	err = orm.On(s.db).Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.orders.WithTx(tx).Record(ctx, id.UserID, productIDs); err != nil {
			return fmt.Errorf("record orders: %w", err)
		}
		// only what was billed leaves the cart; products added while the
		// processor was answering stay for the next checkout
		if _, err := s.cart.WithTx(tx).RemoveProducts(ctx, id.UserID, productIDs); err != nil {
			return fmt.Errorf("remove billed products: %w", err)
		}
		return nil
	})
	if err != nil {
		// the card has been charged; this needs a human
		log.Error("charge succeeded but order could not be recorded",
			"charge_id", charge.ID, "amount", amount, "error", err)
		return Receipt{}, fmt.Errorf("checkout: %w", err)
	}

	receipt := Receipt{
		UserID:        id.UserID,
		AmountCharged: declaredPrice,
		ChargeID:      charge.ID,
		Description:   description,
		Items:         withImageURLs(items),
	}
	log.Info("charge succeeded", "charge_id", charge.ID, "amount", amount, "items", len(items))
	event.Fire(ctx, OrderPlaced, receipt)

	return receipt, nil
}

func (s *CheckoutService) pay(ctx context.Context, email, token string, amount int64, description string) (payment.Charge, error) {
	start := time.Now()
	defer func() { metrics.ChargeDuration.Observe(time.Since(start).Seconds()) }()

	payer, err := s.gateway.CreatePayer(ctx, email, token)
	if err != nil {
		return payment.Charge{}, fmt.Errorf("create payer: %w", err)
	}
	charge, err := s.gateway.CreateCharge(ctx, payer, amount, s.currency, description)
	if err != nil {
		return payment.Charge{}, fmt.Errorf("create charge: %w", err)
	}
	return charge, nil
}

// OrderedProducts lists what the user has bought.
func (s *CheckoutService) OrderedProducts(ctx context.Context, id *auth.Identity) ([]models.Product, error) {
	if id == nil {
		return nil, ErrUnauthenticated
	}
	products, err := s.orders.Products(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("checkout: orders: %w", err)
	}
	return withImageURLs(products), nil
}

// IsPaymentError reports whether err is a *PaymentError and returns it.
func IsPaymentError(err error) (*PaymentError, bool) {
	var pe *PaymentError
	ok := errors.As(err, &pe)
	return pe, ok
}
