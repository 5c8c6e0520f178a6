package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/ecomqa/purchasectl/internal/basket"
	"github.com/ecomqa/purchasectl/internal/config"
	"github.com/ecomqa/purchasectl/internal/domain"
	"github.com/ecomqa/purchasectl/internal/telemetry"
)

// State — состояние driver-а.
type State string

// Состояния pipeline в порядке прохождения.
const (
	StateProvision       State = "PROVISION"
	StateAuthenticate    State = "AUTHENTICATE"
	StatePatch           State = "PATCH"
	StateEncryptCard     State = "ENCRYPT_CARD"
	StateRegisterPayment State = "REGISTER_PAYMENT"
	StateAddToCart       State = "ADD_TO_CART"
	StateSettle          State = "SETTLE"
	StateDone            State = "DONE"
	StateAborted         State = "ABORTED"
)

// Stages — операции стадий, которые последовательно вызывает driver.
// Реализуется stages.Client; в тестах подменяется фальшивкой.
type Stages interface {
	CreateShopper(ctx context.Context, loginName, email string) (domain.ShopperID, error)
	IssueToken(ctx context.Context, shopperID domain.ShopperID) (domain.Token, error)
	PatchShopper(ctx context.Context, shopperID domain.ShopperID, token domain.Token) error
	EncryptCard(ctx context.Context, pan string) (string, error)
	CreatePaymentProfile(ctx context.Context, token domain.Token, encryptedPAN, cardType, billingCountry, currency string) (domain.PaymentProfileID, error)
	AddItem(ctx context.Context, shopperID domain.ShopperID, countryCode, currency, productID string) (basket.Result, error)
	Purchase(ctx context.Context, token domain.Token, profileID domain.PaymentProfileID, cvv, sellerConfigURI string) (domain.OrderID, error)
}

// Params — источник параметров стадий.
//
// Автоматический вариант отдаёт встроенные значения по умолчанию,
// интерактивный спрашивает оператора перед каждой стадией.
// Оба варианта питают один и тот же driver.
type Params interface {
	// ShopperID возвращает существующий идентификатор или пустую
	// строку, если нужно создать нового shopper-а.
	ShopperID() domain.ShopperID

	// CardDetails возвращает PAN, тип карты, страну биллинга и валюту.
	CardDetails() (pan, cardType, billingCountry, currency string)

	// CartDetails возвращает страну, валюту и product id для корзины.
	CartDetails() (countryCode, currency, productID string)

	// SellerConfigURI возвращает ссылку на seller-config для покупки.
	SellerConfigURI() string
}

// Result — итог одного прогона pipeline.
//
// ShopperID заполняется как только известен: даже при неудачной
// покупке оператор получает идентификаторы для ручного продолжения.
type Result struct {
	ShopperID domain.ShopperID
	OrderID   domain.OrderID

	// PurchaseErr — ошибка финальной покупки. Прогон при этом
	// считается завершённым, а не прерванным.
	PurchaseErr error

	// Warnings — накопленные ошибки нефатальных стадий.
	Warnings error
}

// Driver последовательно проводит прогон через все стадии.
//
// Переходы: Provision → Authenticate → Patch(best-effort) →
// EncryptCard → RegisterPayment → AddToCart(best-effort) → Settle →
// Done|Aborted. Ошибка фатальной стадии переводит машину в Aborted;
// нефатальные ошибки логируются, накапливаются и не останавливают прогон.
type Driver struct {
	stages   Stages
	params   Params
	defaults *config.Defaults

	// abortOnCartFailure — прерывать ли прогон при отказе корзины.
	// По умолчанию прогон продолжается до покупки.
	abortOnCartFailure bool

	logger *slog.Logger
	state  State
}

// Config — конфигурация Driver.
type Config struct {
	Stages   Stages
	Params   Params
	Defaults *config.Defaults

	// AbortOnCartFailure — прерывать ли прогон при неуспехе корзины
	// (default: false, прогон продолжается до покупки).
	AbortOnCartFailure bool

	// Logger (default: slog.Default()).
	Logger *slog.Logger
}

// New создаёт Driver.
func New(cfg Config) *Driver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Driver{
		stages:             cfg.Stages,
		params:             cfg.Params,
		defaults:           cfg.Defaults,
		abortOnCartFailure: cfg.AbortOnCartFailure,
		logger:             logger,
	}
}

// State возвращает текущее состояние driver-а.
func (d *Driver) State() State {
	return d.state
}

// Run выполняет прогон от provisioning до покупки.
//
// Возвращаемый Result заполнен тем, что успели получить, даже при
// ошибке. Ненулевая ошибка означает прерывание на фатальной стадии.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	var warnings *multierror.Error

	// Provision
	d.enter(StateProvision)
	shopperID := d.params.ShopperID()
	if shopperID == "" {
		login, email := newLoginPair()
		id, err := d.stages.CreateShopper(ctx, login, email)
		if err != nil {
			return d.abort(res, warnings, fmt.Errorf("provision: %w", err))
		}
		shopperID = id
	}
	res.ShopperID = shopperID

	// Все дальнейшие записи привязаны к shopper-у прогона
	log := telemetry.WithShopperID(d.logger, shopperID.String())
	log.Info("shopper resolved")

	// Authenticate
	d.enter(StateAuthenticate)
	token, err := d.stages.IssueToken(ctx, shopperID)
	if err != nil {
		return d.abort(res, warnings, fmt.Errorf("authenticate: %w", err))
	}

	// Patch — best effort
	d.enter(StatePatch)
	if err := d.stages.PatchShopper(ctx, shopperID, token); err != nil {
		log.Warn("contact patch failed, continuing", "error", err)
		warnings = multierror.Append(warnings, fmt.Errorf("patch: %w", err))
	}

	// EncryptCard
	d.enter(StateEncryptCard)
	pan, cardType, billingCountry, currency := d.params.CardDetails()
	encryptedPAN, err := d.stages.EncryptCard(ctx, pan)
	if err != nil {
		return d.abort(res, warnings, fmt.Errorf("encrypt card: %w", err))
	}

	// RegisterPayment
	d.enter(StateRegisterPayment)
	profileID, err := d.stages.CreatePaymentProfile(ctx, token, encryptedPAN, cardType, billingCountry, currency)
	if err != nil {
		return d.abort(res, warnings, fmt.Errorf("register payment: %w", err))
	}

	// AddToCart — best effort, политика настраивается
	d.enter(StateAddToCart)
	countryCode, cartCurrency, productID := d.params.CartDetails()
	cartRes, err := d.stages.AddItem(ctx, shopperID, countryCode, cartCurrency, productID)
	if cartErr := cartFailure(cartRes, err); cartErr != nil {
		if d.abortOnCartFailure {
			return d.abort(res, warnings, cartErr)
		}
		log.Warn("cart stage failed, continuing to purchase", "error", cartErr)
		warnings = multierror.Append(warnings, cartErr)
	}

	// Settle
	d.enter(StateSettle)
	orderID, err := d.stages.Purchase(ctx, token, profileID,
		strconv.Itoa(d.defaults.Card.CVV), d.params.SellerConfigURI())
	if err != nil {
		log.Error("purchase failed", "error", err)
		res.PurchaseErr = err
	} else {
		res.OrderID = orderID
	}

	d.enter(StateDone)
	res.Warnings = warnings.ErrorOrNil()
	return res, nil
}

// enter переводит машину в следующее состояние.
func (d *Driver) enter(state State) {
	d.state = state
	if state != StateDone && state != StateAborted {
		telemetry.WithStage(d.logger, string(state)).Debug("entering stage")
	}
}

// abort переводит машину в Aborted и возвращает частичный результат.
func (d *Driver) abort(res *Result, warnings *multierror.Error, err error) (*Result, error) {
	d.state = StateAborted
	res.Warnings = warnings.ErrorOrNil()
	d.logger.Error("pipeline aborted", "error", err)
	return res, err
}

// cartFailure сводит исход стадии корзины к одной ошибке (или nil).
func cartFailure(res basket.Result, err error) error {
	switch {
	case err != nil:
		return fmt.Errorf("add to cart: %w", err)
	case res.Status == basket.StatusReported:
		return fmt.Errorf("add to cart: service reported %q", res.Message)
	case res.Status == basket.StatusUnparseable:
		return fmt.Errorf("add to cart: response not parseable")
	default:
		return nil
	}
}
