package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/ecomqa/purchasectl/internal/domain"
)

// DefaultEnvironment — окружение по умолчанию.
const DefaultEnvironment = "test"

// Шаблоны адресов сервисов. Метка окружения подставляется
// в каждый шаблон один раз при старте; сетевых вызовов нет.
const (
	shopperAPITemplate = "https://shopper.api.int.%s-godaddy.com/v1"
	ssoAPITemplate     = "https://sso.%s-godaddy.com/v1/api"
	paymentAPITemplate = "https://payment.api.%s-godaddy.com/v1"
	basketAPITemplate  = "https://gdcomm.%s.glbt1.gdg/WscgdBasket/WscgdBasket.dll"

	// Encryption helper всегда локальный и от окружения не зависит.
	encryptAPIBase = "http://0.0.0.0:3001/api"
)

// Endpoints — неизменяемый набор базовых адресов сервисов для одного прогона.
type Endpoints struct {
	// ShopperAPI — identity сервис (создание и обновление shopper-ов).
	ShopperAPI string

	// SSOAPI — сервис выдачи токенов.
	SSOAPI string

	// PaymentAPI — регистрация платёжных профилей и покупка.
	PaymentAPI string

	// BasketAPI — SOAP endpoint корзины.
	BasketAPI string

	// EncryptAPI — локальный encryption helper.
	EncryptAPI string
}

// ResolveEndpoints строит адреса сервисов из метки окружения.
func ResolveEndpoints(environment string) Endpoints {
	return Endpoints{
		ShopperAPI: fmt.Sprintf(shopperAPITemplate, environment),
		SSOAPI:     fmt.Sprintf(ssoAPITemplate, environment),
		PaymentAPI: fmt.Sprintf(paymentAPITemplate, environment),
		BasketAPI:  fmt.Sprintf(basketAPITemplate, environment),
		EncryptAPI: encryptAPIBase,
	}
}

// Options — настройки, читаемые из переменных окружения процесса.
//
// Флаги команд имеют приоритет над этими значениями.
type Options struct {
	// Environment — метка окружения (подставляется в шаблоны адресов).
	Environment string `env:"PURCHASECTL_ENV"`

	// HTTPTimeoutSec — таймаут HTTP-клиента в секундах.
	HTTPTimeoutSec int `env:"PURCHASECTL_HTTP_TIMEOUT_SEC" envDefault:"30"`

	// AbortOnCartFailure — прерывать ли прогон при неуспехе корзины.
	// Исторически инструмент продолжал до покупки; поведение оставлено
	// по умолчанию, но вынесено в политику.
	AbortOnCartFailure bool `env:"PURCHASECTL_ABORT_ON_CART_FAILURE"`
}

// ParseEnv читает Options из переменных окружения.
func ParseEnv() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}
	return opts, nil
}

// Defaults — встроенные значения по умолчанию для всех стадий.
//
// Конструируются один раз при старте и передаются по ссылке в стадии;
// глобального изменяемого состояния нет.
type Defaults struct {
	// Аутентификация нового shopper-а.
	Password      string
	PIN           string
	AuditClientIP string

	// Карта и платёжный профиль.
	Card           domain.CardDetails
	Currency       string
	BillingCountry string
	Billing        domain.BillingContact

	// Контактный профиль для PATCH.
	Contact domain.Contact

	// Корзина.
	CartCountryCode string
	CartCurrency    string
	CartProductID   string

	// Покупка.
	SellerConfigURI string
	MarketID        string
}

// NewDefaults возвращает встроенные значения по умолчанию.
func NewDefaults() *Defaults {
	d := &Defaults{
		Password:      "eToolsXML4",
		PIN:           "1024",
		AuditClientIP: "localhost",

		Card: domain.CardDetails{
			PAN:        "4716885367556942",
			Type:       "Visa",
			ExpMonth:   12,
			ExpYear:    2029,
			CVV:        737,
			NameOnCard: "eComm Automation",
		},
		Currency:       "USD",
		BillingCountry: "US",

		Contact: domain.Contact{
			Address: domain.Address{
				Address1:   "123 Main St",
				Address2:   "Suite 100",
				City:       "Seattle",
				State:      "WA",
				PostalCode: "98101",
				Country:    "US",
			},
			NameFirst:    "eComm",
			NameLast:     "Automation",
			Organization: "Test",
			PhoneWork:    "+15555555555",
		},

		CartCountryCode: "US",
		CartCurrency:    "USD",
		CartProductID:   "8007",

		SellerConfigURI: "/v1/31430a42-6f4f-4646-9595-305f614957be/seller-configs/4e0ea080-99ab-4973-85c6-391556676f08",
		MarketID:        "en-us",
	}

	d.Billing.TaxID = "26394653330"
	d.Billing.Contact.NameFirst = "eComm"
	d.Billing.Contact.NameLast = "Automation"
	d.Billing.Contact.Phone = "+15555555555"
	d.Billing.Contact.Organization = "Test"
	d.Billing.Contact.AddressMailing = domain.BillingAddress{
		City:       "Seattle",
		Country:    "US",
		PostalCode: "98101",
		State:      "WA",
		Address1:   "123 Main St",
		Address2:   "Suite 100",
	}

	return d
}
