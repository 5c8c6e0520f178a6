package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ecomqa/purchasectl/internal/config"
	"github.com/ecomqa/purchasectl/internal/domain"
)

// newLoginPair генерирует уникальные login и email для нового shopper-а.
func newLoginPair() (login, email string) {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "ecomQA" + suffix, "ecommqatest+" + suffix + "@mailinator.com"
}

// AutoParams — автоматический источник параметров: все значения
// берутся из встроенных значений по умолчанию, оператор не участвует.
type AutoParams struct {
	defaults *config.Defaults
}

// NewAutoParams создаёт автоматический источник.
func NewAutoParams(defaults *config.Defaults) *AutoParams {
	return &AutoParams{defaults: defaults}
}

// ShopperID всегда пустой: автоматический режим создаёт нового shopper-а.
func (p *AutoParams) ShopperID() domain.ShopperID { return "" }

// CardDetails возвращает карту по умолчанию.
func (p *AutoParams) CardDetails() (pan, cardType, billingCountry, currency string) {
	d := p.defaults
	return d.Card.PAN, d.Card.Type, d.BillingCountry, d.Currency
}

// CartDetails возвращает параметры корзины по умолчанию.
func (p *AutoParams) CartDetails() (countryCode, currency, productID string) {
	d := p.defaults
	return d.CartCountryCode, d.CartCurrency, d.CartProductID
}

// SellerConfigURI возвращает seller-config по умолчанию.
func (p *AutoParams) SellerConfigURI() string {
	return p.defaults.SellerConfigURI
}

// Prompter — интерактивный источник параметров.
//
// Перед каждой стадией с параметрами оператору предлагается override;
// пустой ввод оставляет значения по умолчанию. Ввод с неверным числом
// полей не перезапрашивается: печатается предупреждение и молча
// используются значения по умолчанию.
type Prompter struct {
	defaults *config.Defaults
	in       *bufio.Scanner
	out      io.Writer
}

// NewPrompter создаёт интерактивный источник, читающий из in
// и печатающий приглашения в out.
func NewPrompter(defaults *config.Defaults, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		defaults: defaults,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Ask печатает приглашение и возвращает обрезанную строку ввода.
// Конец ввода равносилен пустому ответу.
func (p *Prompter) Ask(prompt string) string {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// ShopperID спрашивает существующий идентификатор shopper-а.
func (p *Prompter) ShopperID() domain.ShopperID {
	input := p.Ask("\nEnter an existing Shopper ID or press Enter to create a new shopper: ")
	return domain.ShopperID(input)
}

// CardDetails спрашивает PAN, тип карты, страну биллинга и валюту.
func (p *Prompter) CardDetails() (pan, cardType, billingCountry, currency string) {
	d := p.defaults
	input := p.Ask(fmt.Sprintf(
		"\nEnter PAN, Card Type, Billing Country, Currency (e.g. 4111... Visa US USD) or press Enter for defaults (%s %s %s %s): ",
		d.Card.PAN, d.Card.Type, d.BillingCountry, d.Currency,
	))

	if input == "" {
		fmt.Fprintln(p.out, "Using default card details.")
		return d.Card.PAN, d.Card.Type, d.BillingCountry, d.Currency
	}

	parts := strings.Fields(input)
	if len(parts) != 4 {
		fmt.Fprintln(p.out, "Invalid input format for card details. Using default values.")
		return d.Card.PAN, d.Card.Type, d.BillingCountry, d.Currency
	}
	return parts[0], parts[1], parts[2], parts[3]
}

// CartDetails спрашивает страну, валюту и product id для корзины.
func (p *Prompter) CartDetails() (countryCode, currency, productID string) {
	d := p.defaults
	input := p.Ask(fmt.Sprintf(
		"\nEnter Country Code, Currency, Product ID (e.g. US USD 12345) or press Enter for defaults (%s %s %s): ",
		d.CartCountryCode, d.CartCurrency, d.CartProductID,
	))

	if input == "" {
		fmt.Fprintln(p.out, "Using default cart details.")
		return d.CartCountryCode, d.CartCurrency, d.CartProductID
	}

	parts := strings.Fields(input)
	if len(parts) != 3 {
		fmt.Fprintln(p.out, "Invalid input format for cart details. Using default values.")
		return d.CartCountryCode, d.CartCurrency, d.CartProductID
	}
	return parts[0], parts[1], parts[2]
}

// SellerConfigURI спрашивает seller-config для покупки.
func (p *Prompter) SellerConfigURI() string {
	input := p.Ask(fmt.Sprintf(
		"\nEnter Seller Config URI or press Enter for default (%s): ",
		p.defaults.SellerConfigURI,
	))

	if input == "" {
		return p.defaults.SellerConfigURI
	}
	return input
}
