package stages

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ecomqa/purchasectl/internal/domain"
)

type creditCard struct {
	Number     string `json:"number"`
	Type       string `json:"type"`
	NameOnCard string `json:"nameOnCard"`
	ExpMonth   int    `json:"expMonth"`
	ExpYear    int    `json:"expYear"`
	CVV        int    `json:"cvv"`
}

type createProfileRequest struct {
	CreditCard creditCard            `json:"creditCard"`
	Status     string                `json:"status"`
	Currency   string                `json:"currency"`
	BillTo     domain.BillingContact `json:"billTo"`
	Source     string                `json:"source"`
}

type createProfileResponse struct {
	ProfileID flexibleID `json:"profileID"`
}

// CreatePaymentProfile регистрирует зашифрованную карту как
// платёжный профиль shopper-а.
//
// Каждый вызов несёт свежие X-Request-Id и idempotentId: при повторе
// запроса сервис отбрасывает дубликаты и профиль не задваивается.
// Фатальная стадия.
func (c *Client) CreatePaymentProfile(ctx context.Context, token domain.Token, encryptedPAN, cardType, billingCountry, currency string) (domain.PaymentProfileID, error) {
	c.logger.Info("creating payment profile",
		"card_type", cardType,
		"billing_country", billingCountry,
		"currency", currency,
	)

	url := c.endpoints.PaymentAPI + "/paymentprofiles"

	headers := map[string]string{
		"Authorization": authHeader(string(token)),
		"X-Request-Id":  uuid.NewString(),
		"idempotentId":  uuid.NewString(),
	}

	payload := createProfileRequest{
		CreditCard: creditCard{
			Number:     encryptedPAN,
			Type:       cardType,
			NameOnCard: c.defaults.Card.NameOnCard,
			ExpMonth:   c.defaults.Card.ExpMonth,
			ExpYear:    c.defaults.Card.ExpYear,
			CVV:        c.defaults.Card.CVV,
		},
		Status:   "CREATE",
		Currency: currency,
		BillTo:   c.defaults.Billing,
		Source:   "checkout",
	}

	var resp createProfileResponse
	if err := c.doJSON(ctx, http.MethodPost, url, headers, payload, &resp); err != nil {
		return "", fmt.Errorf("create payment profile: %w", err)
	}

	if resp.ProfileID == "" {
		return "", fmt.Errorf("create payment profile: %w: profileID not found in response", ErrDecode)
	}

	profileID := domain.PaymentProfileID(resp.ProfileID)
	c.logger.Info("payment profile created", "profile_id", profileID)
	return profileID, nil
}

type storedMethod struct {
	ID  int    `json:"id"`
	CVV string `json:"cvv"`
}

type purchaseRequest struct {
	StandardBasket bool `json:"standardBasket"`
	PaymentDetails struct {
		StoredMethods   []storedMethod `json:"storedMethods"`
		SellerConfigURI string         `json:"sellerConfigUri"`
	} `json:"paymentDetails"`
}

type purchaseResponse struct {
	OrderID flexibleID `json:"orderId"`
}

// Purchase выполняет финальную покупку по сохранённому платёжному
// профилю и seller-config.
//
// Несёт свежий X-Request-Id и фиксированный X-Market-Id. Неуспех
// завершает прогон как неудачный, но полученные ранее идентификаторы
// всё равно выводятся оператору для ручного продолжения.
func (c *Client) Purchase(ctx context.Context, token domain.Token, profileID domain.PaymentProfileID, cvv, sellerConfigURI string) (domain.OrderID, error) {
	c.logger.Info("performing purchase", "profile_id", profileID, "seller_config", sellerConfigURI)

	url := c.endpoints.PaymentAPI + "/purchase"

	headers := map[string]string{
		"Authorization": authHeader(string(token)),
		"X-Request-Id":  uuid.NewString(),
		"X-Market-Id":   c.defaults.MarketID,
	}

	// Payment API адресует сохранённый профиль числом.
	profileNum, err := strconv.Atoi(profileID.String())
	if err != nil {
		return "", fmt.Errorf("purchase: %w: profile id %q is not numeric", ErrDecode, profileID)
	}

	var payload purchaseRequest
	payload.StandardBasket = true
	payload.PaymentDetails.StoredMethods = []storedMethod{{ID: profileNum, CVV: cvv}}
	payload.PaymentDetails.SellerConfigURI = sellerConfigURI

	var resp purchaseResponse
	if err := c.doJSON(ctx, http.MethodPost, url, headers, payload, &resp); err != nil {
		return "", fmt.Errorf("purchase: %w", err)
	}

	if resp.OrderID == "" {
		return "", fmt.Errorf("purchase: %w: orderId not found in response", ErrDecode)
	}

	orderID := domain.OrderID(resp.OrderID)
	c.logger.Info("purchase completed", "order_id", orderID)
	return orderID, nil
}
