package stages

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ecomqa/purchasectl/internal/domain"
)

// createShopperContact — контактный блок при создании shopper-а.
// Адрес здесь строка-заглушка: полный контакт накатывается позже
// отдельной стадией PATCH.
type createShopperContact struct {
	NameFirst          string `json:"nameFirst"`
	NameLast           string `json:"nameLast"`
	Organization       string `json:"organization"`
	Address            string `json:"address"`
	PhoneWork          string `json:"phoneWork"`
	PhoneWorkExtension string `json:"phoneWorkExtension"`
	PhoneHome          string `json:"phoneHome"`
	PhoneMobile        string `json:"phoneMobile"`
	Fax                string `json:"fax"`
}

type createShopperRequest struct {
	PrivateLabelID int                  `json:"privateLabelId"`
	LoginName      string               `json:"loginName"`
	Email          string               `json:"email"`
	Auth           shopperAuth          `json:"auth"`
	Contact        createShopperContact `json:"contact"`
	Preference     shopperPreference    `json:"preference"`
}

type shopperAuth struct {
	Password string `json:"password"`
	PIN      string `json:"pin"`
}

type shopperPreference struct {
	Currency                  string   `json:"currency"`
	MarketID                  string   `json:"marketId"`
	EmailFormat               string   `json:"emailFormat"`
	AllowedCommunicationTypes []string `json:"allowedCommunicationTypes"`
}

type createShopperResponse struct {
	ShopperID flexibleID `json:"shopperId"`
}

// CreateShopper создаёт нового shopper-а с заданными login и email.
//
// Пароль, PIN и контактная заглушка берутся из значений по умолчанию.
// Фатальная стадия: без идентификатора pipeline продолжать нечем.
func (c *Client) CreateShopper(ctx context.Context, loginName, email string) (domain.ShopperID, error) {
	c.logger.Info("creating shopper", "login", loginName, "email", email)

	url := c.endpoints.ShopperAPI + "/shoppers?auditClientIp=" + c.defaults.AuditClientIP

	payload := createShopperRequest{
		PrivateLabelID: 1,
		LoginName:      loginName,
		Email:          email,
		Auth: shopperAuth{
			Password: c.defaults.Password,
			PIN:      c.defaults.PIN,
		},
		Contact: createShopperContact{
			NameFirst:    "eComm",
			NameLast:     "Automation",
			Organization: "test",
		},
		Preference: shopperPreference{
			Currency:                  "USD",
			MarketID:                  "en-US",
			AllowedCommunicationTypes: []string{},
		},
	}

	var resp createShopperResponse
	if err := c.doJSON(ctx, http.MethodPost, url, nil, payload, &resp); err != nil {
		return "", fmt.Errorf("create shopper: %w", err)
	}

	if resp.ShopperID == "" {
		return "", fmt.Errorf("create shopper: %w: shopperId not found in response", ErrDecode)
	}

	shopperID := domain.ShopperID(resp.ShopperID)
	c.logger.Info("shopper created", "shopper_id", shopperID)
	return shopperID, nil
}

// PatchShopper накатывает контактный профиль по умолчанию на shopper-а.
//
// Нефатальная стадия: последующие стадии от контактных данных
// не зависят, ошибка логируется и проглатывается driver-ом.
func (c *Client) PatchShopper(ctx context.Context, shopperID domain.ShopperID, token domain.Token) error {
	c.logger.Info("patching shopper contact", "shopper_id", shopperID)

	url := c.endpoints.ShopperAPI + "/shoppers/" + shopperID.String() + "?auditClientIp=" + c.defaults.AuditClientIP

	headers := map[string]string{
		"Authorization": authHeader(string(token)),
	}

	payload := map[string]domain.Contact{"contact": c.defaults.Contact}

	if err := c.doJSON(ctx, http.MethodPatch, url, headers, payload, nil); err != nil {
		return fmt.Errorf("patch shopper: %w", err)
	}

	c.logger.Info("shopper patched", "shopper_id", shopperID)
	return nil
}
