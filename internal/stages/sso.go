package stages

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ecomqa/purchasectl/internal/domain"
)

// tokenFields — принятые имена поля токена в ответе SSO,
// в порядке приоритета. Разные деплойменты возвращают токен под
// разными именами; какое из них авторитетно, контрактом не закреплено —
// это риск внешней совместимости, а не выбор этого инструмента.
var tokenFields = []string{"jwtToken", "data"}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IssueToken обменивает идентификатор shopper-а и пароль по умолчанию
// на SSO токен.
//
// Фатальная стадия: без токена аутентифицированные вызовы невозможны.
func (c *Client) IssueToken(ctx context.Context, shopperID domain.ShopperID) (domain.Token, error) {
	c.logger.Info("issuing sso token", "shopper_id", shopperID)

	url := c.endpoints.SSOAPI + "/token"

	payload := tokenRequest{
		Username: shopperID.String(),
		Password: c.defaults.Password,
	}

	var resp map[string]any
	if err := c.doJSON(ctx, http.MethodPost, url, nil, payload, &resp); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	// Поля пробуются строго в порядке tokenFields:
	// fallback используется только при отсутствии первичного поля.
	for _, field := range tokenFields {
		if val, ok := resp[field].(string); ok && val != "" {
			c.logger.Info("sso token issued", "shopper_id", shopperID, "field", field)
			return domain.Token(val), nil
		}
	}

	return "", fmt.Errorf("issue token: %w: token not found under any of %v", ErrDecode, tokenFields)
}
