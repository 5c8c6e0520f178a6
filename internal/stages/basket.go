package stages

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ecomqa/purchasectl/internal/basket"
	"github.com/ecomqa/purchasectl/internal/domain"
)

// AddItem добавляет позицию в корзину shopper-а через SOAP endpoint.
//
// Запрос уходит через basketClient: проверка TLS-сертификата
// отключена только для этого сервиса (тестовые деплойменты корзины
// живут с самоподписанными сертификатами).
//
// Ошибка транспорта/HTTP возвращается как error; содержательный ответ
// сервиса классифицируется в basket.Result. Нефатальная стадия
// по умолчанию, политика прерывания настраивается в driver-е.
func (c *Client) AddItem(ctx context.Context, shopperID domain.ShopperID, countryCode, currency, productID string) (basket.Result, error) {
	c.logger.Info("adding item to cart",
		"shopper_id", shopperID,
		"product_id", productID,
		"country", countryCode,
		"currency", currency,
	)

	envelope := basket.AddItemEnvelope(shopperID.String(), currency, countryCode, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.BasketAPI, strings.NewReader(envelope))
	if err != nil {
		return basket.Result{}, fmt.Errorf("add item: build request: %w", err)
	}

	req.Header.Set("SOAPAction", basket.SOAPAction)
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	body, err := c.send(c.basketClient, req)
	if err != nil {
		return basket.Result{}, fmt.Errorf("add item: %w", err)
	}

	c.logger.Debug("raw basket response", "body", truncate(string(body), 1000))

	result := basket.Classify(string(body))
	switch result.Status {
	case basket.StatusSuccess:
		c.logger.Info("item added to cart", "shopper_id", shopperID, "product_id", productID)
	case basket.StatusReported:
		c.logger.Warn("cart reported non-success", "message", result.Message)
	case basket.StatusUnparseable:
		c.logger.Warn("cart response not parseable", "body", truncate(string(body), maxBodyExcerpt))
	}

	return result, nil
}
