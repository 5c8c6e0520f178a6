package stages

import (
	"context"
	"fmt"
	"net/http"
)

// encryptEnvTag — фиксированная метка окружения encryption helper-а.
// Локальный helper всегда работает в режиме test.
const encryptEnvTag = "test"

type encryptRequest struct {
	Env      string `json:"env"`
	CCNumber string `json:"ccnumber"`
}

type encryptResponse struct {
	CCEncrypted string `json:"ccEncrypted"`
}

// EncryptCard шифрует номер карты через локальный encryption helper.
//
// Сырой PAN уходит только на локальный helper; наружу процесс
// отправляет исключительно зашифрованное значение.
// Фатальная стадия: без шифрованного номера профиль не создать.
func (c *Client) EncryptCard(ctx context.Context, pan string) (string, error) {
	c.logger.Info("encrypting card number")

	url := c.endpoints.EncryptAPI + "/encrypt"

	payload := encryptRequest{
		Env:      encryptEnvTag,
		CCNumber: pan,
	}

	var resp encryptResponse
	if err := c.doJSON(ctx, http.MethodPost, url, nil, payload, &resp); err != nil {
		return "", fmt.Errorf("encrypt card: %w", err)
	}

	if resp.CCEncrypted == "" {
		return "", fmt.Errorf("encrypt card: %w: ccEncrypted not found in response", ErrDecode)
	}

	c.logger.Info("card encrypted")
	return resp.CCEncrypted, nil
}
