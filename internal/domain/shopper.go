package domain

// ShopperID — идентификатор shopper-аккаунта.
//
// Создаётся стадией provisioning или передаётся оператором напрямую.
// Живёт в пределах одного прогона pipeline и не изменяется.
type ShopperID string

// String возвращает строковое представление идентификатора.
func (id ShopperID) String() string { return string(id) }

// Token — bearer-токен авторизации, привязанный к одному ShopperID.
//
// Выдаётся SSO сервисом и прикладывается ко всем последующим
// аутентифицированным вызовам в заголовке "Authorization: sso-jwt <token>".
// Не обновляется и не перевыпускается в рамках прогона.
type Token string

// Address — почтовый адрес контакта.
type Address struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Contact — контактный профиль shopper-а.
//
// Поля соответствуют контракту Shopper API (PATCH /shoppers/{id}).
type Contact struct {
	Address            Address `json:"address"`
	NameFirst          string  `json:"nameFirst"`
	NameLast           string  `json:"nameLast"`
	Organization       string  `json:"organization"`
	PhoneWork          string  `json:"phoneWork"`
	PhoneWorkExtension string  `json:"phoneWorkExtension"`
	PhoneHome          string  `json:"phoneHome"`
	PhoneMobile        string  `json:"phoneMobile"`
	Fax                string  `json:"fax"`
}
