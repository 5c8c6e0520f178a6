package domain

// CardDetails — реквизиты банковской карты.
//
// PAN покидает процесс только в зашифрованном виде: перед регистрацией
// платёжного профиля номер прогоняется через локальный encryption helper.
type CardDetails struct {
	// PAN — номер карты в открытом виде. Наружу не отправляется.
	PAN string

	// Type — платёжная сеть: "Visa", "MasterCard" и т.д.
	Type string

	// ExpMonth, ExpYear — срок действия.
	ExpMonth int
	ExpYear  int

	// CVV — проверочный код. Payment API принимает его числом
	// при регистрации профиля и строкой при покупке.
	CVV int

	// NameOnCard — имя держателя.
	NameOnCard string
}

// BillingAddress — платёжный адрес в формате Payment API.
type BillingAddress struct {
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	State      string `json:"state"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
}

// BillingContact — блок billTo для создания платёжного профиля.
type BillingContact struct {
	TaxID   string `json:"taxId"`
	Contact struct {
		NameFirst      string         `json:"nameFirst"`
		NameLast       string         `json:"nameLast"`
		Phone          string         `json:"phone"`
		Organization   string         `json:"organization"`
		AddressMailing BillingAddress `json:"addressMailing"`
	} `json:"contact"`
}
