package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ecomqa/purchasectl/internal/basket"
	"github.com/ecomqa/purchasectl/internal/config"
	"github.com/ecomqa/purchasectl/internal/domain"
)

// fakeStages — управляемая фальшивка стадий со счётчиками вызовов.
type fakeStages struct {
	createCalls   int
	tokenCalls    int
	patchCalls    int
	encryptCalls  int
	profileCalls  int
	addItemCalls  int
	purchaseCalls int

	tokenErr    error
	patchErr    error
	encryptErr  error
	profileErr  error
	addItemErr  error
	addItemRes  basket.Result
	purchaseErr error
}

func (f *fakeStages) CreateShopper(_ context.Context, _, _ string) (domain.ShopperID, error) {
	f.createCalls++
	return "shopper-1", nil
}

func (f *fakeStages) IssueToken(_ context.Context, _ domain.ShopperID) (domain.Token, error) {
	f.tokenCalls++
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return "token-1", nil
}

func (f *fakeStages) PatchShopper(_ context.Context, _ domain.ShopperID, _ domain.Token) error {
	f.patchCalls++
	return f.patchErr
}

func (f *fakeStages) EncryptCard(_ context.Context, _ string) (string, error) {
	f.encryptCalls++
	if f.encryptErr != nil {
		return "", f.encryptErr
	}
	return "enc-1", nil
}

func (f *fakeStages) CreatePaymentProfile(_ context.Context, _ domain.Token, _, _, _, _ string) (domain.PaymentProfileID, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return "", f.profileErr
	}
	return "555001", nil
}

func (f *fakeStages) AddItem(_ context.Context, _ domain.ShopperID, _, _, _ string) (basket.Result, error) {
	f.addItemCalls++
	if f.addItemErr != nil {
		return basket.Result{}, f.addItemErr
	}
	if f.addItemRes.Status == "" {
		return basket.Result{Status: basket.StatusSuccess}, nil
	}
	return f.addItemRes, nil
}

func (f *fakeStages) Purchase(_ context.Context, _ domain.Token, _ domain.PaymentProfileID, _, _ string) (domain.OrderID, error) {
	f.purchaseCalls++
	if f.purchaseErr != nil {
		return "", f.purchaseErr
	}
	return "order-9", nil
}

func newDriver(f *fakeStages, abortOnCart bool) *Driver {
	defaults := config.NewDefaults()
	return New(Config{
		Stages:             f,
		Params:             NewAutoParams(defaults),
		Defaults:           defaults,
		AbortOnCartFailure: abortOnCart,
	})
}

func TestRun_Success(t *testing.T) {
	f := &fakeStages{}
	d := newDriver(f, false)

	res, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State() != StateDone {
		t.Errorf("expected DONE, got %s", d.State())
	}
	if res.ShopperID != "shopper-1" || res.OrderID != "order-9" {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Warnings != nil || res.PurchaseErr != nil {
		t.Errorf("expected clean run, got warnings=%v purchase=%v", res.Warnings, res.PurchaseErr)
	}
}

func TestRun_FatalTokenFailureAborts(t *testing.T) {
	f := &fakeStages{tokenErr: errors.New("http 500")}
	d := newDriver(f, false)

	res, err := d.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if d.State() != StateAborted {
		t.Errorf("expected ABORTED, got %s", d.State())
	}

	// Последующие стадии не должны вызываться
	if f.patchCalls != 0 || f.encryptCalls != 0 || f.profileCalls != 0 ||
		f.addItemCalls != 0 || f.purchaseCalls != 0 {
		t.Errorf("stages after failure must not run: %+v", f)
	}

	// Идентификатор shopper-а всё равно отдан оператору
	if res.ShopperID != "shopper-1" {
		t.Errorf("partial result must carry shopper id, got %q", res.ShopperID)
	}
}

func TestRun_NonFatalPatchFailureContinues(t *testing.T) {
	f := &fakeStages{patchErr: errors.New("http 500")}
	d := newDriver(f, false)

	res, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Регистрация платежа должна быть следующей вызванной стадией
	if f.profileCalls != 1 {
		t.Errorf("payment registration must still run, calls=%d", f.profileCalls)
	}
	if f.purchaseCalls != 1 {
		t.Errorf("purchase must still run, calls=%d", f.purchaseCalls)
	}
	if res.Warnings == nil {
		t.Error("patch failure must surface as warning")
	}
}

func TestRun_CartFailureContinuesByDefault(t *testing.T) {
	f := &fakeStages{addItemRes: basket.Result{Status: basket.StatusReported, Message: "declined"}}
	d := newDriver(f, false)

	res, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.purchaseCalls != 1 {
		t.Error("purchase must run despite cart failure")
	}
	if res.Warnings == nil || !strings.Contains(res.Warnings.Error(), "declined") {
		t.Errorf("cart message must surface as warning: %v", res.Warnings)
	}
}

func TestRun_CartFailureAbortsWithPolicy(t *testing.T) {
	f := &fakeStages{addItemErr: errors.New("connection refused")}
	d := newDriver(f, true)

	_, err := d.Run(context.Background())
	if err == nil {
		t.Fatal("expected error with abort-on-cart policy")
	}
	if d.State() != StateAborted {
		t.Errorf("expected ABORTED, got %s", d.State())
	}
	if f.purchaseCalls != 0 {
		t.Error("purchase must not run after cart abort")
	}
}

func TestRun_PurchaseFailureCompletesRun(t *testing.T) {
	f := &fakeStages{purchaseErr: errors.New("http 402")}
	d := newDriver(f, false)

	res, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("purchase failure must not abort the run: %v", err)
	}
	if d.State() != StateDone {
		t.Errorf("expected DONE, got %s", d.State())
	}
	if res.PurchaseErr == nil {
		t.Error("purchase error must be reported in result")
	}
	if res.OrderID != "" {
		t.Errorf("no order id on failed purchase, got %q", res.OrderID)
	}
	if res.ShopperID != "shopper-1" {
		t.Error("shopper id must be reported for manual resume")
	}
}

func TestRun_ExistingShopperSkipsCreation(t *testing.T) {
	f := &fakeStages{}
	defaults := config.NewDefaults()
	d := New(Config{
		Stages:   f,
		Params:   NewPrompter(defaults, strings.NewReader("existing-7\n\n\n\n"), &strings.Builder{}),
		Defaults: defaults,
	})

	res, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.createCalls != 0 {
		t.Error("existing shopper id must be accepted without a creation call")
	}
	if res.ShopperID != "existing-7" {
		t.Errorf("expected existing-7, got %s", res.ShopperID)
	}
}

// Prompter

func TestPrompter_EmptyInputKeepsDefaults(t *testing.T) {
	defaults := config.NewDefaults()
	p := NewPrompter(defaults, strings.NewReader("\n\n\n\n"), &strings.Builder{})

	if id := p.ShopperID(); id != "" {
		t.Errorf("expected empty shopper id, got %q", id)
	}

	pan, cardType, country, currency := p.CardDetails()
	if pan != defaults.Card.PAN || cardType != defaults.Card.Type ||
		country != defaults.BillingCountry || currency != defaults.Currency {
		t.Error("empty input must keep card defaults")
	}
}

func TestPrompter_ValidOverrides(t *testing.T) {
	defaults := config.NewDefaults()
	input := "4111111111111111 MasterCard GB GBP\nDE EUR 9001\n/v1/custom/seller-configs/z\n"
	p := NewPrompter(defaults, strings.NewReader(input), &strings.Builder{})

	pan, cardType, country, currency := p.CardDetails()
	if pan != "4111111111111111" || cardType != "MasterCard" || country != "GB" || currency != "GBP" {
		t.Errorf("card override not applied: %s %s %s %s", pan, cardType, country, currency)
	}

	cc, cur, pid := p.CartDetails()
	if cc != "DE" || cur != "EUR" || pid != "9001" {
		t.Errorf("cart override not applied: %s %s %s", cc, cur, pid)
	}

	if uri := p.SellerConfigURI(); uri != "/v1/custom/seller-configs/z" {
		t.Errorf("seller config override not applied: %s", uri)
	}
}

func TestPrompter_MalformedInputFallsBack(t *testing.T) {
	defaults := config.NewDefaults()
	// Три поля вместо четырёх для карты, два вместо трёх для корзины
	input := "4111111111111111 Visa US\nUS USD\n"
	var out strings.Builder
	p := NewPrompter(defaults, strings.NewReader(input), &out)

	pan, _, _, _ := p.CardDetails()
	if pan != defaults.Card.PAN {
		t.Errorf("malformed card input must fall back to defaults, got %s", pan)
	}

	_, _, pid := p.CartDetails()
	if pid != defaults.CartProductID {
		t.Errorf("malformed cart input must fall back to defaults, got %s", pid)
	}

	if !strings.Contains(out.String(), "Invalid input format") {
		t.Error("operator must be told about malformed input")
	}
}

func TestPrompter_EOFKeepsDefaults(t *testing.T) {
	defaults := config.NewDefaults()
	p := NewPrompter(defaults, strings.NewReader(""), &strings.Builder{})

	if uri := p.SellerConfigURI(); uri != defaults.SellerConfigURI {
		t.Errorf("EOF must keep defaults, got %s", uri)
	}
}

func TestNewLoginPair_Unique(t *testing.T) {
	login1, email1 := newLoginPair()
	login2, email2 := newLoginPair()

	if login1 == login2 || email1 == email2 {
		t.Error("generated identities must be unique")
	}
	if !strings.HasPrefix(login1, "ecomQA") {
		t.Errorf("unexpected login shape: %s", login1)
	}
	if !strings.Contains(email1, "@mailinator.com") {
		t.Errorf("unexpected email shape: %s", email1)
	}
}
