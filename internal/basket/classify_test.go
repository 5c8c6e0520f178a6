package basket

import (
	"strings"
	"testing"
)

// Ответ деплоймента, отдающего return без namespace.
const plainResponse = `<SOAP:Envelope xmlns:SOAP="http://schemas.xmlsoap.org/soap/envelope/">
  <SOAP:Body>
    <AddItemResponse>
      <return>&lt;response&gt;&lt;MESSAGE&gt;Success&lt;/MESSAGE&gt;&lt;/response&gt;</return>
    </AddItemResponse>
  </SOAP:Body>
</SOAP:Envelope>`

// Ответ деплоймента, отдающего return в namespace сервиса.
const namespacedResponse = `<SOAP:Envelope xmlns:SOAP="http://schemas.xmlsoap.org/soap/envelope/" xmlns:tns="urn:WscgdBasketService">
  <SOAP:Body>
    <tns:AddItemResponse>
      <tns:return>&lt;response&gt;&lt;MESSAGE&gt;Success&lt;/MESSAGE&gt;&lt;/response&gt;</tns:return>
    </tns:AddItemResponse>
  </SOAP:Body>
</SOAP:Envelope>`

func TestClassify_Success(t *testing.T) {
	res := Classify(`<return>&lt;response&gt;&lt;MESSAGE&gt;Success&lt;/MESSAGE&gt;&lt;/response&gt;</return>`)
	if res.Status != StatusSuccess {
		t.Errorf("expected SUCCESS, got %s (message %q)", res.Status, res.Message)
	}
}

func TestClassify_SuccessCaseInsensitive(t *testing.T) {
	for _, msg := range []string{"success", "SUCCESS", "Success", "sUcCeSs"} {
		raw := `<return>&lt;response&gt;&lt;MESSAGE&gt;` + msg + `&lt;/MESSAGE&gt;&lt;/response&gt;</return>`
		if res := Classify(raw); res.Status != StatusSuccess {
			t.Errorf("%s: expected SUCCESS, got %s", msg, res.Status)
		}
	}
}

func TestClassify_NamespaceVariants(t *testing.T) {
	if res := Classify(plainResponse); res.Status != StatusSuccess {
		t.Errorf("plain: expected SUCCESS, got %s", res.Status)
	}
	if res := Classify(namespacedResponse); res.Status != StatusSuccess {
		t.Errorf("namespaced: expected SUCCESS, got %s", res.Status)
	}
}

func TestClassify_ReportedFailure(t *testing.T) {
	raw := `<return>&lt;response&gt;&lt;MESSAGE&gt;Shopper not found&lt;/MESSAGE&gt;&lt;/response&gt;</return>`
	res := Classify(raw)
	if res.Status != StatusReported {
		t.Fatalf("expected REPORTED, got %s", res.Status)
	}
	if res.Message != "Shopper not found" {
		t.Errorf("expected literal message, got %q", res.Message)
	}
}

func TestClassify_MissingReturn(t *testing.T) {
	raw := `<SOAP:Envelope xmlns:SOAP="http://schemas.xmlsoap.org/soap/envelope/">
  <SOAP:Body><AddItemResponse></AddItemResponse></SOAP:Body>
</SOAP:Envelope>`
	if res := Classify(raw); res.Status != StatusUnparseable {
		t.Errorf("expected UNPARSEABLE, got %s", res.Status)
	}
}

func TestClassify_EmptyReturn(t *testing.T) {
	if res := Classify(`<return></return>`); res.Status != StatusUnparseable {
		t.Errorf("expected UNPARSEABLE, got %s", res.Status)
	}
}

func TestClassify_MissingMessage(t *testing.T) {
	raw := `<return>&lt;response&gt;&lt;STATUS&gt;1&lt;/STATUS&gt;&lt;/response&gt;</return>`
	if res := Classify(raw); res.Status != StatusUnparseable {
		t.Errorf("expected UNPARSEABLE, got %s", res.Status)
	}
}

func TestClassify_Garbage(t *testing.T) {
	for _, raw := range []string{"", "not xml at all", "<broken"} {
		if res := Classify(raw); res.Status != StatusUnparseable {
			t.Errorf("%q: expected UNPARSEABLE, got %s", raw, res.Status)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	inputs := []string{
		plainResponse,
		namespacedResponse,
		`<return>&lt;response&gt;&lt;MESSAGE&gt;declined&lt;/MESSAGE&gt;&lt;/response&gt;</return>`,
		`<return></return>`,
		"garbage",
	}
	for _, raw := range inputs {
		first := Classify(raw)
		second := Classify(raw)
		if first != second {
			t.Errorf("classification not stable: %+v vs %+v", first, second)
		}
	}
}

func TestAddItemEnvelope(t *testing.T) {
	env := AddItemEnvelope("12345", "USD", "US", "8007")

	for _, want := range []string{
		"<bstrShopperID>12345</bstrShopperID>",
		`transactionCurrency="USD"`,
		`bill_to_country="US"`,
		`productid="8007"`,
		"urn:WscgdBasketService",
	} {
		if !strings.Contains(env, want) {
			t.Errorf("envelope missing %q", want)
		}
	}
}
