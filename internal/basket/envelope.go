package basket

import "fmt"

// SOAPAction — фиксированный action-заголовок для AddItem.
const SOAPAction = "#AddItem"

// Шаблон исходящего envelope: внешний транспортный конверт,
// оборачивающий внутренний itemRequest-документ.
const addItemEnvelope = `<SOAP:Envelope xmlns:SOAP="http://schemas.xmlsoap.org/soap/envelope/" xmlns:soapenc="http://schemas.xmlsoap.org/soap/encoding/" xmlns:tns="urn:WscgdBasketService" xmlns:types="urn:WscgdBasketService/encodedTypes" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
    <SOAP:Body SOAP:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">
        <tns:AddItem>
            <bstrShopperID>%s</bstrShopperID>
            <bstrRequestXML>
                <itemRequest transactionCurrency="%s" bill_to_country="%s">
                    <item productid="%s" itemTrackingCode="TestNG"></item>
                </itemRequest>
            </bstrRequestXML>
        </tns:AddItem>
    </SOAP:Body>
</SOAP:Envelope>`

// AddItemEnvelope строит envelope запроса AddItem.
func AddItemEnvelope(shopperID, currency, countryCode, productID string) string {
	return fmt.Sprintf(addItemEnvelope, shopperID, currency, countryCode, productID)
}
