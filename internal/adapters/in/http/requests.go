package http

import (
	"fulfilment/internal/core/domain/model/kernel"
)

// Request bodies. Money travels as minor units plus an ISO currency code;
// an empty currency falls back to the platform default.

type ContactBody struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type AddressBody struct {
	Line1      string `json:"line1"`
	Suburb     string `json:"suburb"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type CreateOrderRequest struct {
	Code             string      `json:"code"`
	Contact          ContactBody `json:"contact"`
	Address          AddressBody `json:"address"`
	PriceCents       int64       `json:"priceCents"`
	DeliveryFeeCents int64       `json:"deliveryFeeCents"`
	Currency         string      `json:"currency"`
	CustomerID       string      `json:"customerId"`
}

type CreateManualOrderRequest struct {
	ActorID          string      `json:"actorId"`
	Code             string      `json:"code"`
	Contact          ContactBody `json:"contact"`
	Address          AddressBody `json:"address"`
	PriceCents       int64       `json:"priceCents"`
	DeliveryFeeCents int64       `json:"deliveryFeeCents"`
	Currency         string      `json:"currency"`
	Provider         string      `json:"provider"`
	ProviderRef      string      `json:"providerRef"`
}

type ChangeStatusRequest struct {
	ActorID string `json:"actorId"`
	Target  string `json:"target"`
}

type AssignDriverRequest struct {
	ActorID  string `json:"actorId"`
	DriverID string `json:"driverId"`
}

type RequestQuoteRequest struct {
	ActorID    string `json:"actorId"`
	SupplierID string `json:"supplierId"`
	Note       string `json:"note"`
}

type AcceptQuoteRequest struct {
	ActorID    string `json:"actorId"`
	SupplierID string `json:"supplierId"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
}

type PostMessageRequest struct {
	AuthorID string `json:"authorId"`
	Text     string `json:"text"`
}

type SupplierStatusRequest struct {
	ActorID  string        `json:"actorId"`
	Note     string        `json:"note"`
	Location *LocationBody `json:"location"`
}

type LocationBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	AccuracyM float64 `json:"accuracyM"`
}

type RecordPaymentRequest struct {
	PaymentID   string `json:"paymentId"`
	OrderID     string `json:"orderId"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Provider    string `json:"provider"`
	ProviderRef string `json:"providerRef"`
}

type IssueRefundRequest struct {
	ActorID     string `json:"actorId"`
	PaymentID   string `json:"paymentId"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Reason      string `json:"reason"`
}

type RequestPayoutRequest struct {
	ActorID     string `json:"actorId"`
	SupplierID  string `json:"supplierId"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
}

type UpdatePayoutStatusRequest struct {
	ActorID string `json:"actorId"`
	Target  string `json:"target"`
}

// CreatedResponse returns the identifier assigned to a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

func bodyContact(body ContactBody) (kernel.Contact, error) {
	return kernel.NewContact(body.Name, body.Phone, body.Email)
}

func bodyAddress(body AddressBody) (kernel.Address, error) {
	return kernel.NewAddress(body.Line1, body.Suburb, body.City, body.PostalCode)
}

func bodyMoney(amountCents int64, currency string) (kernel.Money, error) {
	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	return kernel.NewMoney(amountCents, currency)
}
