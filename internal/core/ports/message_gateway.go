package ports

import (
	"context"
)

// LineMessage is the wire representation of an order line carried in request
// messages to the validator and allocator.
type LineMessage struct {
	LineID            string `json:"lineId"`
	SKU               string `json:"sku"`
	Quantity          int    `json:"quantity"`
	AllocatedQuantity int    `json:"allocatedQuantity"`
}

// ValidationRequest is the payload published on the validation request channel.
type ValidationRequest struct {
	OrderID string        `json:"orderId"`
	Lines   []LineMessage `json:"lines"`
}

// AllocationRequest is the payload published on the allocation request channel.
type AllocationRequest struct {
	OrderID string        `json:"orderId"`
	Lines   []LineMessage `json:"lines"`
}

// DeallocationNotice asks the allocator to release inventory reserved for a
// cancelled order. Fire-and-forget; no response channel is consumed.
type DeallocationNotice struct {
	OrderID string        `json:"orderId"`
	Lines   []LineMessage `json:"lines"`
}

// MessageGateway is the outbound messaging contract toward the external
// validator and allocator services. Publishing is asynchronous request/
// response: every request is eventually answered on a response channel that
// re-enters the orchestrator, except the deallocation notice which has no
// response. Delivery for one order is causally ordered; there is no ordering
// guarantee across orders or across channels.
type MessageGateway interface {
	// PublishValidationRequest sends the order to the validator.
	PublishValidationRequest(ctx context.Context, request ValidationRequest) error

	// PublishAllocationRequest sends the order to the allocator.
	PublishAllocationRequest(ctx context.Context, request AllocationRequest) error

	// PublishDeallocationNotice tells the allocator to release a cancelled
	// order's reserved inventory.
	PublishDeallocationNotice(ctx context.Context, notice DeallocationNotice) error
}
