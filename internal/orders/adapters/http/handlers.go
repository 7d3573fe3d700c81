package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dvukoje/ordersvc/internal/orders/app"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
	validator "github.com/go-playground/validator/v10"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service  *app.Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/orders", h.handleOrders)
	mux.HandleFunc("/v1/orders/", h.handleOrderByID)
}

// placeOrderRequest is the transport payload for placing an order. The
// request-validity constraints live here, at the boundary; the workflow
// trusts them.
type placeOrderRequest struct {
	ProductID   int64  `json:"product_id" validate:"required,gt=0"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	AmountCents int64  `json:"amount_cents" validate:"gte=0"`
	PaymentMode string `json:"payment_mode" validate:"required,oneof=CASH CREDIT_CARD DEBIT_CARD PAYPAL APPLE_PAY"`
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.placeOrder(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/orders/"), "/")
	if trimmed == "" {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "order id must be a positive integer")
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.getOrderDetails(w, r, id)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey == "" {
		writeError(w, http.StatusBadRequest, "Idempotency-Key header required")
		return
	}

	if stored, err := h.service.GetIdempotentResponse(ctx, idemKey); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	} else if stored != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stored.StatusCode)
		_, _ = w.Write(stored.Body)
		return
	}

	var payload placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeValidationError(w, err)
		return
	}

	orderID, err := h.service.PlaceOrder(ctx, app.PlaceOrderInput{
		ProductID:   payload.ProductID,
		Quantity:    payload.Quantity,
		AmountCents: payload.AmountCents,
		PaymentMode: payload.PaymentMode,
	})
	if err != nil {
		// The workflow only errs when inventory reservation or the store
		// failed; payment failures are encoded in the order's status.
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	body, err := json.Marshal(map[string]any{"order_id": orderID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stored := ports.StoredResponse{
		StatusCode: http.StatusCreated,
		Body:       body,
		OrderID:    orderID,
	}

	if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func (h *Handler) getOrderDetails(w http.ResponseWriter, r *http.Request, id int64) {
	details, err := h.service.GetOrderDetails(r.Context(), id)
	if err != nil {
		var notFound *ports.NotFoundError
		if errors.As(err, &notFound) {
			writeJSON(w, notFound.Status, map[string]any{
				"error": notFound.Message,
				"code":  notFound.Code,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": details})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func writeValidationError(w http.ResponseWriter, err error) {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}
