package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ds-storefront/internal/cart"
	"ds-storefront/internal/catalog"
	"ds-storefront/internal/customizer"
	"ds-storefront/internal/logger"
	"ds-storefront/internal/metrics"
	"ds-storefront/internal/order"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

type Handler struct {
	catalog    *catalog.Catalog
	cart       *cart.Store
	customizer *customizer.Session
	orders     *order.Builder
	stats      *metrics.Storefront
}

func NewHandler(c *catalog.Catalog, store *cart.Store, session *customizer.Session, orders *order.Builder, stats *metrics.Storefront) *Handler {
	return &Handler{catalog: c, cart: store, customizer: session, orders: orders, stats: stats}
}

type TemplatesResponse struct {
	Category   string             `json:"category"`
	Categories []string           `json:"categories"`
	Templates  []catalog.Template `json:"templates"`
}

type CartResponse struct {
	Items    []cart.LineItem `json:"items"`
	Count    int             `json:"count"`
	Subtotal int64           `json:"subtotal"`
	Tax      int64           `json:"tax"`
	Total    int64           `json:"total"`
}

type AddItemRequest struct {
	Template string `json:"template"`
	Category string `json:"category"`
	Package  string `json:"packageType"`
	Color    string `json:"color"`
	Logo     string `json:"logo"`
}

type OpenCustomizerRequest struct {
	Template string `json:"template"`
	Category string `json:"category"`
}

type UpdateCustomizerRequest struct {
	Package *string `json:"packageType"`
	Color   *string `json:"color"`
	Logo    *string `json:"logo"`
}

type CheckoutResponse struct {
	Reference string `json:"reference"`
	Total     int64  `json:"total"`
	Link      string `json:"link"`
	Text      string `json:"text"`
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.AllCategories
	}

	respondJSON(w, r, http.StatusOK, TemplatesResponse{
		Category:   category,
		Categories: h.catalog.Categories(),
		Templates:  h.catalog.Filter(category),
	})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, toCartResponse(h.cart.Snapshot()))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Template == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "template is required")
		return
	}

	tier, err := catalog.ParseTier(req.Package)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	item, err := h.cart.Add(r.Context(), cart.LineItemInput{
		Template: req.Template,
		Category: req.Category,
		Tier:     tier,
		Color:    req.Color,
		Logo:     req.Logo,
	})
	if applied(err) {
		h.stats.ItemsAdded.Inc()
	}
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, item)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_item_id", "item id must be an integer")
		return
	}

	removed, err := h.cart.RemoveItems(r.Context(), []int64{id})
	if applied(err) && removed > 0 {
		h.stats.ItemsRemoved.Inc()
	}
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toCartResponse(h.cart.Snapshot()))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	hadItems := h.cart.Count() > 0
	err := h.cart.Clear(r.Context())
	if applied(err) && hadItems {
		h.stats.CartsCleared.Inc()
	}
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applied reports whether a cart mutation took effect in memory. A storage
// failure still leaves the change applied.
func applied(err error) bool {
	return err == nil || errors.Is(err, cart.ErrStorageUnavailable)
}

func (h *Handler) OpenCustomizer(w http.ResponseWriter, r *http.Request) {
	var req OpenCustomizerRequest
	if !decode(w, r, &req) {
		return
	}

	category := req.Category
	if category == "" {
		tpl, err := h.catalog.Find(req.Template)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		category = tpl.Category
	}

	respondJSON(w, r, http.StatusOK, h.customizer.Open(req.Template, category))
}

func (h *Handler) UpdateCustomizer(w http.ResponseWriter, r *http.Request) {
	var req UpdateCustomizerRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Package != nil {
		tier, err := catalog.ParseTier(*req.Package)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		if err := h.customizer.SetTier(tier); err != nil {
			handleDomainError(w, r, err)
			return
		}
	}
	if req.Color != nil {
		if err := h.customizer.SetColor(*req.Color); err != nil {
			handleDomainError(w, r, err)
			return
		}
	}
	if req.Logo != nil {
		if err := h.customizer.SetLogo(*req.Logo); err != nil {
			handleDomainError(w, r, err)
			return
		}
	}

	sel, ok := h.customizer.Current()
	if !ok {
		handleDomainError(w, r, customizer.ErrNoSelection)
		return
	}
	respondJSON(w, r, http.StatusOK, sel)
}

func (h *Handler) CancelCustomizer(w http.ResponseWriter, r *http.Request) {
	h.customizer.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CommitCustomizer(w http.ResponseWriter, r *http.Request) {
	item, err := h.customizer.Commit(r.Context(), h.cart)
	if applied(err) {
		h.stats.ItemsAdded.Inc()
	}
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, item)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var contact order.Contact
	if !decode(w, r, &contact) {
		return
	}

	timer := metrics.StartTimer()
	msg, err := h.orders.BuildAndSubmit(r.Context(), contact)
	if err != nil {
		h.stats.OrdersRejected.Inc()
		handleDomainError(w, r, err)
		return
	}
	h.stats.OrdersSubmitted.Inc()
	logger.FromCtx(r.Context()).Info("checkout completed",
		zap.String("order_ref", msg.Reference),
		zap.Duration("duration", timer.Duration()),
	)

	respondJSON(w, r, http.StatusOK, CheckoutResponse{
		Reference: msg.Reference,
		Total:     msg.Total,
		Link:      msg.Link,
		Text:      msg.Text,
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.stats.Snapshot())
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return false
		}
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

func toCartResponse(s cart.Snapshot) CartResponse {
	return CartResponse{
		Items:    s.Items,
		Count:    s.Count,
		Subtotal: s.Subtotal,
		Tax:      s.Tax,
		Total:    s.Total,
	}
}
