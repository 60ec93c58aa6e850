package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/ngducnhatt/muacode.com/internal/domain/catalog"
	"github.com/ngducnhatt/muacode.com/internal/vietqr"
)

const (
	msgProductNotFound = "Không tìm thấy sản phẩm"
	msgProductLoadFail = "Không tải được dữ liệu sản phẩm"
	msgCatalogLoadFail = "Không tải được dữ liệu. Vui lòng thử lại sau."
)

// defaultHighlightCount is how many entries the popular and deals strips
// show when the client does not ask for a specific limit.
const defaultHighlightCount = 6

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		logError(r.Context(), "list categories", err)
		respondError(w, http.StatusBadGateway, msgCatalogLoadFail)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Products(r.Context())
	if err != nil {
		logError(r.Context(), "list products", err)
		respondError(w, http.StatusBadGateway, msgCatalogLoadFail)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// ProductDetail serves a category detail page. A cached snapshot answers
// the request immediately, but every request still issues the upstream
// fetch: the snapshot only masks fetch latency, it never skips the
// refresh. A refresh failure falls back to the last known snapshot when
// one exists.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("category")

	if detail, ok := h.cache.Lookup(id); ok {
		w.Header().Set("X-Cache", "hit")
		respondJSON(w, http.StatusOK, detail)
		go h.refreshDetail(context.WithoutCancel(r.Context()), id)
		return
	}

	detail, err := h.cache.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		logError(r.Context(), "load product detail", err)
		// Serve the stale snapshot if we still hold one.
		if stale, ok := h.cache.Stale(id); ok {
			w.Header().Set("X-Cache", "stale")
			respondJSON(w, http.StatusOK, stale)
			return
		}
		respondError(w, http.StatusBadGateway, msgProductLoadFail)
		return
	}
	w.Header().Set("X-Cache", "miss")
	respondJSON(w, http.StatusOK, detail)
}

// refreshDetail runs the authoritative fetch behind a cache hit. The
// write-back is last-write-wins; failures keep the previous snapshot.
func (h *Handler) refreshDetail(ctx context.Context, id string) {
	if _, err := h.cache.Get(ctx, id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		logError(ctx, "refresh product detail", err)
	}
}

func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	n := queryLimit(r, defaultHighlightCount)
	items, err := h.catalog.Popular(r.Context(), n)
	if err != nil {
		logError(r.Context(), "list popular products", err)
		respondError(w, http.StatusBadGateway, msgCatalogLoadFail)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) Deals(w http.ResponseWriter, r *http.Request) {
	n := queryLimit(r, defaultHighlightCount)
	items, err := h.catalog.Deals(r.Context(), n)
	if err != nil {
		logError(r.Context(), "list deals", err)
		respondError(w, http.StatusBadGateway, msgCatalogLoadFail)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Services(r.Context())
	if err != nil {
		logError(r.Context(), "list services", err)
		respondError(w, http.StatusBadGateway, msgCatalogLoadFail)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.catalog.Posts(r.Context())
	if err != nil {
		logError(r.Context(), "list posts", err)
		respondError(w, http.StatusBadGateway, msgCatalogLoadFail)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *Handler) HeroSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.catalog.HeroSlides(r.Context())
	if err != nil {
		logError(r.Context(), "list hero slides", err)
		respondError(w, http.StatusBadGateway, msgCatalogLoadFail)
		return
	}
	respondJSON(w, http.StatusOK, slides)
}

// Banks degrades to an empty list when the directory is unreachable so the
// order form still renders.
func (h *Handler) Banks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.banks.Banks(r.Context())
	if err != nil {
		logError(r.Context(), "fetch bank directory", err)
		banks = nil
	}
	if banks == nil {
		banks = []vietqr.Bank{}
	}
	respondJSON(w, http.StatusOK, banks)
}

func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
