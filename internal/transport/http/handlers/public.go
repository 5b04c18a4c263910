package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-govjobs/internal/models"
	apierrors "github.com/pribylovaa/go-govjobs/internal/transport/http/errors"
)

// deadlineWindow - окно /deadlines по умолчанию.
const deadlineWindow = 30 * 24 * time.Hour

func (h *Handlers) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.svc.FindAll(r.Context(), f)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[models.Announcement]{Data: items})
}

func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.FindAllWithCursor(r.Context(), f)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) Cards(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.FindListingCards(r.Context(), f)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) Trending(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r.URL.Query(), "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.svc.GetTrending(r.Context(), limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[models.Announcement]{Data: items})
}

// Deadlines - объявления с дедлайном в [from, to]; по умолчанию [сейчас, +30 дней].
func (h *Handlers) Deadlines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := queryInt(q, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	from := h.now().UTC()
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		if from, err = parseTime(v); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	to := from.Add(deadlineWindow)
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		if to, err = parseTime(v); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	items, err := h.svc.GetByDeadlineRange(r.Context(), from, to, limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[models.Announcement]{Data: items})
}

func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetCategories(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[string]{Data: items})
}

func (h *Handlers) Organizations(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetOrganizations(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[string]{Data: items})
}

func (h *Handlers) Tags(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetTags(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[models.TagCount]{Data: items})
}

// BySlug отдаёт объявление по slug и засчитывает просмотр (ошибка счётчика не влияет на ответ).
func (h *Handlers) BySlug(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.svc.IncrementViewCount(r.Context(), a.ID)

	writeJSON(w, http.StatusOK, a)
}
