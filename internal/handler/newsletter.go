// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/util"
	"github.com/amoodyplace/moodyplace-go/internal/validation"
)

// interestsJSON encodes the interests list for the JSON column. An
// empty list is stored as [].
func interestsJSON(interests []string) string {
	if interests == nil {
		interests = []string{}
	}
	encoded, err := json.Marshal(interests)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// Subscribe handles POST /api/newsletter/subscribe. A previously
// unsubscribed email is reactivated with fresh preferences; an active
// subscription is reported as a conflict.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in validation.NewsletterInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	token := uuid.NewString()
	sub := &model.NewsletterSubscriber{
		Email:          in.Email,
		FirstName:      util.NullStringFromValue(in.FirstName),
		LastName:       util.NullStringFromValue(in.LastName),
		SubscriberType: in.SubscriberType,
		Interests:      interestsJSON(in.Interests),
		ConfirmToken:   util.NullStringFromValue(token),
	}

	existing, err := h.newsletter.GetByEmail(r.Context(), in.Email)
	switch {
	case err == nil && existing.IsActive:
		h.renderer.ErrorDetails(w, http.StatusConflict, render.CodeValidationError,
			"Validation failed", validation.Errors{"email": "is already subscribed"})
		return
	case err == nil:
		sub.ID = existing.ID
		if err := h.newsletter.Resubscribe(r.Context(), sub); err != nil {
			h.renderer.Internal(w, err, "resubscribing", "id", existing.ID)
			return
		}
	case isNoRows(err):
		id, err := h.newsletter.Create(r.Context(), sub)
		if err != nil {
			h.renderer.Internal(w, err, "creating subscriber")
			return
		}
		sub.ID = id
	default:
		h.renderer.Internal(w, err, "looking up subscriber")
		return
	}

	h.events.RecordNewsletter(r.Context(), model.EventNewsletterSubscribe, sub.ID, clientIP(r), r.UserAgent())

	h.renderer.SuccessStatus(w, http.StatusCreated,
		map[string]any{"id": sub.ID, "confirm_token": token},
		"Subscribed. Please confirm your email address.")
}

// confirmInput is the confirmation payload.
type confirmInput struct {
	Token string `json:"token"`
}

// ConfirmSubscription handles POST /api/newsletter/confirm.
func (h *Handler) ConfirmSubscription(w http.ResponseWriter, r *http.Request) {
	var in confirmInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if in.Token == "" {
		h.renderer.ErrorDetails(w, http.StatusBadRequest, render.CodeValidationError,
			"Validation failed", validation.Errors{"token": "is required"})
		return
	}

	if err := h.newsletter.ConfirmByToken(r.Context(), in.Token); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Confirmation token not found")
			return
		}
		h.renderer.Internal(w, err, "confirming subscription")
		return
	}

	h.events.RecordNewsletter(r.Context(), model.EventNewsletterConfirm, 0, clientIP(r), r.UserAgent())
	h.renderer.Success(w, nil, "Subscription confirmed")
}

// unsubscribeInput is the unsubscribe payload.
type unsubscribeInput struct {
	Email string `json:"email"`
}

// Unsubscribe handles POST /api/newsletter/unsubscribe.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var in unsubscribeInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	v := validation.New()
	v.Required("email", in.Email)
	v.Email("email", in.Email)
	if h.validationFailed(w, v.Errors()) {
		return
	}

	if err := h.newsletter.Unsubscribe(r.Context(), in.Email); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Subscription not found")
			return
		}
		h.renderer.Internal(w, err, "unsubscribing")
		return
	}

	h.events.RecordNewsletter(r.Context(), model.EventNewsletterUnsubscribe, 0, clientIP(r), r.UserAgent())
	h.renderer.Success(w, nil, "Unsubscribed")
}

// AdminListSubscribers handles GET /api/admin/newsletter.
func (h *Handler) AdminListSubscribers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	subs, err := h.newsletter.List(r.Context(), limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing subscribers")
		return
	}
	total, err := h.newsletter.Count(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "counting subscribers")
		return
	}
	h.renderer.Paginated(w, subs, render.NewPagination(page, limit, total))
}

// AdminDeleteSubscriber handles DELETE /api/admin/newsletter/{id}.
func (h *Handler) AdminDeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.newsletter.Delete(r.Context(), id); err != nil {
		h.renderer.Internal(w, err, "deleting subscriber", "id", id)
		return
	}
	h.renderer.Success(w, nil, "Subscriber deleted")
}
